package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret-key"

func signTestToken(t *testing.T, secret string, userID uuid.UUID, expiry time.Duration) string {
	t.Helper()
	claims := AppClaims{
		Email: "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestAuthenticate_ValidToken(t *testing.T) {
	e := echo.New()
	m := NewAuthMiddleware(testSecret)
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/budgets", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, testSecret, userID, time.Hour))
	c := e.NewContext(req, httptest.NewRecorder())

	var gotUserID uuid.UUID
	handler := func(c echo.Context) error {
		gotUserID = GetUserID(c)
		return c.NoContent(http.StatusOK)
	}

	if err := m.Authenticate()(handler)(c); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if gotUserID != userID {
		t.Errorf("user ID in context = %s, want %s", gotUserID, userID)
	}
}

func TestAuthenticate_Rejections(t *testing.T) {
	e := echo.New()
	m := NewAuthMiddleware(testSecret)
	userID := uuid.New()

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer token", "Basic abc123"},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong secret", "Bearer " + signTestToken(t, "other-secret", userID, time.Hour)},
		{"expired token", "Bearer " + signTestToken(t, testSecret, userID, -time.Hour)},
	}

	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/budgets", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			err := m.Authenticate()(handler)(c)
			httpErr, ok := err.(*echo.HTTPError)
			if !ok || httpErr.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401 HTTPError, got %v", err)
			}
		})
	}
}

func TestGetUserID_MissingContext(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	if id := GetUserID(c); id != uuid.Nil {
		t.Errorf("expected uuid.Nil without auth, got %s", id)
	}
}
