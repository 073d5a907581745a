package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gertonargent/gta-backend/internal/service"
	"github.com/gertonargent/gta-backend/internal/testutil"
)

func newAuthHandlerFixture() *AuthHandler {
	userRepo := testutil.NewMockUserRepository()
	authService := service.NewAuthService(userRepo, "test-secret", time.Hour, nil)
	profileService := service.NewProfileService(userRepo)
	return NewAuthHandler(authService, profileService)
}

func TestRegister_Success(t *testing.T) {
	e := echo.New()
	handler := newAuthHandlerFixture()

	body := `{"email":"amadou@example.com","username":"amadou","password":"motdepasse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var response AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Token == "" {
		t.Error("Expected a token")
	}
	if response.User == nil || response.User.Email != "amadou@example.com" {
		t.Errorf("Unexpected user in response: %+v", response.User)
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	e := echo.New()
	handler := newAuthHandlerFixture()

	body := `{"email":"amadou@example.com","username":"amadou","password":"court"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	e := echo.New()
	handler := newAuthHandlerFixture()

	body := `{"email":"amadou@example.com","username":"amadou","password":"motdepasse"}`
	for i, wantStatus := range []int{http.StatusCreated, http.StatusConflict} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler.Register(c); err != nil {
			t.Fatalf("Attempt %d: expected JSON response, got error: %v", i, err)
		}
		if rec.Code != wantStatus {
			t.Errorf("Attempt %d: expected status %d, got %d", i, wantStatus, rec.Code)
		}
	}
}

func TestLogin_Success(t *testing.T) {
	e := echo.New()
	handler := newAuthHandlerFixture()

	registerBody := `{"email":"fatou@example.com","username":"fatou","password":"motdepasse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(registerBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := handler.Register(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	loginBody := `{"email":"fatou@example.com","password":"motdepasse"}`
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(loginBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	e := echo.New()
	handler := newAuthHandlerFixture()

	body := `{"email":"nobody@example.com","password":"motdepasse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestGoogleLogin_NotConfigured(t *testing.T) {
	e := echo.New()
	handler := newAuthHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GoogleLogin(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
