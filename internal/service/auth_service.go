package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/gertonargent/gta-backend/internal/domain"
	appmw "github.com/gertonargent/gta-backend/internal/middleware"
)

const (
	minPasswordLength = 8
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// AuthService handles registration, login and token issuance
type AuthService struct {
	userRepo    domain.UserRepository
	jwtSecret   []byte
	jwtExpiry   time.Duration
	oauthConfig *oauth2.Config
	httpClient  *http.Client
}

// NewAuthService creates a new AuthService. oauthConfig may be nil when
// Google sign-in is not configured.
func NewAuthService(userRepo domain.UserRepository, jwtSecret string, jwtExpiry time.Duration, oauthConfig *oauth2.Config) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		jwtSecret:   []byte(jwtSecret),
		jwtExpiry:   jwtExpiry,
		oauthConfig: oauthConfig,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewGoogleOAuthConfig builds the oauth2 config for the Google code flow
func NewGoogleOAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// RegisterInput holds the input for registering a local account
type RegisterInput struct {
	Email    string
	Username string
	Password string
	Phone    *string
}

// AuthResult pairs a user with a freshly issued token
type AuthResult struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates a local account with a bcrypt-hashed password and
// returns the user with a signed token
func (s *AuthService) Register(input RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.ErrInvalidEmail
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, domain.ErrUsernameRequired
	}

	if len(input.Password) < minPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}

	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, domain.ErrEmailAlreadyUsed
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	hashedStr := string(hashed)

	user := &domain.User{
		ID:             uuid.New(),
		Email:          email,
		Username:       username,
		Phone:          input.Phone,
		HashedPassword: &hashedStr,
		AuthProvider:   domain.AuthProviderLocal,
	}

	created, err := s.userRepo.Create(user)
	if err != nil {
		return nil, err
	}
	return s.issueToken(created)
}

// Login authenticates a local account by email and password
func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	// Google-only accounts have no password to check
	if user.HashedPassword == nil || *user.HashedPassword == "" {
		return nil, domain.ErrGoogleAccountOnly
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.HashedPassword), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return s.issueToken(user)
}

// GoogleAuthURL returns the Google consent page URL for the code flow
func (s *AuthService) GoogleAuthURL(state string) (string, error) {
	if s.oauthConfig == nil {
		return "", domain.ErrGoogleOAuthDisabled
	}
	return s.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

// googleUserInfo is the subset of the Google userinfo response we use
type googleUserInfo struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Picture  string `json:"picture"`
	Verified bool   `json:"verified_email"`
}

// LoginWithGoogle exchanges an authorization code, fetches the Google
// profile, and finds or creates the matching account
func (s *AuthService) LoginWithGoogle(ctx context.Context, code string) (*AuthResult, error) {
	if s.oauthConfig == nil {
		return nil, domain.ErrGoogleOAuthDisabled
	}

	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	info, err := s.fetchGoogleUserInfo(ctx, token.AccessToken)
	if err != nil {
		return nil, err
	}
	if !info.Verified {
		return nil, domain.ErrInvalidCredentials
	}

	// Find by Google ID first, then by email for accounts created before
	// the Google link existed
	user, err := s.userRepo.GetByGoogleID(info.ID)
	if err != nil {
		user, err = s.userRepo.GetByEmail(strings.ToLower(info.Email))
	}
	if err != nil {
		username := info.Name
		if username == "" {
			username = info.Email
		}
		user = &domain.User{
			ID:           uuid.New(),
			Email:        strings.ToLower(info.Email),
			Username:     username,
			AuthProvider: domain.AuthProviderGoogle,
			GoogleID:     &info.ID,
		}
		if info.Picture != "" {
			user.AvatarURL = &info.Picture
		}
		user, err = s.userRepo.Create(user)
		if err != nil {
			return nil, err
		}
	} else if user.GoogleID == nil {
		// Link the Google account to the existing user
		user.GoogleID = &info.ID
		user, err = s.userRepo.Update(user)
		if err != nil {
			return nil, err
		}
	}
	return s.issueToken(user)
}

func (s *AuthService) fetchGoogleUserInfo(ctx context.Context, accessToken string) (*googleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoURL+"?access_token="+accessToken, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read user info: %w", err)
	}

	var info googleUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse user info: %w", err)
	}
	return &info, nil
}

func (s *AuthService) issueToken(user *domain.User) (*AuthResult, error) {
	now := time.Now()
	claims := appmw.AppClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}
