package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/gertonargent/gta-backend/internal/domain"
	"github.com/gertonargent/gta-backend/internal/middleware"
	"github.com/gertonargent/gta-backend/internal/service"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService    *service.AuthService
	profileService *service.ProfileService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService, profileService *service.ProfileService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		profileService: profileService,
	}
}

// RegisterRequest represents the register request body
type RegisterRequest struct {
	Email    string  `json:"email"`
	Username string  `json:"username"`
	Password string  `json:"password"`
	Phone    *string `json:"phone,omitempty"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents a successful authentication
type AuthResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// Register godoc
// @Summary Register a new account
// @Description Create a local account and return a signed token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration request"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	result, err := h.authService.Register(service.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidEmail) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "email", Message: "Must be a valid email address"},
			})
		}
		if errors.Is(err, domain.ErrUsernameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "username", Message: "Username is required"},
			})
		}
		if errors.Is(err, domain.ErrPasswordTooShort) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "password", Message: "Password must be at least 8 characters"},
			})
		}
		if errors.Is(err, domain.ErrEmailAlreadyUsed) {
			return NewConflictError(c, "Email is already registered")
		}
		log.Error().Err(err).Msg("Failed to register user")
		return NewInternalError(c, "Failed to register")
	}

	log.Info().Str("user_id", result.User.ID.String()).Msg("User registered")
	return c.JSON(http.StatusCreated, AuthResponse{User: result.User, Token: result.Token})
}

// Login godoc
// @Summary Log in
// @Description Authenticate a local account and return a signed token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login request"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} ProblemDetails
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	result, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrGoogleAccountOnly) {
			return NewUnauthorizedError(c, "This account uses Google sign-in")
		}
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return NewUnauthorizedError(c, "Invalid email or password")
		}
		log.Error().Err(err).Msg("Failed to log in user")
		return NewInternalError(c, "Failed to log in")
	}

	return c.JSON(http.StatusOK, AuthResponse{User: result.User, Token: result.Token})
}

// GoogleLogin godoc
// @Summary Start Google sign-in
// @Description Redirect to the Google consent page
// @Tags auth
// @Success 307
// @Failure 404 {object} ProblemDetails
// @Router /auth/google [get]
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	state := uuid.New().String()
	url, err := h.authService.GoogleAuthURL(state)
	if err != nil {
		return NewNotFoundError(c, "Google sign-in is not configured")
	}
	return c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback godoc
// @Summary Complete Google sign-in
// @Description Exchange the authorization code and return a signed token
// @Tags auth
// @Produce json
// @Param code query string true "Authorization code"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} ProblemDetails
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return NewValidationError(c, "Missing authorization code", nil)
	}

	result, err := h.authService.LoginWithGoogle(c.Request().Context(), code)
	if err != nil {
		if errors.Is(err, domain.ErrGoogleOAuthDisabled) {
			return NewNotFoundError(c, "Google sign-in is not configured")
		}
		log.Error().Err(err).Msg("Google sign-in failed")
		return NewUnauthorizedError(c, "Google sign-in failed")
	}

	return c.JSON(http.StatusOK, AuthResponse{User: result.User, Token: result.Token})
}

// Me godoc
// @Summary Get the authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.User
// @Failure 401 {object} ProblemDetails
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	user, err := h.profileService.GetProfile(userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return NewUnauthorizedError(c, "User not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to load user")
		return NewInternalError(c, "Failed to load user")
	}
	return c.JSON(http.StatusOK, user)
}
