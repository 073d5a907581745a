package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// AuthProvider identifies how a user authenticates
type AuthProvider string

const (
	AuthProviderLocal  AuthProvider = "local"
	AuthProviderGoogle AuthProvider = "google"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailAlreadyUsed    = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrGoogleAccountOnly   = errors.New("account uses Google sign-in")
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters")
	ErrUsernameRequired    = errors.New("username is required")
	ErrGoogleOAuthDisabled = errors.New("google sign-in is not configured")
)

// User represents a registered user
type User struct {
	ID             uuid.UUID    `json:"id"`
	Email          string       `json:"email"`
	Username       string       `json:"username"`
	Phone          *string      `json:"phone,omitempty"`
	HashedPassword *string      `json:"-"`
	AuthProvider   AuthProvider `json:"authProvider"`
	GoogleID       *string      `json:"-"`
	AvatarURL      *string      `json:"avatarUrl,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	GetByID(id uuid.UUID) (*User, error)
	GetByEmail(email string) (*User, error)
	GetByGoogleID(googleID string) (*User, error)
	GetByUsername(username string) (*User, error)
	Create(user *User) (*User, error)
	Update(user *User) (*User, error)
}
