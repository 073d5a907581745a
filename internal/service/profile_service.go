package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/gertonargent/gta-backend/internal/domain"
)

// ProfileService handles profile business logic
type ProfileService struct {
	userRepo domain.UserRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(userRepo domain.UserRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo}
}

// GetProfile retrieves a user's profile
func (s *ProfileService) GetProfile(userID uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(userID)
}

// UpdateProfileInput holds the optional fields for updating a profile
type UpdateProfileInput struct {
	Username *string
	Phone    *string
}

// UpdateProfile updates a user's editable fields
func (s *ProfileService) UpdateProfile(userID uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			return nil, domain.ErrUsernameRequired
		}
		user.Username = username
	}
	if input.Phone != nil {
		phone := strings.TrimSpace(*input.Phone)
		if phone == "" {
			user.Phone = nil
		} else {
			user.Phone = &phone
		}
	}

	return s.userRepo.Update(user)
}

// SetAvatarURL stores the display URL of a freshly uploaded avatar
func (s *ProfileService) SetAvatarURL(userID uuid.UUID, url string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.AvatarURL = &url
	return s.userRepo.Update(user)
}
