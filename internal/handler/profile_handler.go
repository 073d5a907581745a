package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/gertonargent/gta-backend/internal/domain"
	"github.com/gertonargent/gta-backend/internal/middleware"
	"github.com/gertonargent/gta-backend/internal/service"
)

// ProfileHandler handles profile HTTP requests
type ProfileHandler struct {
	profileService *service.ProfileService
	avatarService  *service.AvatarService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *service.ProfileService, avatarService *service.AvatarService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		avatarService:  avatarService,
	}
}

// UpdateProfileRequest represents the update profile request body
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

// GetProfile godoc
// @Summary Get the user's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.User
// @Failure 401 {object} ProblemDetails
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	user, err := h.profileService.GetProfile(userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return NewNotFoundError(c, "Profile not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to load profile")
		return NewInternalError(c, "Failed to load profile")
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update the user's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile update request"
// @Success 200 {object} domain.User
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	user, err := h.profileService.UpdateProfile(userID, service.UpdateProfileInput{
		Username: req.Username,
		Phone:    req.Phone,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUsernameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "username", Message: "Username is required"},
			})
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return NewNotFoundError(c, "Profile not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to update profile")
		return NewInternalError(c, "Failed to update profile")
	}
	return c.JSON(http.StatusOK, user)
}

// UploadAvatar godoc
// @Summary Upload an avatar
// @Description Upload an avatar image; it is resized and stored, and the display URL saved on the profile
// @Tags profile
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Avatar image (JPEG, PNG or WebP, max 5MB)"
// @Success 200 {object} service.AvatarMetadata
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /profile/avatar [post]
func (h *ProfileHandler) UploadAvatar(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "Missing file", []ValidationError{
			{Field: "file", Message: "An image file is required"},
		})
	}
	if fileHeader.Size > service.MaxAvatarSize {
		return NewValidationError(c, "File too large. Maximum size is 5MB", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return NewInternalError(c, "Failed to read upload")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxAvatarSize+1))
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		return NewInternalError(c, "Failed to read upload")
	}

	metadata, err := h.avatarService.ProcessAndUpload(c.Request().Context(), userID, data, fileHeader.Filename)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAvatarTooLarge),
			errors.Is(err, service.ErrInvalidAvatarFormat),
			errors.Is(err, service.ErrAvatarTooSmall),
			errors.Is(err, service.ErrInvalidAvatarData):
			return NewValidationError(c, err.Error(), nil)
		case errors.Is(err, service.ErrAvatarStorageNotConfigured):
			return NewNotFoundError(c, "Avatar storage is not configured")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to upload avatar")
		return NewInternalError(c, "Failed to upload avatar")
	}

	if _, err := h.profileService.SetAvatarURL(userID, metadata.DisplayURL); err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to save avatar URL")
		return NewInternalError(c, "Failed to save avatar")
	}

	log.Info().Str("user_id", userID.String()).Str("avatar_id", metadata.ID).Msg("Avatar uploaded")
	return c.JSON(http.StatusOK, metadata)
}
