package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/gertonargent/gta-backend/internal/repository/storage"
)

const (
	MaxAvatarSize   = 5 * 1024 * 1024 // 5MB
	MinAvatarWidth  = 50
	MinAvatarHeight = 50
	ThumbnailWidth  = 200
	DisplayWidth    = 800
	JPEGQuality     = 85

	presignedURLExpiry = 24 * time.Hour
)

var (
	ErrAvatarTooLarge             = errors.New("file too large. Maximum size is 5MB")
	ErrInvalidAvatarFormat        = errors.New("invalid format. Supported: JPEG, PNG, WebP")
	ErrAvatarTooSmall             = errors.New("image too small. Minimum 50x50 pixels")
	ErrInvalidAvatarData          = errors.New("invalid image data")
	ErrAvatarStorageNotConfigured = errors.New("avatar storage not configured")
)

// AllowedAvatarExtensions maps extensions to content types
var AllowedAvatarExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// AvatarMetadata contains object paths and presigned URLs for the variants
// of one avatar upload
type AvatarMetadata struct {
	ID           string `json:"id"`
	ThumbnailURL string `json:"thumbnailUrl"`
	DisplayURL   string `json:"displayUrl"`
}

// AvatarService handles avatar processing and storage
type AvatarService struct {
	storage storage.AvatarRepository
}

// NewAvatarService creates a new AvatarService. storage may be nil when no
// object storage is configured; uploads then fail gracefully.
func NewAvatarService(storage storage.AvatarRepository) *AvatarService {
	return &AvatarService{storage: storage}
}

// IsEnabled indicates whether uploads are supported
func (s *AvatarService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

// validateAndDecode validates the image and returns the decoded image
func (s *AvatarService) validateAndDecode(data []byte, filename string) (image.Image, error) {
	if len(data) > MaxAvatarSize {
		return nil, ErrAvatarTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := AllowedAvatarExtensions[ext]; !ok {
		return nil, ErrInvalidAvatarFormat
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidAvatarData
	}

	bounds := img.Bounds()
	if bounds.Dx() < MinAvatarWidth || bounds.Dy() < MinAvatarHeight {
		return nil, ErrAvatarTooSmall
	}
	return img, nil
}

// ProcessAndUpload resizes the avatar into thumbnail and display variants,
// uploads both, and returns presigned URLs
func (s *AvatarService) ProcessAndUpload(ctx context.Context, userID uuid.UUID, data []byte, filename string) (*AvatarMetadata, error) {
	if !s.IsEnabled() {
		return nil, ErrAvatarStorageNotConfigured
	}

	img, err := s.validateAndDecode(data, filename)
	if err != nil {
		return nil, err
	}

	imageID := uuid.New().String()

	variants := []struct {
		name     string
		maxWidth int
	}{
		{"thumb", ThumbnailWidth},
		{"display", DisplayWidth},
	}

	paths := make(map[string]string)
	urls := make(map[string]string)

	for _, variant := range variants {
		processed := img
		if img.Bounds().Dx() > variant.maxWidth {
			// Resize maintaining aspect ratio
			processed = imaging.Resize(img, variant.maxWidth, 0, imaging.Lanczos)
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, processed, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}

		objectPath := storage.GenerateObjectPath(userID, imageID, variant.name, ".jpg")
		if _, err := s.storage.Upload(ctx, objectPath, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len())); err != nil {
			s.cleanupVariants(ctx, paths)
			return nil, fmt.Errorf("failed to upload %s variant: %w", variant.name, err)
		}
		paths[variant.name] = objectPath

		url, err := s.storage.GeneratePresignedURL(ctx, objectPath, presignedURLExpiry)
		if err != nil {
			s.cleanupVariants(ctx, paths)
			return nil, fmt.Errorf("failed to presign %s variant: %w", variant.name, err)
		}
		urls[variant.name] = url
	}

	return &AvatarMetadata{
		ID:           imageID,
		ThumbnailURL: urls["thumb"],
		DisplayURL:   urls["display"],
	}, nil
}

// cleanupVariants removes variants uploaded during a failed operation
func (s *AvatarService) cleanupVariants(ctx context.Context, paths map[string]string) {
	for _, objectPath := range paths {
		_ = s.storage.Delete(ctx, objectPath)
	}
}

// DeleteAvatar removes both variants of a stored avatar. Best effort: a
// missing object is not an error.
func (s *AvatarService) DeleteAvatar(ctx context.Context, userID uuid.UUID, imageID string) error {
	if !s.IsEnabled() {
		return ErrAvatarStorageNotConfigured
	}
	for _, variant := range []string{"thumb", "display"} {
		objectPath := storage.GenerateObjectPath(userID, imageID, variant, ".jpg")
		if err := s.storage.Delete(ctx, objectPath); err != nil {
			continue
		}
	}
	return nil
}
