package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
)

// AvatarRepository defines the interface for avatar storage operations
type AvatarRepository interface {
	Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, objectPath string) error
	GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
}

// GenerateObjectPath creates the object path for one variant of an avatar
// upload. Variants of the same upload share imageID.
func GenerateObjectPath(userID uuid.UUID, imageID, variant, ext string) string {
	filename := fmt.Sprintf("%s_%s%s", imageID, variant, ext)
	return path.Join("avatars", userID.String(), filename)
}
