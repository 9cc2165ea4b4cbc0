package storage

import (
	"context"
	"time"
)

// DefaultPresignedURLExpiry is how long generated media links stay valid.
const DefaultPresignedURLExpiry = 15 * time.Minute

// MediaStorage serves the exercise library's media files. Exercise documents
// store object keys; the API resolves them into time-limited URLs on the way
// out so the bucket never needs to be public.
type MediaStorage interface {
	// PresignedMediaURL returns a temporary GET URL for the given object key.
	PresignedMediaURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)
	// DeleteObject removes a media object, e.g. when an exercise is retired.
	DeleteObject(ctx context.Context, objectKey string) error
}
