package repository

import (
	"context"

	"fittrack/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
	ErrDuplicate    = RepositoryError("already exists")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with account data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ProfileRepository stores one UserProfile per authenticated user id.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.UserProfile, error)
	Upsert(ctx context.Context, userID string, profile *domain.UserProfile) error
}

// WorkoutLogRepository stores workout logs keyed by their client-generated
// ids, scoped per user. Upsert implements merge-by-id: an existing id is
// replaced in place, never duplicated.
type WorkoutLogRepository interface {
	GetByUserID(ctx context.Context, userID string) ([]domain.WorkoutLog, error)
	Upsert(ctx context.Context, userID string, log *domain.WorkoutLog) error
	Delete(ctx context.Context, userID, logID string) error
}

// ExerciseRepository holds the shared exercise library.
type ExerciseRepository interface {
	GetAll(ctx context.Context) ([]domain.Exercise, error)
	Seed(ctx context.Context, exercises []domain.Exercise) error
}
