package service

import (
	"context"
	"errors"
	"strings"

	"fittrack/internal/domain"
	"fittrack/internal/repository"
	"fittrack/internal/storage"

	"go.uber.org/zap"
)

// SyncService is the server side of the client's pull-merge: per-user profile
// and workout logs, plus the shared exercise library.
type SyncService interface {
	GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
	SaveProfile(ctx context.Context, userID string, profile *domain.UserProfile) error
	GetWorkoutLogs(ctx context.Context, userID string) ([]domain.WorkoutLog, error)
	SaveWorkoutLog(ctx context.Context, userID string, log *domain.WorkoutLog) error
	DeleteWorkoutLog(ctx context.Context, userID, logID string) error
	GetExercises(ctx context.Context) ([]domain.Exercise, error)
	SeedExercises(ctx context.Context) error
}

// ErrProfileNotFound is returned when a user has no stored profile yet; the
// client resolves it to its default template.
var ErrProfileNotFound = errors.New("profile not found")

type syncService struct {
	profileRepo  repository.ProfileRepository
	logRepo      repository.WorkoutLogRepository
	exerciseRepo repository.ExerciseRepository
	media        storage.MediaStorage // optional; nil disables URL resolution
	logger       *zap.Logger
}

// NewSyncService creates the sync service. media may be nil when no bucket is
// configured; exercise media keys are then passed through untouched.
func NewSyncService(
	profileRepo repository.ProfileRepository,
	logRepo repository.WorkoutLogRepository,
	exerciseRepo repository.ExerciseRepository,
	media storage.MediaStorage,
	logger *zap.Logger,
) SyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &syncService{
		profileRepo:  profileRepo,
		logRepo:      logRepo,
		exerciseRepo: exerciseRepo,
		media:        media,
		logger:       logger.Named("sync_service"),
	}
}

func (s *syncService) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *syncService) SaveProfile(ctx context.Context, userID string, profile *domain.UserProfile) error {
	if len(profile.StrengthRecords) > domain.MaxStrengthRecords {
		profile.StrengthRecords = profile.StrengthRecords[:domain.MaxStrengthRecords]
	}
	return s.profileRepo.Upsert(ctx, userID, profile)
}

func (s *syncService) GetWorkoutLogs(ctx context.Context, userID string) ([]domain.WorkoutLog, error) {
	return s.logRepo.GetByUserID(ctx, userID)
}

func (s *syncService) SaveWorkoutLog(ctx context.Context, userID string, log *domain.WorkoutLog) error {
	if log.ID == "" {
		return errors.New("workout log id is required")
	}
	// The client precomputes total volume; recompute server-side so a stale
	// or tampered value cannot persist.
	log.ComputeTotalVolume()
	return s.logRepo.Upsert(ctx, userID, log)
}

func (s *syncService) DeleteWorkoutLog(ctx context.Context, userID, logID string) error {
	return s.logRepo.Delete(ctx, userID, logID)
}

// GetExercises returns the shared library with media object keys resolved to
// presigned URLs when a bucket is configured.
func (s *syncService) GetExercises(ctx context.Context) ([]domain.Exercise, error) {
	exercises, err := s.exerciseRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if s.media == nil {
		return exercises, nil
	}
	for i := range exercises {
		exercises[i].ImageURL = s.resolveMedia(ctx, exercises[i].ImageURL)
		exercises[i].VideoURL = s.resolveMedia(ctx, exercises[i].VideoURL)
	}
	return exercises, nil
}

// SeedExercises installs the builtin library into an empty collection.
func (s *syncService) SeedExercises(ctx context.Context) error {
	return s.exerciseRepo.Seed(ctx, domain.BuiltinExercises())
}

// resolveMedia turns a stored object key into a presigned URL. Values that
// are already absolute URLs (or empty) pass through.
func (s *syncService) resolveMedia(ctx context.Context, key string) string {
	if key == "" || strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return key
	}
	url, err := s.media.PresignedMediaURL(ctx, key, storage.DefaultPresignedURLExpiry)
	if err != nil {
		s.logger.Warn("failed to resolve media key", zap.String("key", key), zap.Error(err))
		return key
	}
	return url
}
