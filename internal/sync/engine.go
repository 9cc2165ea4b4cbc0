// Package sync pulls the remote authoritative state for an authenticated
// user and merges it into the local store. The merge only adds or overwrites
// by id; it never deletes local-only entries, so a write landing during an
// in-flight sync survives.
package sync

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"fittrack/internal/domain"
	"fittrack/internal/identity"
	"fittrack/internal/store"

	"go.uber.org/zap"
)

// ErrSyncFailed wraps any remote failure surfaced by SyncFromRemote. Local
// state is guaranteed untouched by the failed portion of the pull.
var ErrSyncFailed = errors.New("sync failed")

// Engine performs the one-directional pull-and-merge from the remote store.
// It never runs for the guest scope.
type Engine struct {
	local      *store.LocalStore
	remote     RemoteStore
	logger     *zap.Logger
	inProgress atomic.Bool
}

func NewEngine(local *store.LocalStore, remote RemoteStore, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		local:  local,
		remote: remote,
		logger: logger.Named("sync"),
	}
}

// InProgress reports whether a pull-merge is currently running.
func (e *Engine) InProgress() bool {
	return e.inProgress.Load()
}

// SyncFromRemote fetches the user's remote profile and workout logs and
// merges them into the local store. Remote data wins on id conflicts; logs
// present only locally are preserved. The call is idempotent and safe against
// an empty remote. On failure the error is returned wrapped in ErrSyncFailed
// and local state is left as it was; the in-progress flag resets on every
// exit path.
func (e *Engine) SyncFromRemote(ctx context.Context, userID string) error {
	if userID == "" || userID == identity.GuestScope {
		return nil
	}

	e.inProgress.Store(true)
	defer e.inProgress.Store(false)

	e.logger.Info("sync started", zap.String("user", userID))

	profile, err := e.remote.FetchProfile(ctx, userID)
	if err != nil {
		e.logger.Warn("remote profile fetch failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}
	logs, err := e.remote.FetchWorkoutLogs(ctx, userID)
	if err != nil {
		e.logger.Warn("remote log fetch failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}

	// Both fetches succeeded; apply. Profile first so a log-merge failure
	// cannot hide a newer profile.
	if profile != nil {
		if err := e.local.SaveProfile(userID, *profile); err != nil {
			return fmt.Errorf("%w: %v", ErrSyncFailed, err)
		}
	}
	merged := 0
	for _, log := range logs {
		if err := e.local.SaveWorkoutLog(userID, log); err != nil {
			return fmt.Errorf("%w: %v", ErrSyncFailed, err)
		}
		merged++
	}

	e.logger.Info("sync finished",
		zap.String("user", userID),
		zap.Int("logsMerged", merged),
		zap.Bool("profileUpdated", profile != nil))
	return nil
}

// MirrorWorkoutLog pushes one local log upstream. Failures are logged and
// swallowed: mirroring is opportunistic, the next full sync reconciles.
func (e *Engine) MirrorWorkoutLog(ctx context.Context, userID string, log domain.WorkoutLog) {
	if userID == "" || userID == identity.GuestScope {
		return
	}
	if err := e.remote.PushWorkoutLog(ctx, userID, log); err != nil {
		e.logger.Warn("failed to mirror workout log upstream",
			zap.String("log", log.ID), zap.Error(err))
	}
}

// MirrorProfile pushes the local profile upstream, best effort.
func (e *Engine) MirrorProfile(ctx context.Context, userID string, profile domain.UserProfile) {
	if userID == "" || userID == identity.GuestScope {
		return
	}
	if err := e.remote.PushProfile(ctx, userID, profile); err != nil {
		e.logger.Warn("failed to mirror profile upstream", zap.Error(err))
	}
}

// MirrorDelete reflects a local log deletion upstream, best effort.
func (e *Engine) MirrorDelete(ctx context.Context, userID, logID string) {
	if userID == "" || userID == identity.GuestScope {
		return
	}
	if err := e.remote.DeleteWorkoutLog(ctx, userID, logID); err != nil {
		e.logger.Warn("failed to mirror log deletion upstream",
			zap.String("log", logID), zap.Error(err))
	}
}
