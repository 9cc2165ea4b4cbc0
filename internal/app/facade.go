// Package app exposes the single read/write surface presentation code
// consumes: profile, workout logs, exercise library and the sync trigger.
// After any mutating call returns, the in-memory state matches what the local
// store holds for the current scope.
package app

import (
	"context"
	"sync"

	"fittrack/internal/domain"
	"fittrack/internal/session"
	"fittrack/internal/store"
	syncengine "fittrack/internal/sync"

	"go.uber.org/zap"
)

// Facade is the application state facade. All reads are served from an
// in-memory snapshot refreshed from the LocalStore; mutations write through
// and refresh synchronously.
type Facade struct {
	local  *store.LocalStore
	engine *syncengine.Engine
	bridge *session.Bridge
	logger *zap.Logger

	mu        sync.RWMutex
	profile   domain.UserProfile
	logs      []domain.WorkoutLog
	exercises []domain.Exercise
}

func NewFacade(local *store.LocalStore, engine *syncengine.Engine, bridge *session.Bridge, logger *zap.Logger) *Facade {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &Facade{
		local:  local,
		engine: engine,
		bridge: bridge,
		logger: logger.Named("app"),
	}
	f.RefreshData()
	return f
}

// Profile returns the current identity's profile.
func (f *Facade) Profile() domain.UserProfile {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.profile
}

// Language is the current language preference, derived from the profile.
func (f *Facade) Language() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.profile.Language
}

// WorkoutLogs returns the current identity's logs, newest first.
func (f *Facade) WorkoutLogs() []domain.WorkoutLog {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.logs
}

// Exercises returns the shared exercise library.
func (f *Facade) Exercises() []domain.Exercise {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.exercises
}

// Syncing reports whether a remote pull-merge is in flight.
func (f *Facade) Syncing() bool {
	return f.engine.InProgress()
}

// RefreshData re-reads profile, logs and exercises from the LocalStore for
// the current scope.
func (f *Facade) RefreshData() {
	profile := f.local.Profile()
	logs := f.local.WorkoutLogs()
	exercises := f.local.Exercises()

	f.mu.Lock()
	f.profile = profile
	f.logs = logs
	f.exercises = exercises
	f.mu.Unlock()
}

// UpdateProfile merges the partial update into the current profile, persists
// it and refreshes state synchronously. When authenticated, the profile is
// also mirrored upstream, best effort.
func (f *Facade) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) error {
	scope := f.local.ActiveScope()
	updated := f.local.GetProfile(scope).Apply(patch)
	if err := f.local.SaveProfile(scope, updated); err != nil {
		return err
	}
	f.RefreshData()

	if state, userID := f.bridge.State(); state == session.StateAuthenticated {
		f.engine.MirrorProfile(ctx, userID, updated)
	}
	return nil
}

// SaveWorkoutLog recomputes the log's volume, persists it locally and, when
// authenticated, mirrors it upstream opportunistically.
func (f *Facade) SaveWorkoutLog(ctx context.Context, log domain.WorkoutLog) error {
	scope := f.local.ActiveScope()
	log.ComputeTotalVolume()
	log.UserID = scope
	if err := f.local.SaveWorkoutLog(scope, log); err != nil {
		return err
	}
	f.RefreshData()

	if state, userID := f.bridge.State(); state == session.StateAuthenticated {
		f.engine.MirrorWorkoutLog(ctx, userID, log)
	}
	return nil
}

// DeleteWorkoutLog removes a log locally and reflects the deletion upstream
// when a remote is configured for the current identity.
func (f *Facade) DeleteWorkoutLog(ctx context.Context, logID string) error {
	scope := f.local.ActiveScope()
	if err := f.local.DeleteWorkoutLog(scope, logID); err != nil {
		return err
	}
	f.RefreshData()

	if state, userID := f.bridge.State(); state == session.StateAuthenticated {
		f.engine.MirrorDelete(ctx, userID, logID)
	}
	return nil
}

// SyncData runs one pull-merge for the authenticated identity and refreshes
// state. Sync failures are returned for display but never leave state stale
// or local data corrupted; calling while unauthenticated is a no-op.
func (f *Facade) SyncData(ctx context.Context) error {
	state, userID := f.bridge.State()
	if state != session.StateAuthenticated {
		return nil
	}
	err := f.engine.SyncFromRemote(ctx, userID)
	f.RefreshData()
	return err
}
