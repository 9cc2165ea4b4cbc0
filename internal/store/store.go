// Package store implements the device-local persistence layer: a key-value
// cache of profile, workout logs and the exercise library, partitioned by
// identity scope. Reads never fail outward; corrupt or missing data resolves
// to defaults so the app stays usable offline.
package store

import (
	"encoding/json"
	"sort"
	"sync"

	"fittrack/internal/domain"

	"go.uber.org/zap"
)

// Persisted keyspace. Profile and logs are namespaced per scope; the exercise
// library and the guest-mode flag are global.
const (
	keyExercises = "exercises"
	keyGuestMode = "guest_mode"
)

func profileKey(scope string) string { return "profile::" + scope }
func logsKey(scope string) string    { return "logs::" + scope }

// LocalStore owns every byte persisted on the device. A single active-scope
// pointer, mutated only through SetActiveScope, directs the unscoped
// convenience accessors. All access is serialized behind one RWMutex so the
// ordering guarantees hold even with concurrent callers.
type LocalStore struct {
	mu      sync.RWMutex
	backend Backend
	scope   string
	logger  *zap.Logger
}

// New creates a LocalStore over the given backend, initially pointed at scope.
func New(backend Backend, scope string, logger *zap.Logger) *LocalStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalStore{
		backend: backend,
		scope:   scope,
		logger:  logger.Named("store"),
	}
}

// SetActiveScope repoints the unscoped accessors at the given identity.
// Callers must not issue reads for the new identity before this returns.
func (s *LocalStore) SetActiveScope(scope string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scope = scope
}

// ActiveScope returns the identity the unscoped accessors currently serve.
func (s *LocalStore) ActiveScope() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scope
}

// Close releases the underlying backend.
func (s *LocalStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend.Close()
}

// --- Profile ---

// GetProfile returns the stored profile for scope merged over the default
// template. It never fails: no data, unreadable data and corrupt JSON all
// resolve to (partially) default profiles with ID = scope.
func (s *LocalStore) GetProfile(scope string) domain.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getProfileLocked(scope)
}

// Profile is the unscoped convenience form of GetProfile.
func (s *LocalStore) Profile() domain.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getProfileLocked(s.scope)
}

func (s *LocalStore) getProfileLocked(scope string) domain.UserProfile {
	defaults := domain.DefaultProfile(scope)
	var stored domain.UserProfile
	if !s.readJSON(profileKey(scope), &stored) {
		return defaults
	}
	merged := domain.MergeProfile(stored, defaults)
	merged.ID = scope
	return merged
}

// SaveProfile overwrites the stored profile for scope. The write is durable
// before SaveProfile returns.
func (s *LocalStore) SaveProfile(scope string, profile domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile.ID = scope
	return s.writeJSON(profileKey(scope), profile)
}

// --- Workout logs ---

// GetWorkoutLogs returns every log stored for scope, newest first. Absence of
// data yields an empty slice, never nil.
func (s *LocalStore) GetWorkoutLogs(scope string) []domain.WorkoutLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getLogsLocked(scope)
}

// WorkoutLogs is the unscoped convenience form of GetWorkoutLogs.
func (s *LocalStore) WorkoutLogs() []domain.WorkoutLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getLogsLocked(s.scope)
}

func (s *LocalStore) getLogsLocked(scope string) []domain.WorkoutLog {
	logs := []domain.WorkoutLog{}
	s.readJSON(logsKey(scope), &logs)
	sortLogs(logs)
	return logs
}

// SaveWorkoutLog inserts the log into scope's collection, or replaces the
// existing entry with the same id. Idempotent: saving the same log twice
// leaves exactly one entry, with the later call's fields.
func (s *LocalStore) SaveWorkoutLog(scope string, log domain.WorkoutLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs := s.getLogsLocked(scope)
	replaced := false
	for i := range logs {
		if logs[i].ID == log.ID {
			logs[i] = log
			replaced = true
			break
		}
	}
	if !replaced {
		logs = append(logs, log)
	}
	sortLogs(logs)
	return s.writeJSON(logsKey(scope), logs)
}

// DeleteWorkoutLog removes the matching log. Deleting an absent id is a no-op,
// not an error.
func (s *LocalStore) DeleteWorkoutLog(scope, logID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs := s.getLogsLocked(scope)
	kept := logs[:0]
	for _, l := range logs {
		if l.ID != logID {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(logs) {
		return nil
	}
	return s.writeJSON(logsKey(scope), kept)
}

func sortLogs(logs []domain.WorkoutLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Date.After(logs[j].Date)
	})
}

// --- Exercise library ---

// Exercises returns the shared exercise library, seeding the builtin set on
// first access.
func (s *LocalStore) Exercises() []domain.Exercise {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exercises []domain.Exercise
	if s.readJSON(keyExercises, &exercises) && len(exercises) > 0 {
		return exercises
	}
	exercises = domain.BuiltinExercises()
	if err := s.writeJSON(keyExercises, exercises); err != nil {
		s.logger.Warn("failed to seed exercise library", zap.Error(err))
	}
	return exercises
}

// SaveExercises replaces the shared library, e.g. after a remote refresh.
func (s *LocalStore) SaveExercises(exercises []domain.Exercise) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeJSON(keyExercises, exercises)
}

// --- Guest mode flag ---

// GuestMode reports the persisted guest-mode opt-in. Unreadable state counts
// as false.
func (s *LocalStore) GuestMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var enabled bool
	s.readJSON(keyGuestMode, &enabled)
	return enabled
}

// SetGuestMode persists the guest-mode opt-in flag.
func (s *LocalStore) SetGuestMode(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeJSON(keyGuestMode, enabled)
}

// --- Serialization helpers ---

// readJSON loads and decodes key into out. Missing keys, backend read errors
// and undecodable bytes all return false: storage corruption must never crash
// the app, only fall back to defaults.
func (s *LocalStore) readJSON(key string, out any) bool {
	raw, ok, err := s.backend.Get(key)
	if err != nil {
		s.logger.Warn("storage read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.logger.Warn("corrupt stored value, treating as absent",
			zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *LocalStore) writeJSON(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.backend.Put(key, raw)
}
