package store

import (
	"path/filepath"
	"testing"
	"time"

	"fittrack/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	return New(NewMemoryBackend(), "default_user", nil)
}

func logOn(id string, date time.Time) domain.WorkoutLog {
	return domain.WorkoutLog{ID: id, Name: "Session " + id, Date: date}
}

func TestSaveWorkoutLogIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	log := logOn("log-1", time.Now())
	log.TotalVolume = 150

	require.NoError(t, s.SaveWorkoutLog("scope_a", log))
	log.TotalVolume = 200
	require.NoError(t, s.SaveWorkoutLog("scope_a", log))

	logs := s.GetWorkoutLogs("scope_a")
	require.Len(t, logs, 1)
	assert.Equal(t, "log-1", logs[0].ID)
	assert.Equal(t, 200.0, logs[0].TotalVolume, "second save's fields win")
}

func TestScopeIsolation(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveWorkoutLog("scope_a", logOn("log-1", time.Now())))

	assert.Empty(t, s.GetWorkoutLogs("scope_b"))
	assert.Empty(t, s.GetWorkoutLogs("default_user"))
	assert.Len(t, s.GetWorkoutLogs("scope_a"), 1)
}

func TestGetProfileOnEmptyStoreReturnsDefaults(t *testing.T) {
	s := newTestStore(t)

	profile := s.GetProfile("scope_a")

	assert.Equal(t, "scope_a", profile.ID)
	assert.NotEmpty(t, profile.Name)
	assert.NotZero(t, profile.WeightKg)
	assert.NotEmpty(t, profile.StrengthRecords)
}

func TestGetProfileMergesStoredOverDefaults(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveProfile("scope_a", domain.UserProfile{Name: "Alex", WeightKg: 82}))

	profile := s.GetProfile("scope_a")

	assert.Equal(t, "Alex", profile.Name)
	assert.Equal(t, 82.0, profile.WeightKg)
	assert.NotEmpty(t, profile.StrengthRecords, "default records fill in when none stored")
	assert.Equal(t, "scope_a", profile.ID)
}

func TestGetWorkoutLogsSortedByDateDescending(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()
	// Insert out of order.
	require.NoError(t, s.SaveWorkoutLog("scope_a", logOn("old", now.Add(-48*time.Hour))))
	require.NoError(t, s.SaveWorkoutLog("scope_a", logOn("new", now)))
	require.NoError(t, s.SaveWorkoutLog("scope_a", logOn("mid", now.Add(-24*time.Hour))))

	logs := s.GetWorkoutLogs("scope_a")

	require.Len(t, logs, 3)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{logs[0].ID, logs[1].ID, logs[2].ID})
}

func TestDeleteWorkoutLogMissingIDIsNoOp(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveWorkoutLog("scope_a", logOn("log-1", time.Now())))

	require.NoError(t, s.DeleteWorkoutLog("scope_a", "nonexistent-id"))

	assert.Len(t, s.GetWorkoutLogs("scope_a"), 1)
}

func TestDeleteWorkoutLogRemovesEntry(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveWorkoutLog("scope_a", logOn("log-1", time.Now())))
	require.NoError(t, s.DeleteWorkoutLog("scope_a", "log-1"))

	assert.Empty(t, s.GetWorkoutLogs("scope_a"))
}

func TestCorruptStoredJSONFailsSoft(t *testing.T) {
	backend := NewMemoryBackend()
	require.NoError(t, backend.Put("profile::scope_a", []byte("{not json")))
	require.NoError(t, backend.Put("logs::scope_a", []byte("also not json")))
	s := New(backend, "scope_a", nil)

	profile := s.GetProfile("scope_a")
	logs := s.GetWorkoutLogs("scope_a")

	assert.Equal(t, "scope_a", profile.ID, "corrupt profile resolves to defaults")
	assert.NotNil(t, logs)
	assert.Empty(t, logs)

	// The store must still accept writes afterwards.
	require.NoError(t, s.SaveWorkoutLog("scope_a", logOn("log-1", time.Now())))
	assert.Len(t, s.GetWorkoutLogs("scope_a"), 1)
}

func TestExercisesSeededOnFirstAccess(t *testing.T) {
	s := newTestStore(t)

	first := s.Exercises()
	second := s.Exercises()

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestActiveScopeDirectsConvenienceAccessors(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveWorkoutLog("default_user", logOn("guest-log", time.Now())))

	assert.Len(t, s.WorkoutLogs(), 1)

	s.SetActiveScope("user_42")
	assert.Empty(t, s.WorkoutLogs(), "new scope must not see the old scope's data")
	assert.Equal(t, "user_42", s.Profile().ID)

	s.SetActiveScope("default_user")
	assert.Len(t, s.WorkoutLogs(), 1)
}

func TestGuestModeFlagRoundTrip(t *testing.T) {
	s := newTestStore(t)

	assert.False(t, s.GuestMode())
	require.NoError(t, s.SetGuestMode(true))
	assert.True(t, s.GuestMode())
	require.NoError(t, s.SetGuestMode(false))
	assert.False(t, s.GuestMode())
}

func TestSQLiteBackendRoundTrip(t *testing.T) {
	backend, err := NewSQLiteBackend(filepath.Join(t.TempDir(), "fittrack.db"))
	require.NoError(t, err)
	defer backend.Close()

	_, ok, err := backend.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, backend.Put("k", []byte("v1")))
	require.NoError(t, backend.Put("k", []byte("v2")))

	value, ok, err := backend.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v2"), value)

	require.NoError(t, backend.Delete("k"))
	_, ok, err = backend.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}
