package sync

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fittrack/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPRemoteFetchWorkoutLogs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/logs", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]domain.WorkoutLog{{ID: "x", TotalVolume: 200}})
	}))
	defer server.Close()

	remote := NewHTTPRemote(server.URL, time.Second, func() string { return "test-token" })

	logs, err := remote.FetchWorkoutLogs(context.Background(), "user_42")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "x", logs[0].ID)
}

func TestHTTPRemoteFetchProfileNotFoundIsNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "No profile stored for this user"})
	}))
	defer server.Close()

	remote := NewHTTPRemote(server.URL, time.Second, func() string { return "" })

	profile, err := remote.FetchProfile(context.Background(), "user_42")
	require.NoError(t, err, "absence of a remote profile is not an error")
	assert.Nil(t, profile)
}

func TestHTTPRemoteSurfacesServerErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "database down"})
	}))
	defer server.Close()

	remote := NewHTTPRemote(server.URL, time.Second, func() string { return "" })

	_, err := remote.FetchWorkoutLogs(context.Background(), "user_42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database down")
}

func TestHTTPRemotePushWorkoutLog(t *testing.T) {
	var received domain.WorkoutLog
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/logs/log-1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(received)
	}))
	defer server.Close()

	remote := NewHTTPRemote(server.URL, time.Second, func() string { return "t" })

	err := remote.PushWorkoutLog(context.Background(), "user_42", domain.WorkoutLog{ID: "log-1", Name: "Push day"})
	require.NoError(t, err)
	assert.Equal(t, "Push day", received.Name)
}

func TestHTTPRemoteDeleteWorkoutLog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/logs/log-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	remote := NewHTTPRemote(server.URL, time.Second, func() string { return "t" })

	assert.NoError(t, remote.DeleteWorkoutLog(context.Background(), "user_42", "log-1"))
}
