package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fittrack/internal/domain"
)

// RemoteStore is the remote authoritative store for an authenticated user.
// Fetch* feeds the pull-merge; the Push/Delete operations mirror local writes
// upstream opportunistically.
type RemoteStore interface {
	// FetchProfile returns the user's remote profile, or nil if none exists yet.
	FetchProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
	FetchWorkoutLogs(ctx context.Context, userID string) ([]domain.WorkoutLog, error)
	PushProfile(ctx context.Context, userID string, profile domain.UserProfile) error
	PushWorkoutLog(ctx context.Context, userID string, log domain.WorkoutLog) error
	DeleteWorkoutLog(ctx context.Context, userID, logID string) error
}

// TokenSource supplies the bearer token for the current session. Returns ""
// when no session is active.
type TokenSource func() string

// httpRemote implements RemoteStore against the syncd JSON API.
type httpRemote struct {
	baseURL string
	client  *http.Client
	token   TokenSource
}

// NewHTTPRemote creates a RemoteStore talking to the given base URL
// (e.g. "http://localhost:8080"). Tokens are read per request so the client
// survives re-authentication.
func NewHTTPRemote(baseURL string, timeout time.Duration, token TokenSource) RemoteStore {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &httpRemote{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		token:   token,
	}
}

func (r *httpRemote) FetchProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	status, err := r.do(ctx, http.MethodGet, "/api/v1/profile", nil, &profile)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	return &profile, nil
}

func (r *httpRemote) FetchWorkoutLogs(ctx context.Context, userID string) ([]domain.WorkoutLog, error) {
	var logs []domain.WorkoutLog
	status, err := r.do(ctx, http.MethodGet, "/api/v1/logs", nil, &logs)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	return logs, nil
}

func (r *httpRemote) PushProfile(ctx context.Context, userID string, profile domain.UserProfile) error {
	_, err := r.do(ctx, http.MethodPut, "/api/v1/profile", profile, nil)
	return err
}

func (r *httpRemote) PushWorkoutLog(ctx context.Context, userID string, log domain.WorkoutLog) error {
	_, err := r.do(ctx, http.MethodPut, "/api/v1/logs/"+log.ID, log, nil)
	return err
}

func (r *httpRemote) DeleteWorkoutLog(ctx context.Context, userID, logID string) error {
	_, err := r.do(ctx, http.MethodDelete, "/api/v1/logs/"+logID, nil, nil)
	return err
}

// errorResponse matches the {"error": "..."} body syncd returns on failure.
type errorResponse struct {
	Error string `json:"error"`
}

// do executes one JSON round trip. 404 is reported through the status return
// (absence is not an error for fetches); any other non-2xx becomes an error
// carrying the server's message.
func (r *httpRemote) do(ctx context.Context, method, path string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := r.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return resp.StatusCode, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var remoteErr errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&remoteErr); decodeErr == nil && remoteErr.Error != "" {
			return resp.StatusCode, fmt.Errorf("remote store returned %d: %s", resp.StatusCode, remoteErr.Error)
		}
		return resp.StatusCode, fmt.Errorf("remote store returned %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode remote response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
