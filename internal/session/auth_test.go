package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, subject string, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("auth-test-secret"))
	require.NoError(t, err)
	return token
}

// newAuthServer mimics syncd's auth endpoints: one known account, everything
// else gets a 401.
func newAuthServer(t *testing.T, token string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.Email == "taken@example.com" {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"error": "user with this email already exists"})
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"id": "user_42"})
	})
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "open sesame" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "authentication failed"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"token": token,
			"user":  map[string]string{"id": "user_42"},
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestSignInEstablishesSession(t *testing.T) {
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signTestToken(t, "user_42", expiry)
	server := newAuthServer(t, token)
	client := NewHTTPAuthClient(server.URL, t.TempDir(), 0)

	session, err := client.SignIn(context.Background(), "alex@example.com", "open sesame")
	require.NoError(t, err)
	assert.Equal(t, "user_42", session.UserID)
	assert.Equal(t, token, session.Token)
	assert.WithinDuration(t, expiry, session.ExpiresAt, time.Second)
}

func TestSignInBadPasswordIsTypedError(t *testing.T) {
	server := newAuthServer(t, signTestToken(t, "user_42", time.Now().Add(time.Hour)))
	client := NewHTTPAuthClient(server.URL, t.TempDir(), 0)

	_, err := client.SignIn(context.Background(), "alex@example.com", "wrong")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestSignUpTakenEmailIsTypedError(t *testing.T) {
	server := newAuthServer(t, signTestToken(t, "user_42", time.Now().Add(time.Hour)))
	client := NewHTTPAuthClient(server.URL, t.TempDir(), 0)

	_, err := client.SignUp(context.Background(), "Alex", "taken@example.com", "open sesame")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestSessionSurvivesRestart(t *testing.T) {
	token := signTestToken(t, "user_42", time.Now().Add(time.Hour))
	server := newAuthServer(t, token)
	dataDir := t.TempDir()

	client := NewHTTPAuthClient(server.URL, dataDir, 0)
	_, err := client.SignIn(context.Background(), "alex@example.com", "open sesame")
	require.NoError(t, err)

	// A fresh client over the same data dir finds the persisted session.
	restarted := NewHTTPAuthClient(server.URL, dataDir, 0)
	session, err := restarted.CurrentSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "user_42", session.UserID)
	assert.Equal(t, token, session.Token)
}

func TestSignOutRemovesPersistedSession(t *testing.T) {
	server := newAuthServer(t, signTestToken(t, "user_42", time.Now().Add(time.Hour)))
	dataDir := t.TempDir()

	client := NewHTTPAuthClient(server.URL, dataDir, 0)
	_, err := client.SignIn(context.Background(), "alex@example.com", "open sesame")
	require.NoError(t, err)
	require.NoError(t, client.SignOut(context.Background()))

	session, err := client.CurrentSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, session)

	_, statErr := os.Stat(filepath.Join(dataDir, "session.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestCurrentSessionIgnoresExpired(t *testing.T) {
	dataDir := t.TempDir()
	stale := Session{
		Token:     "stale",
		UserID:    "user_42",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	raw, err := json.Marshal(stale)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "session.json"), raw, 0o600))

	client := NewHTTPAuthClient("http://unused", dataDir, 0)
	session, err := client.CurrentSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestCurrentSessionToleratesCorruptFile(t *testing.T) {
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "session.json"), []byte("{not json"), 0o600))

	client := NewHTTPAuthClient("http://unused", dataDir, 0)
	session, err := client.CurrentSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestSubscribeObservesSessionChanges(t *testing.T) {
	server := newAuthServer(t, signTestToken(t, "user_42", time.Now().Add(time.Hour)))
	client := NewHTTPAuthClient(server.URL, t.TempDir(), 0)

	var seen []*Session
	unsubscribe := client.Subscribe(func(s *Session) { seen = append(seen, s) })

	_, err := client.SignIn(context.Background(), "alex@example.com", "open sesame")
	require.NoError(t, err)
	require.NoError(t, client.SignOut(context.Background()))

	require.Len(t, seen, 2)
	assert.Equal(t, "user_42", seen[0].UserID)
	assert.Nil(t, seen[1])

	unsubscribe()
	require.NoError(t, client.SignOut(context.Background()))
	assert.Len(t, seen, 2, "no notifications after unsubscribe")
}
