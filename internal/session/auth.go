package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// --- Error Definitions ---
var (
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrNoSession            = errors.New("no active session")
)

// Session is an authenticated session with the identity service. UserID is
// the stable identifier that becomes the storage scope.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session token is past its expiry.
func (s *Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && s.ExpiresAt.Before(time.Now())
}

// AuthClient is the identity service consumed by the bridge: explicit
// sign-up/sign-in/sign-out, a startup session probe, and an observer
// registration for session changes. Subscribe returns a disposer.
type AuthClient interface {
	SignUp(ctx context.Context, name, email, password string) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
	// CurrentSession returns the persisted session, or nil if none is active.
	CurrentSession(ctx context.Context) (*Session, error)
	Subscribe(fn func(*Session)) (unsubscribe func())
}

// httpAuthClient implements AuthClient against syncd's auth endpoints,
// persisting the session token in the client data directory so it survives
// restarts.
type httpAuthClient struct {
	baseURL     string
	client      *http.Client
	sessionPath string

	mu        sync.Mutex
	current   *Session
	observers map[int]func(*Session)
	nextID    int
}

// NewHTTPAuthClient creates an AuthClient for the given server. dataDir is
// where the session file lives.
func NewHTTPAuthClient(baseURL, dataDir string, timeout time.Duration) AuthClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &httpAuthClient{
		baseURL:     baseURL,
		client:      &http.Client{Timeout: timeout},
		sessionPath: filepath.Join(dataDir, "session.json"),
		observers:   make(map[int]func(*Session)),
	}
}

type credentialsRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID string `json:"id"`
	} `json:"user"`
}

func (c *httpAuthClient) SignUp(ctx context.Context, name, email, password string) (*Session, error) {
	body := credentialsRequest{Name: name, Email: email, Password: password}
	if err := c.post(ctx, "/api/v1/auth/register", body, nil); err != nil {
		return nil, err
	}
	// Registration succeeded; establish the session with a regular sign-in.
	return c.SignIn(ctx, email, password)
}

func (c *httpAuthClient) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var resp loginResponse
	body := credentialsRequest{Email: email, Password: password}
	if err := c.post(ctx, "/api/v1/auth/login", body, &resp); err != nil {
		return nil, err
	}

	session := &Session{
		Token:     resp.Token,
		UserID:    resp.User.ID,
		ExpiresAt: tokenExpiry(resp.Token),
	}
	if session.UserID == "" {
		// Fall back to the token subject if the server omitted the user block.
		session.UserID = tokenSubject(resp.Token)
	}

	c.setSession(session)
	return session, nil
}

func (c *httpAuthClient) SignOut(ctx context.Context) error {
	c.setSession(nil)
	return nil
}

func (c *httpAuthClient) CurrentSession(ctx context.Context) (*Session, error) {
	c.mu.Lock()
	if c.current != nil {
		session := *c.current
		c.mu.Unlock()
		return &session, nil
	}
	c.mu.Unlock()

	raw, err := os.ReadFile(c.sessionPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		// Corrupt session file: treat as signed out rather than failing startup.
		return nil, nil
	}
	if session.Expired() {
		return nil, nil
	}

	c.mu.Lock()
	c.current = &session
	c.mu.Unlock()
	out := session
	return &out, nil
}

func (c *httpAuthClient) Subscribe(fn func(*Session)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.observers[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, id)
	}
}

// setSession updates memory and disk, then notifies observers outside the lock.
func (c *httpAuthClient) setSession(session *Session) {
	c.mu.Lock()
	c.current = session
	if session == nil {
		os.Remove(c.sessionPath)
	} else if raw, err := json.Marshal(session); err == nil {
		os.MkdirAll(filepath.Dir(c.sessionPath), 0o755)
		os.WriteFile(c.sessionPath, raw, 0o600)
	}
	observers := make([]func(*Session), 0, len(c.observers))
	for _, fn := range c.observers {
		observers = append(observers, fn)
	}
	c.mu.Unlock()

	for _, fn := range observers {
		fn(session)
	}
}

func (c *httpAuthClient) post(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrAuthenticationFailed
	case resp.StatusCode == http.StatusConflict:
		return ErrUserAlreadyExists
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		var remoteErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&remoteErr); decodeErr == nil && remoteErr.Error != "" {
			return fmt.Errorf("identity service returned %d: %s", resp.StatusCode, remoteErr.Error)
		}
		return fmt.Errorf("identity service returned %d", resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// tokenSubject extracts the subject claim without verifying the signature.
// Verification happens server-side; the client only needs the stable id.
func tokenSubject(token string) string {
	claims := jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	if err != nil {
		return ""
	}
	return claims.Subject
}

func tokenExpiry(token string) time.Time {
	claims := jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
