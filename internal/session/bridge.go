// Package session observes authentication state and drives identity
// transitions: scope repointing first, then a single sync, in that order.
package session

import (
	"context"
	"sync"

	"fittrack/internal/identity"
	syncengine "fittrack/internal/sync"
	"fittrack/internal/store"

	"go.uber.org/zap"
)

// State is the bridge's view of authentication.
type State int

const (
	// StateUnknown is the initial state while the startup session probe is pending.
	StateUnknown State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Bridge reacts to session transitions. On sign-in it clears the persisted
// guest-mode flag, repoints the identity resolver and triggers one sync; on
// sign-out it drops the session but leaves guest-scope data untouched.
type Bridge struct {
	auth     AuthClient
	resolver *identity.Resolver
	engine   *syncengine.Engine
	local    *store.LocalStore
	logger   *zap.Logger

	mu          sync.Mutex
	state       State
	userID      string
	unsubscribe func()
}

func NewBridge(auth AuthClient, resolver *identity.Resolver, engine *syncengine.Engine, local *store.LocalStore, logger *zap.Logger) *Bridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bridge{
		auth:     auth,
		resolver: resolver,
		engine:   engine,
		local:    local,
		logger:   logger.Named("session"),
		state:    StateUnknown,
	}
}

// Start probes the identity service for an existing session and subscribes to
// session changes (cross-device logout, token expiry). Call Close to release
// the subscription.
func (b *Bridge) Start(ctx context.Context) error {
	b.mu.Lock()
	if b.unsubscribe == nil {
		b.unsubscribe = b.auth.Subscribe(func(s *Session) {
			b.applySession(context.Background(), s)
		})
	}
	b.mu.Unlock()

	current, err := b.auth.CurrentSession(ctx)
	if err != nil {
		b.logger.Warn("session probe failed, continuing unauthenticated", zap.Error(err))
		current = nil
	}
	b.applySession(ctx, current)
	return nil
}

// Close disposes the session subscription. Safe to call more than once.
func (b *Bridge) Close() {
	b.mu.Lock()
	unsubscribe := b.unsubscribe
	b.unsubscribe = nil
	b.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

// State returns the current state and, when authenticated, the user id.
func (b *Bridge) State() (State, string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state, b.userID
}

// SignIn authenticates and applies the identity transition. Auth failures are
// returned typed (ErrAuthenticationFailed) for the caller to display.
func (b *Bridge) SignIn(ctx context.Context, email, password string) error {
	session, err := b.auth.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	b.applySession(ctx, session)
	return nil
}

// SignUp registers a new account and signs in.
func (b *Bridge) SignUp(ctx context.Context, name, email, password string) error {
	session, err := b.auth.SignUp(ctx, name, email, password)
	if err != nil {
		return err
	}
	b.applySession(ctx, session)
	return nil
}

// SignOut clears the session and returns to the guest scope. Guest-scope
// local data is preserved.
func (b *Bridge) SignOut(ctx context.Context) error {
	if err := b.auth.SignOut(ctx); err != nil {
		return err
	}
	b.applySession(ctx, nil)
	return nil
}

// EnterGuestMode records the user's explicit choice to use the app without an
// account. The flag is cleared automatically on the next authenticated session.
func (b *Bridge) EnterGuestMode() error {
	return b.local.SetGuestMode(true)
}

// GuestMode reports the persisted guest-mode opt-in.
func (b *Bridge) GuestMode() bool {
	return b.local.GuestMode()
}

// applySession performs one identity transition. Ordering matters: the scope
// is repointed before any sync or read can run for the new identity.
func (b *Bridge) applySession(ctx context.Context, session *Session) {
	if session != nil && session.Expired() {
		session = nil
	}

	b.mu.Lock()
	previousState := b.state
	previousUser := b.userID
	if session == nil {
		b.state = StateUnauthenticated
		b.userID = ""
	} else {
		b.state = StateAuthenticated
		b.userID = session.UserID
	}
	state := b.state
	userID := b.userID
	b.mu.Unlock()

	if state == previousState && userID == previousUser {
		// Notification confirming what we already applied.
		return
	}

	if session == nil {
		b.resolver.Resolve("")
		b.logger.Info("session ended, storage back on guest scope")
		return
	}

	// A real session supersedes guest mode.
	if b.local.GuestMode() {
		if err := b.local.SetGuestMode(false); err != nil {
			b.logger.Warn("failed to clear guest-mode flag", zap.Error(err))
		}
	}

	b.resolver.Resolve(session.UserID)
	b.logger.Info("session established", zap.String("user", session.UserID))

	if err := b.engine.SyncFromRemote(ctx, session.UserID); err != nil {
		// Sync failure leaves local data usable; the user can retry manually.
		b.logger.Warn("post-login sync failed", zap.Error(err))
	}
}
