package session

import (
	"context"
	"testing"
	"time"

	"fittrack/internal/domain"
	"fittrack/internal/identity"
	"fittrack/internal/store"
	syncengine "fittrack/internal/sync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuth is an in-memory AuthClient double.
type fakeAuth struct {
	session   *Session
	signInErr error
	observers []func(*Session)
}

func (f *fakeAuth) SignUp(ctx context.Context, name, email, password string) (*Session, error) {
	return f.SignIn(ctx, email, password)
}

func (f *fakeAuth) SignIn(ctx context.Context, email, password string) (*Session, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return f.session, nil
}

func (f *fakeAuth) SignOut(ctx context.Context) error {
	f.session = nil
	return nil
}

func (f *fakeAuth) CurrentSession(ctx context.Context) (*Session, error) {
	return f.session, nil
}

func (f *fakeAuth) Subscribe(fn func(*Session)) func() {
	f.observers = append(f.observers, fn)
	return func() { f.observers = nil }
}

// fakeRemote serves a fixed set of logs for any user.
type fakeRemote struct {
	logs []domain.WorkoutLog
}

func (f *fakeRemote) FetchProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return nil, nil
}

func (f *fakeRemote) FetchWorkoutLogs(ctx context.Context, userID string) ([]domain.WorkoutLog, error) {
	return f.logs, nil
}

func (f *fakeRemote) PushProfile(ctx context.Context, userID string, profile domain.UserProfile) error {
	return nil
}

func (f *fakeRemote) PushWorkoutLog(ctx context.Context, userID string, log domain.WorkoutLog) error {
	return nil
}

func (f *fakeRemote) DeleteWorkoutLog(ctx context.Context, userID, logID string) error {
	return nil
}

func newTestBridge(auth AuthClient, remote syncengine.RemoteStore) (*Bridge, *store.LocalStore) {
	local := store.New(store.NewMemoryBackend(), identity.GuestScope, nil)
	resolver := identity.NewResolver(local, nil)
	engine := syncengine.NewEngine(local, remote, nil)
	return NewBridge(auth, resolver, engine, local, nil), local
}

func TestStartWithoutSessionStaysOnGuestScope(t *testing.T) {
	bridge, local := newTestBridge(&fakeAuth{}, &fakeRemote{})

	require.NoError(t, bridge.Start(context.Background()))

	state, _ := bridge.State()
	assert.Equal(t, StateUnauthenticated, state)
	assert.Equal(t, identity.GuestScope, local.ActiveScope())
}

func TestIdentityTransitionIsolatesGuestData(t *testing.T) {
	remoteLog := domain.WorkoutLog{ID: "L2", Name: "Remote session", Date: time.Now()}
	auth := &fakeAuth{session: &Session{Token: "t", UserID: "user_42"}}
	bridge, local := newTestBridge(auth, &fakeRemote{logs: []domain.WorkoutLog{remoteLog}})

	// A guest records one workout before ever signing in.
	guestLog := domain.WorkoutLog{ID: "L1", Name: "Guest session", Date: time.Now()}
	require.NoError(t, local.SaveWorkoutLog(identity.GuestScope, guestLog))

	require.NoError(t, bridge.Start(context.Background()))

	state, userID := bridge.State()
	assert.Equal(t, StateAuthenticated, state)
	assert.Equal(t, "user_42", userID)
	assert.Equal(t, "user_42", local.ActiveScope())

	// Guest data stays isolated; the user's scope holds only the pulled log.
	userLogs := local.GetWorkoutLogs("user_42")
	require.Len(t, userLogs, 1)
	assert.Equal(t, "L2", userLogs[0].ID)

	guestLogs := local.GetWorkoutLogs(identity.GuestScope)
	require.Len(t, guestLogs, 1)
	assert.Equal(t, "L1", guestLogs[0].ID)
}

func TestSignInClearsGuestModeFlag(t *testing.T) {
	auth := &fakeAuth{}
	bridge, local := newTestBridge(auth, &fakeRemote{})
	require.NoError(t, bridge.Start(context.Background()))
	require.NoError(t, bridge.EnterGuestMode())
	require.True(t, local.GuestMode())

	auth.session = &Session{Token: "t", UserID: "user_42"}
	require.NoError(t, bridge.SignIn(context.Background(), "alex@example.com", "secret123"))

	assert.False(t, local.GuestMode(), "a real session supersedes guest mode")
}

func TestSignOutKeepsGuestScopeData(t *testing.T) {
	auth := &fakeAuth{session: &Session{Token: "t", UserID: "user_42"}}
	bridge, local := newTestBridge(auth, &fakeRemote{})

	guestLog := domain.WorkoutLog{ID: "L1", Date: time.Now()}
	require.NoError(t, local.SaveWorkoutLog(identity.GuestScope, guestLog))
	require.NoError(t, bridge.Start(context.Background()))
	require.Equal(t, "user_42", local.ActiveScope())

	require.NoError(t, bridge.SignOut(context.Background()))

	state, _ := bridge.State()
	assert.Equal(t, StateUnauthenticated, state)
	assert.Equal(t, identity.GuestScope, local.ActiveScope())
	assert.Len(t, local.GetWorkoutLogs(identity.GuestScope), 1, "guest data survives sign-out")
}

func TestSignInFailurePropagatesTyped(t *testing.T) {
	auth := &fakeAuth{signInErr: ErrAuthenticationFailed}
	bridge, local := newTestBridge(auth, &fakeRemote{})
	require.NoError(t, bridge.Start(context.Background()))

	err := bridge.SignIn(context.Background(), "alex@example.com", "wrong")

	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	assert.Equal(t, identity.GuestScope, local.ActiveScope(), "no transition on failure")
}

func TestExpiredSessionTreatedAsSignedOut(t *testing.T) {
	auth := &fakeAuth{session: &Session{
		Token:     "t",
		UserID:    "user_42",
		ExpiresAt: time.Now().Add(-time.Hour),
	}}
	bridge, local := newTestBridge(auth, &fakeRemote{})

	require.NoError(t, bridge.Start(context.Background()))

	state, _ := bridge.State()
	assert.Equal(t, StateUnauthenticated, state)
	assert.Equal(t, identity.GuestScope, local.ActiveScope())
}

func TestCloseDisposesSubscription(t *testing.T) {
	auth := &fakeAuth{}
	bridge, _ := newTestBridge(auth, &fakeRemote{})
	require.NoError(t, bridge.Start(context.Background()))
	require.NotEmpty(t, auth.observers)

	bridge.Close()

	assert.Empty(t, auth.observers)
	bridge.Close() // second close is safe
}
