// Package identity maps authentication state to the storage scope the rest
// of the core reads and writes under.
package identity

import (
	"fittrack/internal/store"

	"go.uber.org/zap"
)

// GuestScope is the storage scope used whenever no user is authenticated.
// Guest data lives only on the device and never syncs remotely.
const GuestScope = "default_user"

// Resolver owns the mapping from "who is signed in" to "which scope the
// LocalStore serves". Resolve repoints the store before returning, so a
// caller can never read the previous identity's data after a transition.
type Resolver struct {
	store  *store.LocalStore
	logger *zap.Logger
}

func NewResolver(localStore *store.LocalStore, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{store: localStore, logger: logger.Named("identity")}
}

// Resolve maps an authenticated user id (or "" for no user) to a scope and
// repoints the LocalStore at it synchronously.
func (r *Resolver) Resolve(userID string) string {
	scope := GuestScope
	if userID != "" {
		scope = userID
	}
	if scope != r.store.ActiveScope() {
		r.logger.Info("switching storage scope", zap.String("scope", scope))
	}
	r.store.SetActiveScope(scope)
	return scope
}

// ActiveScope returns the scope currently served by the LocalStore.
func (r *Resolver) ActiveScope() string {
	return r.store.ActiveScope()
}

// IsGuest reports whether the active scope is the guest scope.
func (r *Resolver) IsGuest() bool {
	return r.store.ActiveScope() == GuestScope
}
