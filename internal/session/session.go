// Package session owns client-side authentication state: who is signed
// in, whether they are an admin, and whether resolution is still in
// flight. It is an explicit, owned state object with a defined
// lifecycle and an observer mechanism, not ambient global state.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mansaluxe/realty-backend/internal/models"
)

// Identity is an authenticated principal as known to the identity
// provider. Read-only here; it lives and dies with the session.
type Identity struct {
	ID    uuid.UUID
	Email string
	Name  string
}

// Session is a credential bound to an Identity, with expiry. The
// manager holds a non-owning cached copy.
type Session struct {
	Identity     Identity
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// IdentityProvider issues and verifies sessions. Implementations must
// replay the current session (possibly nil) to a new OnSessionChange
// subscriber.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
	GetSession(ctx context.Context) (*Session, error)
	OnSessionChange(fn func(*Session)) (unsubscribe func())
}

// RoleResolver determines whether an identity is an administrative
// operator. Zero-or-one admin records exist per identity.
type RoleResolver interface {
	Resolve(ctx context.Context, identityID uuid.UUID) (*models.AdminUser, error)
}

// State is a snapshot of the auth context.
type State struct {
	Identity  *Identity
	Session   *Session
	AdminUser *models.AdminUser
	Loading   bool
}

func (s State) IsAuthenticated() bool {
	return s.Identity != nil
}

// IsAdmin is true only for the administrative tiers; viewers are
// authenticated but not admins.
func (s State) IsAdmin() bool {
	return s.AdminUser != nil && models.IsAdminRole(s.AdminUser.Role)
}

// Permissions returns the principal's permission set, empty when no
// admin role is resolved.
func (s State) Permissions() []string {
	if s.AdminUser == nil {
		return nil
	}
	return models.PermissionsForRole(s.AdminUser.Role)
}
