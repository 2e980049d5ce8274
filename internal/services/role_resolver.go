package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mansaluxe/realty-backend/internal/models"
	"gorm.io/gorm"
)

// DefaultRoleTimeout bounds how long a role lookup may take before the
// caller gives up and treats the identity as not an admin.
const DefaultRoleTimeout = 5 * time.Second

// RoleResolver looks up the AdminUser record for an identity.
// Zero-or-one rows exist per identity.
type RoleResolver struct {
	db *gorm.DB
}

func NewRoleResolver(db *gorm.DB) *RoleResolver {
	return &RoleResolver{db: db}
}

// Resolve returns the admin record for the identity, or (nil, nil)
// when the identity has no admin row.
func (r *RoleResolver) Resolve(ctx context.Context, identityID uuid.UUID) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := r.db.WithContext(ctx).First(&admin, "user_id = ?", identityID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// ResolveClosed races Resolve against a hard timeout and fails closed:
// on timeout or error the identity is treated as not an admin. The
// error is logged, never returned. A timed-out lookup is abandoned,
// not cancelled at the transport level.
func (r *RoleResolver) ResolveClosed(ctx context.Context, identityID uuid.UUID, timeout time.Duration) *models.AdminUser {
	if timeout <= 0 {
		timeout = DefaultRoleTimeout
	}

	type result struct {
		admin *models.AdminUser
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		admin, err := r.Resolve(ctx, identityID)
		ch <- result{admin, err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		if res.err != nil {
			slog.Error("admin role lookup failed", "user_id", identityID, "error", res.err)
			return nil
		}
		return res.admin
	case <-timer.C:
		slog.Error("admin role lookup timed out", "user_id", identityID, "timeout", timeout)
		return nil
	}
}
