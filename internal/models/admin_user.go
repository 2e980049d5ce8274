package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin role tiers. super_admin and editor count as administrative
// operators; viewer is read-only.
const (
	RoleSuperAdmin = "super_admin"
	RoleEditor     = "editor"
	RoleViewer     = "viewer"
)

// Permission names. PermissionFullAccess is a wildcard that grants
// every permission unconditionally.
const (
	PermissionFullAccess            = "full_access"
	PermissionPropertyManagement    = "property_management"
	PermissionTestimonialManagement = "testimonial_management"
	PermissionReportsView           = "reports_view"
)

// AdminUser associates an identity with an administrative role.
// At most one row exists per identity.
type AdminUser struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	Email     string     `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Name      *string    `gorm:"size:255" json:"name"`
	Role      string     `gorm:"size:20;not null;default:'viewer'" json:"role"`
	CreatedAt time.Time  `json:"created_at"`
}

// ValidRole reports whether role is one of the known tiers.
func ValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// IsAdminRole reports whether role grants administrative access.
// Viewers are authenticated but not admins.
func IsAdminRole(role string) bool {
	return role == RoleSuperAdmin || role == RoleEditor
}

// PermissionsForRole returns the permission set granted by a role tier.
func PermissionsForRole(role string) []string {
	switch role {
	case RoleSuperAdmin:
		return []string{PermissionFullAccess}
	case RoleEditor:
		return []string{PermissionPropertyManagement, PermissionTestimonialManagement}
	case RoleViewer:
		return []string{PermissionReportsView}
	}
	return nil
}

// HasPermission checks set membership, honoring the wildcard.
func HasPermission(perms []string, want string) bool {
	for _, p := range perms {
		if p == PermissionFullAccess || p == want {
			return true
		}
	}
	return false
}
