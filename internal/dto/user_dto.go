package dto

import "github.com/google/uuid"

// UserResponse is the admin-user row shaped for the management UI.
// Department, avatar, status and position are synthesized; they are
// presentation defaults, not stored fields.
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Position    string    `json:"position"`
	Status      string    `json:"status"`
	Avatar      string    `json:"avatar"`
	Department  string    `json:"department"`
	JoinDate    string    `json:"join_date"`
	Permissions []string  `json:"permissions"`
}

// UpdateUserRequest is the generic admin-user passthrough update.
type UpdateUserRequest struct {
	Name *string `json:"name"`
	Role *string `json:"role"`
}
