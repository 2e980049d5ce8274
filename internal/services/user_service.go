package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mansaluxe/realty-backend/internal/dto"
	"github.com/mansaluxe/realty-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrAdminUserNotFound = errors.New("admin user not found")
	ErrInvalidRole       = errors.New("role must be super_admin, editor or viewer")
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// List returns all admin users, newest first, shaped for the UI.
func (s *UserService) List() ([]dto.UserResponse, error) {
	var users []models.AdminUser
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch admin users: %w", err)
	}
	resp := make([]dto.UserResponse, len(users))
	for i := range users {
		resp[i] = *mapAdminUserToResponse(&users[i])
	}
	return resp, nil
}

func (s *UserService) Get(id uuid.UUID) (*dto.UserResponse, error) {
	var user models.AdminUser
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch admin user: %w", err)
	}
	return mapAdminUserToResponse(&user), nil
}

// Update is the generic admin-user passthrough: only provided fields
// change.
func (s *UserService) Update(id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			return nil, ErrInvalidRole
		}
		updates["role"] = *req.Role
	}

	if len(updates) == 0 {
		return s.Get(id)
	}

	result := s.db.Model(&models.AdminUser{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update admin user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrAdminUserNotFound
	}
	return s.Get(id)
}

func (s *UserService) Count() (int64, error) {
	var n int64
	if err := s.db.Model(&models.AdminUser{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count admin users: %w", err)
	}
	return n, nil
}

// mapAdminUserToResponse fills the stored fields and synthesizes the
// presentation defaults the management UI expects.
func mapAdminUserToResponse(u *models.AdminUser) *dto.UserResponse {
	name := "Admin User"
	if u.Name != nil && *u.Name != "" {
		name = *u.Name
	}
	position := "Editor"
	if u.Role == models.RoleSuperAdmin {
		position = "Super Admin"
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Name:        name,
		Email:       u.Email,
		Role:        u.Role,
		Position:    position,
		Status:      "Active",
		Avatar:      "/placeholder.svg",
		Department:  "Management",
		JoinDate:    u.CreatedAt.Format(time.RFC3339),
		Permissions: models.PermissionsForRole(u.Role),
	}
}
