package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mansaluxe/realty-backend/internal/config"
	"github.com/mansaluxe/realty-backend/internal/dto"
	"github.com/mansaluxe/realty-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials is deliberately generic: it never reveals
	// whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrAccessDenied       = errors.New("access denied")
)

type AuthService struct {
	db       *gorm.DB
	cfg      *config.Config
	resolver *RoleResolver
}

func NewAuthService(db *gorm.DB, cfg *config.Config, resolver *RoleResolver) *AuthService {
	return &AuthService{db: db, cfg: cfg, resolver: resolver}
}

// Login verifies credentials, resolves the admin role (fail closed)
// and rejects identities without an administrative tier. A valid
// identity that is not an admin is signed out immediately rather than
// left in an authenticated-but-unprivileged state.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	admin := s.resolver.ResolveClosed(ctx, user.ID, s.cfg.RoleTimeout)
	if admin == nil || !models.IsAdminRole(admin.Role) {
		return nil, ErrAccessDenied
	}

	return s.generateTokenPair(&user, admin)
}

// Refresh rotates the refresh token and re-checks the admin role; a
// principal demoted since login loses access here.
func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	admin := s.resolver.ResolveClosed(ctx, user.ID, s.cfg.RoleTimeout)
	if admin == nil || !models.IsAdminRole(admin.Role) {
		return nil, ErrAccessDenied
	}

	return s.generateTokenPair(&user, admin)
}

// Logout revokes the refresh token. Failures are logged, not returned:
// from the caller's perspective "sign me out" always succeeds.
func (s *AuthService) Logout(req *dto.LogoutRequest) {
	tokenHash := hashToken(req.RefreshToken)
	err := s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
	if err != nil {
		slog.Error("logout cleanup failed", "error", err)
	}
}

// Me returns the principal view for an authenticated identity.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*dto.AdminUserView, error) {
	admin := s.resolver.ResolveClosed(ctx, userID, s.cfg.RoleTimeout)
	if admin == nil {
		return nil, ErrAccessDenied
	}
	view := adminUserView(admin)
	return &view, nil
}

// BootstrapAdmin ensures the configured admin identity and role row
// exist. Safe to run on every startup.
func (s *AuthService) BootstrapAdmin() error {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		return nil
	}

	var user models.User
	err := s.db.Where("email = ?", s.cfg.AdminEmail).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash bootstrap password: %w", err)
		}
		user = models.User{ID: uuid.New(), Email: s.cfg.AdminEmail, Password: string(hash)}
		if err := s.db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create bootstrap user: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to look up bootstrap user: %w", err)
	}

	var admin models.AdminUser
	err = s.db.Where("user_id = ?", user.ID).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		admin = models.AdminUser{
			ID:     uuid.New(),
			UserID: &user.ID,
			Email:  user.Email,
			Role:   models.RoleSuperAdmin,
		}
		if s.cfg.AdminName != "" {
			name := s.cfg.AdminName
			admin.Name = &name
		}
		if err := s.db.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to create bootstrap admin: %w", err)
		}
		slog.Info("bootstrap admin created", "email", user.Email)
	} else if err != nil {
		return fmt.Errorf("failed to look up bootstrap admin: %w", err)
	}
	return nil
}

func (s *AuthService) generateTokenPair(user *models.User, admin *models.AdminUser) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user, admin)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.cfg.JWTAccessExpiry.Seconds()),
		User:         adminUserView(admin),
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User, admin *models.AdminUser) (string, error) {
	claims := jwt.MapClaims{
		"sub":         user.ID.String(),
		"email":       user.Email,
		"role":        admin.Role,
		"permissions": models.PermissionsForRole(admin.Role),
		"iat":         time.Now().Unix(),
		"exp":         time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func adminUserView(admin *models.AdminUser) dto.AdminUserView {
	name := "Admin User"
	if admin.Name != nil && *admin.Name != "" {
		name = *admin.Name
	}
	return dto.AdminUserView{
		ID:          admin.ID,
		Email:       admin.Email,
		Name:        name,
		Role:        admin.Role,
		Permissions: models.PermissionsForRole(admin.Role),
	}
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
