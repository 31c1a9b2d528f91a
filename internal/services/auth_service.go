package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db     *gorm.DB
	tokens *TokenService
	// dummyHash is compared against when no account matches, so a missing
	// account costs the same bcrypt round as a wrong password.
	dummyHash []byte
}

func NewAuthService(db *gorm.DB, tokens *TokenService, bcryptCost int) (*AuthService, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare password comparison: %w", err)
	}
	return &AuthService{db: db, tokens: tokens, dummyHash: dummy}, nil
}

// NormalizeEmail lowercases and trims an address the way accounts are stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login verifies credentials. Unknown email, deactivated account and wrong
// password all yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", NormalizeEmail(req.Email)).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to load account: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
		return nil, ErrInvalidCredentials
	}

	passwordErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password))
	if passwordErr != nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	access, err := s.tokens.IssueAccessToken(&user)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefreshToken(&user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		User:         publicUser(&user, false),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The refresh
// token itself is not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error) {
	claims, err := s.tokens.Verify(refreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if !user.IsActive {
		return nil, ErrInvalidToken
	}

	access, err := s.tokens.IssueAccessToken(&user)
	if err != nil {
		return nil, err
	}
	return &dto.RefreshResponse{AccessToken: access}, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	resp := publicUser(&user, true)
	return &resp, nil
}

func publicUser(u *models.User, withActive bool) dto.UserResponse {
	resp := dto.UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
	if withActive {
		active := u.IsActive
		resp.IsActive = &active
	}
	return resp
}
