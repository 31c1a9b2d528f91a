package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AccountService provisions and mutates admin accounts out-of-band. There is
// no HTTP signup.
type AccountService struct {
	db   *gorm.DB
	cost int
}

func NewAccountService(db *gorm.DB, bcryptCost int) *AccountService {
	return &AccountService{db: db, cost: bcryptCost}
}

type NewAccount struct {
	Username string
	Email    string
	Password string
	Role     string
}

func (s *AccountService) Create(ctx context.Context, in NewAccount) (*models.User, error) {
	user, err := s.build(in)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return user, nil
}

// ReplaceAdmins deletes every admin account and creates in as the only one.
func (s *AccountService) ReplaceAdmins(ctx context.Context, in NewAccount) (deleted int64, user *models.User, err error) {
	user, err = s.build(in)
	if err != nil {
		return 0, nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("role = ? OR email = ?", models.RoleAdmin, user.Email).Delete(&models.User{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return tx.Create(user).Error
	})
	if err != nil {
		return 0, nil, fmt.Errorf("failed to replace admin accounts: %w", err)
	}
	return deleted, user, nil
}

func (s *AccountService) SetPassword(ctx context.Context, email, password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.update(ctx, email, "password", string(hash))
}

func (s *AccountService) SetRole(ctx context.Context, email, role string) error {
	if role == "" {
		return errors.New("role is required")
	}
	return s.update(ctx, email, "role", role)
}

func (s *AccountService) SetActive(ctx context.Context, email string, active bool) error {
	return s.update(ctx, email, "is_active", active)
}

func (s *AccountService) update(ctx context.Context, email, column string, value any) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", NormalizeEmail(email)).
		Update(column, value)
	if res.Error != nil {
		return fmt.Errorf("failed to update %s: %w", column, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *AccountService) build(in NewAccount) (*models.User, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || in.Username == "" {
		return nil, errors.New("username and email are required")
	}
	if len(in.Password) < 8 {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := in.Role
	if role == "" {
		role = models.RoleAdmin
	}
	return &models.User{
		Username: in.Username,
		Email:    email,
		Password: string(hash),
		Role:     role,
		IsActive: true,
	}, nil
}
