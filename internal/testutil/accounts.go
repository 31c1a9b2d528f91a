package testutil

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	TestSecret   = "test-secret-which-is-long-enough"
	TestPassword = "correct-horse-battery"
)

func NewTokenService(t testing.TB) *services.TokenService {
	t.Helper()
	ts, err := services.NewTokenService(TestSecret, time.Hour, 24*time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	return ts
}

// CreateUser inserts an account whose password is TestPassword.
func CreateUser(t testing.TB, db *gorm.DB, email, role string, active bool) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &models.User{
		Username: "user-" + role,
		Email:    email,
		Password: string(hash),
		Role:     role,
		IsActive: active,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

// Bearer returns an Authorization header value for u.
func Bearer(t testing.TB, ts *services.TokenService, u *models.User) string {
	t.Helper()
	tok, err := ts.IssueAccessToken(u)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return "Bearer " + tok
}
