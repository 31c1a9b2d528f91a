package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/testutil"
	"golang.org/x/crypto/bcrypt"
)

func TestLogin(t *testing.T) {
	db := testutil.NewDB(t)
	ts := testutil.NewTokenService(t)
	auth, err := services.NewAuthService(db, ts, bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	admin := testutil.CreateUser(t, db, "admin@example.com", "admin", true)
	testutil.CreateUser(t, db, "off@example.com", "admin", false)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"success", "admin@example.com", testutil.TestPassword, nil},
		{"email is case insensitive", " ADMIN@example.com ", testutil.TestPassword, nil},
		{"unknown email", "nobody@example.com", testutil.TestPassword, services.ErrInvalidCredentials},
		{"wrong password", "admin@example.com", "wrong-password", services.ErrInvalidCredentials},
		{"deactivated", "off@example.com", testutil.TestPassword, services.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := auth.Login(context.Background(), &dto.LoginRequest{Email: tt.email, Password: tt.password})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Login() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if resp.User.ID != admin.ID || resp.User.IsActive != nil {
				t.Errorf("Login() user = %+v", resp.User)
			}
			if _, err := ts.Verify(resp.AccessToken, services.TokenTypeAccess); err != nil {
				t.Errorf("access token does not verify: %v", err)
			}
			if _, err := ts.Verify(resp.RefreshToken, services.TokenTypeRefresh); err != nil {
				t.Errorf("refresh token does not verify: %v", err)
			}
		})
	}
}

func TestRefresh(t *testing.T) {
	db := testutil.NewDB(t)
	ts := testutil.NewTokenService(t)
	auth, _ := services.NewAuthService(db, ts, bcrypt.MinCost)
	accounts := services.NewAccountService(db, bcrypt.MinCost)
	admin := testutil.CreateUser(t, db, "admin@example.com", "admin", true)
	ctx := context.Background()

	refresh, _ := ts.IssueRefreshToken(admin)
	access, _ := ts.IssueAccessToken(admin)

	resp, err := auth.Refresh(ctx, refresh)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if _, err := ts.Verify(resp.AccessToken, services.TokenTypeAccess); err != nil {
		t.Fatalf("refreshed access token invalid: %v", err)
	}

	// The same refresh token stays usable until it expires.
	if _, err := auth.Refresh(ctx, refresh); err != nil {
		t.Fatalf("second Refresh() error = %v", err)
	}

	if _, err := auth.Refresh(ctx, access); !errors.Is(err, services.ErrInvalidToken) {
		t.Fatalf("Refresh(access token) error = %v, want ErrInvalidToken", err)
	}

	if err := accounts.SetActive(ctx, admin.Email, false); err != nil {
		t.Fatal(err)
	}
	if _, err := auth.Refresh(ctx, refresh); !errors.Is(err, services.ErrInvalidToken) {
		t.Fatalf("Refresh() for deactivated account error = %v, want ErrInvalidToken", err)
	}
}

func TestMe(t *testing.T) {
	db := testutil.NewDB(t)
	auth, _ := services.NewAuthService(db, testutil.NewTokenService(t), bcrypt.MinCost)
	admin := testutil.CreateUser(t, db, "admin@example.com", "admin", true)

	me, err := auth.Me(context.Background(), admin.ID.String())
	if err != nil {
		t.Fatal(err)
	}
	if me.IsActive == nil || !*me.IsActive {
		t.Errorf("Me() isActive = %v, want true", me.IsActive)
	}
	if _, err := auth.Me(context.Background(), "00000000-0000-0000-0000-000000000000"); !errors.Is(err, services.ErrUserNotFound) {
		t.Errorf("Me(unknown) error = %v", err)
	}
}

func TestAccountService(t *testing.T) {
	db := testutil.NewDB(t)
	accounts := services.NewAccountService(db, bcrypt.MinCost)
	auth, _ := services.NewAuthService(db, testutil.NewTokenService(t), bcrypt.MinCost)
	ctx := context.Background()

	in := services.NewAccount{Username: "owner", Email: "Owner@Example.com", Password: "first-password"}
	if _, err := accounts.Create(ctx, in); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := accounts.Create(ctx, in); !errors.Is(err, services.ErrEmailTaken) {
		t.Fatalf("duplicate Create() error = %v, want ErrEmailTaken", err)
	}
	if _, err := accounts.Create(ctx, services.NewAccount{Username: "x", Email: "x@y.z", Password: "short"}); !errors.Is(err, services.ErrWeakPassword) {
		t.Fatalf("weak Create() error = %v", err)
	}

	if err := accounts.SetPassword(ctx, "owner@example.com", "second-password"); err != nil {
		t.Fatal(err)
	}
	if _, err := auth.Login(ctx, &dto.LoginRequest{Email: "owner@example.com", Password: "second-password"}); err != nil {
		t.Fatalf("Login() after SetPassword error = %v", err)
	}
	if err := accounts.SetRole(ctx, "missing@example.com", "admin"); !errors.Is(err, services.ErrUserNotFound) {
		t.Fatalf("SetRole(missing) error = %v", err)
	}

	deleted, user, err := accounts.ReplaceAdmins(ctx, services.NewAccount{Username: "new", Email: "new@example.com", Password: "brand-new-pass"})
	if err != nil {
		t.Fatalf("ReplaceAdmins() error = %v", err)
	}
	if deleted != 1 || user.Role != "admin" {
		t.Errorf("ReplaceAdmins() deleted=%d role=%s", deleted, user.Role)
	}
}
