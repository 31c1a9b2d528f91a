package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func newTestTokens(t *testing.T) *TokenService {
	t.Helper()
	ts, err := NewTokenService("unit-test-secret", time.Hour, 24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	if _, err := NewTokenService("", time.Hour, time.Hour); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("NewTokenService(\"\") error = %v, want ErrMissingSecret", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	ts := newTestTokens(t)
	users := []models.User{
		{ID: uuid.New(), Email: "admin@example.com", Role: "admin"},
		{ID: uuid.New(), Email: "editor@example.com", Role: "editor"},
	}

	for _, u := range users {
		t.Run(u.Role, func(t *testing.T) {
			tok, err := ts.IssueAccessToken(&u)
			if err != nil {
				t.Fatalf("IssueAccessToken() error = %v", err)
			}
			claims, err := ts.Verify(tok, TokenTypeAccess)
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if claims.UserID != u.ID.String() || claims.Email != u.Email || claims.Role != u.Role {
				t.Errorf("claims = %+v, want user %+v", claims, u)
			}
		})
	}
}

func TestVerifyRejects(t *testing.T) {
	ts := newTestTokens(t)
	u := &models.User{ID: uuid.New(), Email: "admin@example.com", Role: "admin"}

	access, _ := ts.IssueAccessToken(u)
	refresh, _ := ts.IssueRefreshToken(u)

	past := time.Now().Add(-48 * time.Hour)
	expired, _ := newTestTokens(t).WithClock(func() time.Time { return past }).IssueAccessToken(u)

	other, _ := NewTokenService("another-secret", time.Hour, time.Hour)
	foreign, _ := other.IssueAccessToken(u)

	parts := strings.Split(access, ".")
	tamperedPayload := parts[0] + "." + flipMiddle(parts[1]) + "." + parts[2]
	tamperedSig := parts[0] + "." + parts[1] + "." + flipMiddle(parts[2])

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: u.ID.String(), Role: "admin", TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name  string
		token string
		typ   string
	}{
		{"expired", expired, TokenTypeAccess},
		{"tampered payload", tamperedPayload, TokenTypeAccess},
		{"tampered signature", tamperedSig, TokenTypeAccess},
		{"wrong secret", foreign, TokenTypeAccess},
		{"refresh used as access", refresh, TokenTypeAccess},
		{"access used as refresh", access, TokenTypeRefresh},
		{"alg none", unsigned, TokenTypeAccess},
		{"garbage", "not-a-token", TokenTypeAccess},
		{"empty", "", TokenTypeAccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ts.Verify(tt.token, tt.typ); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestInspectDoesNotVerify(t *testing.T) {
	other, _ := NewTokenService("another-secret", time.Hour, time.Hour)
	u := &models.User{ID: uuid.New(), Email: "a@b.c", Role: "admin"}
	tok, _ := other.IssueAccessToken(u)

	claims, err := Inspect(tok)
	if err != nil || claims.Email != u.Email {
		t.Fatalf("Inspect() = %+v, %v", claims, err)
	}
	if _, err := newTestTokens(t).Verify(tok, TokenTypeAccess); err == nil {
		t.Fatal("Verify() accepted a token signed with another secret")
	}
}

// flipMiddle changes a base64url character away from the end, where trailing
// bits may be ignored by the decoder.
func flipMiddle(s string) string {
	i := len(s) / 2
	repl := byte('A')
	if s[i] == 'A' {
		repl = 'B'
	}
	return s[:i] + string(repl) + s[i+1:]
}
