package middleware

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

const claimsKey = "claims"

const (
	msgNoToken      = "No token provided. Please login to access this resource."
	msgInvalidToken = "Invalid or expired token. Please login again."
	msgForbidden    = "Access denied. Admin privileges required."
)

// Verifier is the token check the gate relies on.
type Verifier interface {
	Verify(token, tokenType string) (*services.Claims, error)
}

// Gate authenticates bearer tokens and enforces roles. Role checks only exist
// as part of Require, which always authenticates first.
type Gate struct {
	tokens Verifier
}

func NewGate(tokens Verifier) *Gate {
	return &Gate{tokens: tokens}
}

// Authenticate rejects requests without a valid access token and stores the
// verified claims for downstream handlers.
func (g *Gate) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := g.authenticate(c); !ok {
			return nil
		}
		return c.Next()
	}
}

// Require authenticates the request and then checks the role claim.
func (g *Gate) Require(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := g.authenticate(c)
		if !ok {
			return nil
		}
		if claims.Role != role {
			return dto.Fail(c, fiber.StatusForbidden, msgForbidden)
		}
		return c.Next()
	}
}

// authenticate writes the 401 response itself when it returns false.
func (g *Gate) authenticate(c *fiber.Ctx) (*services.Claims, bool) {
	if claims, ok := c.Locals(claimsKey).(*services.Claims); ok && claims != nil {
		return claims, true
	}

	token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		_ = dto.Fail(c, fiber.StatusUnauthorized, msgNoToken)
		return nil, false
	}

	claims, err := g.tokens.Verify(token, services.TokenTypeAccess)
	if err != nil {
		_ = dto.Fail(c, fiber.StatusUnauthorized, msgInvalidToken)
		return nil, false
	}

	c.Locals(claimsKey, claims)
	c.Locals("user_id", claims.UserID)
	return claims, true
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// ClaimsFrom returns the claims stored by the gate, or nil on public routes.
func ClaimsFrom(c *fiber.Ctx) *services.Claims {
	claims, _ := c.Locals(claimsKey).(*services.Claims)
	return claims
}
