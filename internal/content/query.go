package content

import (
	"slices"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// BoolQuery reads an optional boolean query parameter.
func BoolQuery(c *fiber.Ctx, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, Invalid(key, key+" must be true or false")
	}
	return &v, nil
}

// EnumQuery reads an optional query parameter restricted to allowed values.
func EnumQuery(c *fiber.Ctx, key string, allowed ...string) (string, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" || slices.Contains(allowed, raw) {
		return raw, nil
	}
	return "", Invalid(key, key+" must be one of: "+strings.Join(allowed, ", "))
}
