// Package jwtauth protects routes with member bearer tokens.
package jwtauth

import (
	"strings"

	"catalog-service/core/response"
	"catalog-service/core/token"

	"github.com/gofiber/fiber/v2"
)

const memberIDKey = "member_id"

// Config holds dependencies for the auth middleware.
type Config struct {
	// Tokens validates incoming bearer tokens.
	Tokens *token.Service
}

// New returns a middleware that requires a valid Bearer token and stores the
// authenticated member id in the context locals.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return response.Unauthorized(c, "missing token")
		}

		raw := header
		if strings.HasPrefix(strings.ToLower(header), "bearer ") {
			raw = strings.TrimSpace(header[len("bearer "):])
		}
		if raw == "" {
			return response.Unauthorized(c, "missing token")
		}

		claims, err := cfg.Tokens.Parse(raw)
		if err != nil {
			return response.FromError(c, err, "authentication failed")
		}

		c.Locals(memberIDKey, claims.MemberID)
		return c.Next()
	}
}

// MemberID returns the authenticated member id from the context, or zero when
// the request did not pass through the middleware.
func MemberID(c *fiber.Ctx) uint {
	id, _ := c.Locals(memberIDKey).(uint)
	return id
}
