// Package rayid assigns every request a unique ray id for tracing.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the ray id.
const HeaderName = "X-Ray-Id"

// New returns a middleware that generates a ray id per request, stores it in
// the context locals and echoes it in the response headers. Incoming ids are
// honored so upstream proxies can propagate their own.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Locals("ray_id", rid)
		c.Set(HeaderName, rid)
		return c.Next()
	}
}
