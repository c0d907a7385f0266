package handlers

import (
	"lojavirtual/internal/auth"
	"lojavirtual/internal/domain"
	applog "lojavirtual/internal/log"

	"github.com/gofiber/fiber/v2"
)

const (
	localPrincipal      = "principal"
	localPrincipalEmail = "principal.email"
)

// Authenticate requires a valid bearer token and stores the principal in Locals.
// Failures answer 401 with an empty body.
func Authenticate(v *auth.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, ok := auth.BearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			applog.Security(c, "auth.token.missing", nil)
			return empty(c, fiber.StatusUnauthorized)
		}
		p, err := v.Verify(raw)
		if err != nil {
			applog.Security(c, "auth.token.invalid", map[string]any{"reason": err.Error()})
			return empty(c, fiber.StatusUnauthorized)
		}
		c.Locals(localPrincipal, p)
		c.Locals(localPrincipalEmail, p.Email)
		return c.Next()
	}
}

// RequireScope answers 403 unless the authenticated principal holds scope.
func RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := c.Locals(localPrincipal).(domain.Principal)
		if !ok {
			return empty(c, fiber.StatusUnauthorized)
		}
		if !p.HasScope(scope) {
			applog.Security(c, "access.denied.scope", map[string]any{"scope": scope})
			return empty(c, fiber.StatusForbidden)
		}
		return c.Next()
	}
}

func principal(c *fiber.Ctx) domain.Principal {
	p, _ := c.Locals(localPrincipal).(domain.Principal)
	return p
}
