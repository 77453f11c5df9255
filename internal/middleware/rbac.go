package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/faikerkan/QuailtyHUB/internal/auth"
	"github.com/faikerkan/QuailtyHUB/internal/utils"
)

// RequireRole ensures the authenticated user holds one of the allowed
// roles. Superusers pass regardless.
func RequireRole(roles ...auth.Role) fiber.Handler {
	allowed := make(map[auth.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		actor := ActorFromContext(c)
		if actor.Superuser {
			return c.Next()
		}
		if _, ok := allowed[actor.Role]; !ok {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}
