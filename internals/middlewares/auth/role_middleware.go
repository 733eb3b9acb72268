package auth

import (
	"github.com/gofiber/fiber/v2"

	"schoolhub_backend/internals/constants"
)

// RequireCapability gates a route group on the capability table instead of
// per-handler role string checks.
func RequireCapability(capability string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("userRole").(string)
		if !ok || role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized: missing role information",
			})
		}
		if !constants.RoleHas(role, capability) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Forbidden: you are not authorized to access this resource",
			})
		}
		return c.Next()
	}
}

// OnlyRoles keeps the plain role allow-list form for routes where a
// capability tag would be overkill.
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("userRole").(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized: missing role information",
			})
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		if customMessage == "" {
			customMessage = "Forbidden: you are not authorized to access this resource"
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": customMessage,
		})
	}
}
