package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var (
	ErrNoUserID = errors.New("missing user_id in request context")
	ErrNoRole   = errors.New("missing role in request context")
)

// GetUserIDFromLocals reads the user id the auth middleware stored on the
// request context.
func GetUserIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, ErrNoUserID
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrNoUserID
	}
	return id, nil
}

// GetRoleFromLocals reads the role claim the auth middleware stored.
func GetRoleFromLocals(c *fiber.Ctx) (string, error) {
	role, ok := c.Locals("userRole").(string)
	if !ok || role == "" {
		return "", ErrNoRole
	}
	return role, nil
}
