package middleware

import (
	"github.com/ahmetcoskunkizilkaya/arcade-lobby/internal/dto"
	"github.com/ahmetcoskunkizilkaya/arcade-lobby/internal/session"
	"github.com/gofiber/fiber/v2"
)

// RequireAuth rejects requests whose session has no authenticated user.
func RequireAuth(sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := sessions.Get(c)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}
		if _, ok := sess.UserID(); !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Authentication required",
			})
		}
		return c.Next()
	}
}
