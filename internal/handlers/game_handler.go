package handlers

import (
	"github.com/ahmetcoskunkizilkaya/arcade-lobby/internal/games"
	"github.com/gofiber/fiber/v2"
)

type GameHandler struct {
	registry *games.Registry
}

func NewGameHandler(registry *games.Registry) *GameHandler {
	return &GameHandler{registry: registry}
}

// List handles GET /games - the lobby's known games.
func (h *GameHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.registry.All())
}
