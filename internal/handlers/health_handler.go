package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/arcade-lobby/internal/database"
	"github.com/ahmetcoskunkizilkaya/arcade-lobby/internal/dto"
	"github.com/ahmetcoskunkizilkaya/arcade-lobby/internal/games"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	registry *games.Registry
}

func NewHealthHandler(registry *games.Registry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		GameCount: len(h.registry.All()),
	})
}
