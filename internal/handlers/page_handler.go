package handlers

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

// PageHandler serves the static lobby pages. Rendering happens client-side;
// the backend only ships the files.
type PageHandler struct {
	webDir string
}

func NewPageHandler(webDir string) *PageHandler {
	return &PageHandler{webDir: webDir}
}

func (h *PageHandler) page(name string) fiber.Handler {
	path := filepath.Join(h.webDir, name)
	return func(c *fiber.Ctx) error {
		return c.SendFile(path)
	}
}

func (h *PageHandler) Index() fiber.Handler       { return h.page("index.html") }
func (h *PageHandler) Game() fiber.Handler        { return h.page("game.html") }
func (h *PageHandler) Leaderboard() fiber.Handler { return h.page("leaderboard.html") }
func (h *PageHandler) About() fiber.Handler       { return h.page("about.html") }
func (h *PageHandler) Auth() fiber.Handler        { return h.page("auth.html") }
