package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/arcade-lobby/internal/config"
	"github.com/ahmetcoskunkizilkaya/arcade-lobby/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/arcade-lobby/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/arcade-lobby/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	sessions *session.Manager,
	authHandler *handlers.AuthHandler,
	scoreHandler *handlers.ScoreHandler,
	healthHandler *handlers.HealthHandler,
	gameHandler *handlers.GameHandler,
	pageHandler *handlers.PageHandler,
) {
	// Static lobby pages
	app.Get("/", pageHandler.Index())
	app.Get("/game", pageHandler.Game())
	app.Get("/leaderboard", pageHandler.Leaderboard())
	app.Get("/about", pageHandler.About())
	app.Get("/auth", pageHandler.Auth())
	app.Static("/static", cfg.WebDir+"/static")

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)
	api.Get("/games", gameHandler.List)

	// Auth endpoints get a stricter limit: 10 req/min per IP
	authLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	api.Post("/register", authLimiter, authHandler.Register)
	api.Post("/login", authLimiter, authHandler.Login)

	api.Post("/logout", authHandler.Logout)
	api.Get("/status", authHandler.Status)

	// Guest score buffer (any session)
	api.Post("/session-score", scoreHandler.SessionScore)
	api.Get("/guest-personal-scores/:game", scoreHandler.GuestPersonalScores)

	// Public leaderboard
	api.Get("/leaderboard/:game", scoreHandler.Leaderboard)

	// Authenticated score history
	api.Post("/submit-score", middleware.RequireAuth(sessions), scoreHandler.SubmitScore)
	api.Get("/personal-scores/:game", middleware.RequireAuth(sessions), scoreHandler.PersonalScores)
}
