package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/arcade-lobby/internal/dto"
	"github.com/ahmetcoskunkizilkaya/arcade-lobby/internal/models"
	"github.com/ahmetcoskunkizilkaya/arcade-lobby/internal/services"
	"github.com/ahmetcoskunkizilkaya/arcade-lobby/internal/session"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService  *services.AuthService
	scoreService *services.ScoreService
	sessions     *session.Manager
}

func NewAuthHandler(authService *services.AuthService, scoreService *services.ScoreService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{authService: authService, scoreService: scoreService, sessions: sessions}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	user, err := h.authService.Register(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrMissingCredentials) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("registration failed", "action", "register", "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	if err := h.establishSession(c, user); err != nil {
		slog.Error("failed to establish session", "action", "register", "user_id", user.ID.String(), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{
		User: dto.UserResponse{ID: user.ID, Username: user.Username},
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	user, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrMissingCredentials) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("login failed", "action", "login", "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	if err := h.establishSession(c, user); err != nil {
		slog.Error("failed to establish session", "action", "login", "user_id", user.ID.String(), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(dto.AuthResponse{
		User: dto.UserResponse{ID: user.ID, Username: user.Username},
	})
}

// establishSession runs the post-auth sequence: migrate the guest buffer,
// set the authenticated identity, then clear the buffer. The buffer is only
// cleared once the migration transaction has committed; if migration fails
// the scores stay buffered for the next successful login.
func (h *AuthHandler) establishSession(c *fiber.Ctx, user *models.User) error {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return err
	}

	migrated := true
	if buffered := sess.GuestScores(); len(buffered) > 0 {
		if _, err := h.scoreService.MigrateGuestScores(user.ID, buffered); err != nil {
			slog.Error("guest score migration failed", "action", "migrate", "user_id", user.ID.String(), "error", err.Error())
			migrated = false
		}
	}

	sess.SetUser(user.ID, user.Username)
	if migrated {
		sess.ClearGuestScores()
	}

	return sess.Save()
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	// Destroys the whole session, unmigrated guest scores included.
	if err := sess.Destroy(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to logout",
		})
	}

	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

func (h *AuthHandler) Status(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	userID, ok := sess.UserID()
	if !ok {
		return c.JSON(dto.StatusResponse{LoggedIn: false})
	}

	return c.JSON(dto.StatusResponse{
		LoggedIn: true,
		UserID:   &userID,
		Username: sess.Username(),
	})
}
