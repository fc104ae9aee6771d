package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/arcade-lobby/internal/dto"
	"github.com/ahmetcoskunkizilkaya/arcade-lobby/internal/services"
	"github.com/ahmetcoskunkizilkaya/arcade-lobby/internal/session"
	"github.com/gofiber/fiber/v2"
)

type ScoreHandler struct {
	scoreService *services.ScoreService
	sessions     *session.Manager
}

func NewScoreHandler(scoreService *services.ScoreService, sessions *session.Manager) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService, sessions: sessions}
}

func isValidationError(err error) bool {
	return errors.Is(err, services.ErrGameNameRequired) ||
		errors.Is(err, services.ErrScoreRequired) ||
		errors.Is(err, services.ErrNegativeScore)
}

// SubmitScore handles POST /submit-score for authenticated players.
func (h *ScoreHandler) SubmitScore(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	userID, ok := sess.UserID()
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Authentication required",
		})
	}

	var req dto.SubmitScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	entry, err := h.scoreService.Submit(userID, req.GameName, req.Score)
	if err != nil {
		if isValidationError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("score submission failed", "action", "submit_score", "user_id", userID.String(), "game_name", req.GameName, "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.ScoreEntryResponse{
		GameName: entry.GameName,
		Score:    entry.Score,
		PlayedAt: entry.PlayedAt,
	})
}

// SessionScore handles POST /session-score: it buffers the score in the
// session regardless of auth state. Authenticated clients are expected to
// use /submit-score instead.
func (h *ScoreHandler) SessionScore(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	var req dto.SubmitScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.scoreService.ValidateSubmission(req.GameName, req.Score); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	count, err := sess.AppendGuestScore(session.GuestScore{
		GameName:    req.GameName,
		Score:       *req.Score,
		SubmittedAt: time.Now().UTC(),
	})
	if err == nil {
		err = sess.Save()
	}
	if err != nil {
		slog.Error("failed to buffer guest score", "action", "session_score", "game_name", req.GameName, "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(dto.GuestScoreCountResponse{GuestScoreCount: count})
}

// GuestPersonalScores handles GET /guest-personal-scores/:game.
func (h *ScoreHandler) GuestPersonalScores(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	gameName := c.Params("game")
	scores := make([]dto.ScoreEntryResponse, 0)
	for _, gs := range sess.GuestScores() {
		if gs.GameName == gameName {
			scores = append(scores, dto.ScoreEntryResponse{
				GameName: gs.GameName,
				Score:    gs.Score,
				PlayedAt: gs.SubmittedAt,
			})
		}
	}

	if err := sess.Save(); err != nil {
		slog.Error("failed to save session", "action", "guest_personal_scores", "error", err.Error())
	}

	return c.JSON(scores)
}

// Leaderboard handles GET /leaderboard/:game?limit=N (public).
func (h *ScoreHandler) Leaderboard(c *fiber.Ctx) error {
	gameName := c.Params("game")
	limit := c.QueryInt("limit", services.DefaultLeaderboardLimit)

	rows, err := h.scoreService.Leaderboard(gameName, limit)
	if err != nil {
		slog.Error("leaderboard query failed", "action", "leaderboard", "game_name", gameName, "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	if rows == nil {
		rows = make([]dto.LeaderboardRow, 0)
	}

	return c.JSON(rows)
}

// PersonalScores handles GET /personal-scores/:game for authenticated players.
func (h *ScoreHandler) PersonalScores(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	userID, ok := sess.UserID()
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Authentication required",
		})
	}

	gameName := c.Params("game")
	scores, err := h.scoreService.PersonalScores(userID, gameName)
	if err != nil {
		slog.Error("personal scores query failed", "action", "personal_scores", "user_id", userID.String(), "game_name", gameName, "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	if scores == nil {
		scores = make([]dto.PersonalScore, 0)
	}

	return c.JSON(scores)
}
