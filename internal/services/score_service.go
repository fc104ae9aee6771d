package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/arcade-lobby/internal/dto"
	"github.com/ahmetcoskunkizilkaya/arcade-lobby/internal/games"
	"github.com/ahmetcoskunkizilkaya/arcade-lobby/internal/models"
	"github.com/ahmetcoskunkizilkaya/arcade-lobby/internal/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrGameNameRequired = errors.New("game name is required")
	ErrScoreRequired    = errors.New("score is required")
	ErrNegativeScore    = errors.New("score must be a non-negative integer")
)

const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
)

type ScoreService struct {
	db       *gorm.DB
	registry *games.Registry
}

func NewScoreService(db *gorm.DB, registry *games.Registry) *ScoreService {
	return &ScoreService{db: db, registry: registry}
}

// ValidateSubmission checks a score submission. Score is a pointer so a
// missing JSON field is rejected rather than defaulting to zero. Game names
// are not checked against the registry; unknown ones are only logged.
func (s *ScoreService) ValidateSubmission(gameName string, score *int) error {
	if gameName == "" {
		return ErrGameNameRequired
	}
	if score == nil {
		return ErrScoreRequired
	}
	if *score < 0 {
		return ErrNegativeScore
	}
	return nil
}

// Submit appends a score to the authenticated user's history.
func (s *ScoreService) Submit(userID uuid.UUID, gameName string, score *int) (*models.ScoreEntry, error) {
	if err := s.ValidateSubmission(gameName, score); err != nil {
		return nil, err
	}
	s.warnUnknownGame(gameName)

	entry := models.ScoreEntry{
		ID:       uuid.New(),
		UserID:   userID,
		GameName: gameName,
		Score:    *score,
		PlayedAt: time.Now().UTC(),
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to record score: %w", err)
	}

	return &entry, nil
}

// Leaderboard computes the best score per user for a game, ordered by best
// score descending with username ascending as the tie-break.
func (s *ScoreService) Leaderboard(gameName string, limit int) ([]dto.LeaderboardRow, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}

	var rows []dto.LeaderboardRow
	err := s.db.Model(&models.ScoreEntry{}).
		Select("users.username AS username, MAX(score_history.score) AS best_score").
		Joins("JOIN users ON users.id = score_history.user_id").
		Where("score_history.game_name = ?", gameName).
		Group("users.id, users.username").
		Order("best_score DESC, username ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute leaderboard: %w", err)
	}

	return rows, nil
}

// PersonalScores returns the user's full history for a game, newest first.
func (s *ScoreService) PersonalScores(userID uuid.UUID, gameName string) ([]dto.PersonalScore, error) {
	var scores []dto.PersonalScore
	err := s.db.Model(&models.ScoreEntry{}).
		Select("score, played_at").
		Where("user_id = ? AND game_name = ?", userID, gameName).
		Order("played_at DESC").
		Scan(&scores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load personal scores: %w", err)
	}

	return scores, nil
}

// MigrateGuestScores persists a session's guest buffer under the given user
// id, preserving insertion order. The whole batch runs in one transaction:
// either every buffered score becomes a row or none do, so a mid-migration
// failure never loses part of the buffer.
func (s *ScoreService) MigrateGuestScores(userID uuid.UUID, scores []session.GuestScore) (int, error) {
	if len(scores) == 0 {
		return 0, nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, gs := range scores {
			playedAt := gs.SubmittedAt.UTC()
			if gs.SubmittedAt.IsZero() {
				playedAt = time.Now().UTC()
			}
			entry := models.ScoreEntry{
				ID:       uuid.New(),
				UserID:   userID,
				GameName: gs.GameName,
				Score:    gs.Score,
				PlayedAt: playedAt,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return fmt.Errorf("failed to migrate guest score: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.Info("guest scores migrated", "user_id", userID.String(), "count", len(scores))
	return len(scores), nil
}

func (s *ScoreService) warnUnknownGame(gameName string) {
	if s.registry != nil && !s.registry.Exists(gameName) {
		slog.Warn("score submitted for unregistered game", "game_name", gameName)
	}
}
