package models

import (
	"time"

	"github.com/google/uuid"
)

// ScoreEntry is one finished game. Rows are append-only: they are created on
// submission (or guest migration) and never updated or deleted. The
// leaderboard is derived from this table on read, not stored.
type ScoreEntry struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index:idx_score_history_user_game" json:"user_id"`
	GameName string    `gorm:"size:50;not null;index:idx_score_history_user_game;index" json:"game_name"`
	Score    int       `gorm:"not null" json:"score"`
	PlayedAt time.Time `gorm:"not null;index" json:"played_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (ScoreEntry) TableName() string {
	return "score_history"
}
