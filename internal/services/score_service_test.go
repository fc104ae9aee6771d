package services

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/arcade-lobby/internal/models"
	"github.com/ahmetcoskunkizilkaya/arcade-lobby/internal/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func intPtr(n int) *int { return &n }

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{ID: uuid.New(), Username: username, PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createEntry(t *testing.T, db *gorm.DB, userID uuid.UUID, game string, score int, playedAt time.Time) {
	t.Helper()
	entry := models.ScoreEntry{ID: uuid.New(), UserID: userID, GameName: game, Score: score, PlayedAt: playedAt}
	require.NoError(t, db.Create(&entry).Error)
}

func TestScoreService_ValidateSubmission(t *testing.T) {
	svc := NewScoreService(newTestDB(t), nil)

	tests := []struct {
		name     string
		gameName string
		score    *int
		wantErr  error
	}{
		{"valid", "pong", intPtr(100), nil},
		{"zero score is valid", "pong", intPtr(0), nil},
		{"empty game name", "", intPtr(100), ErrGameNameRequired},
		{"missing score", "pong", nil, ErrScoreRequired},
		{"negative score", "pong", intPtr(-1), ErrNegativeScore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidateSubmission(tt.gameName, tt.score)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestScoreService_Submit(t *testing.T) {
	t.Run("appends entry with UTC timestamp", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewScoreService(db, nil)
		user := createUser(t, db, "alice")

		before := time.Now().UTC()
		entry, err := svc.Submit(user.ID, "pong", intPtr(42))
		require.NoError(t, err)

		assert.Equal(t, "pong", entry.GameName)
		assert.Equal(t, 42, entry.Score)
		assert.False(t, entry.PlayedAt.Before(before))

		var count int64
		db.Model(&models.ScoreEntry{}).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("invalid input writes no row", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewScoreService(db, nil)
		user := createUser(t, db, "alice")

		_, err := svc.Submit(user.ID, "pong", intPtr(-5))
		assert.ErrorIs(t, err, ErrNegativeScore)

		_, err = svc.Submit(user.ID, "pong", nil)
		assert.ErrorIs(t, err, ErrScoreRequired)

		var count int64
		db.Model(&models.ScoreEntry{}).Count(&count)
		assert.Equal(t, int64(0), count)
	})
}

func TestScoreService_Leaderboard(t *testing.T) {
	t.Run("best score per user, descending, truncated", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewScoreService(db, nil)

		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")
		carol := createUser(t, db, "carol")
		now := time.Now().UTC()

		createEntry(t, db, alice.ID, "pong", 10, now)
		createEntry(t, db, alice.ID, "pong", 50, now)
		createEntry(t, db, bob.ID, "pong", 30, now)
		createEntry(t, db, carol.ID, "pong", 20, now)
		// Other games must not leak in.
		createEntry(t, db, carol.ID, "snake", 999, now)

		rows, err := svc.Leaderboard("pong", 2)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "alice", rows[0].Username)
		assert.Equal(t, 50, rows[0].BestScore)
		assert.Equal(t, "bob", rows[1].Username)
		assert.Equal(t, 30, rows[1].BestScore)
	})

	t.Run("ties break by username ascending", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewScoreService(db, nil)

		zed := createUser(t, db, "zed")
		amy := createUser(t, db, "amy")
		now := time.Now().UTC()

		createEntry(t, db, zed.ID, "pong", 40, now)
		createEntry(t, db, amy.ID, "pong", 40, now)

		rows, err := svc.Leaderboard("pong", 10)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "amy", rows[0].Username)
		assert.Equal(t, "zed", rows[1].Username)
	})

	t.Run("empty game yields empty board", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewScoreService(db, nil)

		rows, err := svc.Leaderboard("pong", 10)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestScoreService_PersonalScores(t *testing.T) {
	db := newTestDB(t)
	svc := NewScoreService(db, nil)
	user := createUser(t, db, "alice")

	t1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)
	createEntry(t, db, user.ID, "pong", 10, t1)
	createEntry(t, db, user.ID, "pong", 30, t3)
	createEntry(t, db, user.ID, "pong", 20, t2)
	createEntry(t, db, user.ID, "snake", 99, t2)

	scores, err := svc.PersonalScores(user.ID, "pong")
	require.NoError(t, err)
	require.Len(t, scores, 3)

	// Most recent first: t3, t2, t1.
	assert.Equal(t, 30, scores[0].Score)
	assert.Equal(t, 20, scores[1].Score)
	assert.Equal(t, 10, scores[2].Score)
}

func TestScoreService_MigrateGuestScores(t *testing.T) {
	t.Run("persists buffered scores under the user", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewScoreService(db, nil)
		user := createUser(t, db, "alice")

		t1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
		buffered := []session.GuestScore{
			{GameName: "pong", Score: 15, SubmittedAt: t1},
			{GameName: "snake", Score: 7, SubmittedAt: t1.Add(time.Minute)},
			{GameName: "pong", Score: 25, SubmittedAt: t1.Add(2 * time.Minute)},
		}

		count, err := svc.MigrateGuestScores(user.ID, buffered)
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		var entries []models.ScoreEntry
		require.NoError(t, db.Where("user_id = ?", user.ID).Order("played_at ASC").Find(&entries).Error)
		require.Len(t, entries, 3)

		// Buffered submission times survive as played_at.
		assert.Equal(t, "pong", entries[0].GameName)
		assert.Equal(t, 15, entries[0].Score)
		assert.True(t, entries[0].PlayedAt.Equal(t1))
		assert.Equal(t, "snake", entries[1].GameName)
		assert.Equal(t, 25, entries[2].Score)
	})

	t.Run("empty buffer is a no-op", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewScoreService(db, nil)
		user := createUser(t, db, "alice")

		count, err := svc.MigrateGuestScores(user.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		var rows int64
		db.Model(&models.ScoreEntry{}).Count(&rows)
		assert.Equal(t, int64(0), rows)
	})

	t.Run("buffered score without timestamp gets one", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewScoreService(db, nil)
		user := createUser(t, db, "alice")

		_, err := svc.MigrateGuestScores(user.ID, []session.GuestScore{{GameName: "pong", Score: 5}})
		require.NoError(t, err)

		var entry models.ScoreEntry
		require.NoError(t, db.First(&entry).Error)
		assert.False(t, entry.PlayedAt.IsZero())
	})
}
