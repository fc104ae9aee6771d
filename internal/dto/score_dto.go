package dto

import "time"

// SubmitScoreRequest covers both /submit-score and /session-score.
// Score is a pointer so a missing field can be told apart from zero.
type SubmitScoreRequest struct {
	GameName string `json:"game_name"`
	Score    *int   `json:"score"`
}

type ScoreEntryResponse struct {
	GameName string    `json:"game_name"`
	Score    int       `json:"score"`
	PlayedAt time.Time `json:"played_at"`
}

type GuestScoreCountResponse struct {
	GuestScoreCount int `json:"guest_score_count"`
}

type LeaderboardRow struct {
	Username  string `json:"username"`
	BestScore int    `json:"best_score"`
}

type PersonalScore struct {
	Score    int       `json:"score"`
	PlayedAt time.Time `json:"played_at"`
}
