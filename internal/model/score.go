package model

import "time"

// ScoreResult is the full breakdown of one scored prediction.
type ScoreResult struct {
	Score            int    `json:"score"`
	DirectionPoints  int    `json:"direction_points"`
	YieldPoints      int    `json:"yield_points"`
	DirectionCorrect bool   `json:"direction_correct"`
	YieldDiffBps     int    `json:"yield_diff_bps"`
	Accuracy         string `json:"accuracy"`
	Tier             string `json:"tier"`
}

// Player identifies who is playing; there is no authentication behind it.
type Player struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

// Attempt is a recorded, scored prediction.
type Attempt struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	DisplayName string      `json:"display_name"`
	ScenarioID  string      `json:"scenario_id"`
	Prediction  Prediction  `json:"prediction"`
	Result      ScoreResult `json:"result"`
	CreatedAt   time.Time   `json:"created_at"`
}
