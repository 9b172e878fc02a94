package model

// LeaderboardEntry is one ranked player.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	TotalScore  int    `json:"total_score"`
	Games       int    `json:"games"`
	BestScore   int    `json:"best_score"`
}

// AverageScore returns the mean score per game, 0 when no games were played.
func (e LeaderboardEntry) AverageScore() float64 {
	if e.Games == 0 {
		return 0
	}
	return float64(e.TotalScore) / float64(e.Games)
}

// Profile summarises a player's history.
type Profile struct {
	UserID         string    `json:"user_id"`
	DisplayName    string    `json:"display_name"`
	Games          int       `json:"games"`
	TotalScore     int       `json:"total_score"`
	BestScore      int       `json:"best_score"`
	AverageScore   float64   `json:"average_score"`
	DirectionHits  int       `json:"direction_hits"`
	DirectionRate  float64   `json:"direction_rate"`
	Rank           int       `json:"rank"`
	RecentAttempts []Attempt `json:"recent_attempts"`
}
