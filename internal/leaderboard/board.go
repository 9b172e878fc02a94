package leaderboard

import (
	"context"

	"FOMCPulse/internal/model"
)

// Board ranks players by cumulative game score. Ties go to the player with
// fewer games, then to the lower user id.
type Board interface {
	Record(ctx context.Context, userID, displayName string, score int) error
	Top(ctx context.Context, n int) ([]model.LeaderboardEntry, error)
	// Rank returns the 1-based rank of userID, or 0 when the user has not played.
	Rank(ctx context.Context, userID string) (int, error)
}
