package leaderboard

import (
	"context"
	"sort"
	"sync"

	"FOMCPulse/internal/model"
)

// MemoryBoard keeps the leaderboard in process memory.
type MemoryBoard struct {
	mu      sync.Mutex
	entries map[string]*model.LeaderboardEntry
}

func NewMemoryBoard() *MemoryBoard {
	return &MemoryBoard{entries: make(map[string]*model.LeaderboardEntry)}
}

func (b *MemoryBoard) Record(_ context.Context, userID, displayName string, score int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[userID]
	if !ok {
		e = &model.LeaderboardEntry{UserID: userID}
		b.entries[userID] = e
	}
	if displayName != "" {
		e.DisplayName = displayName
	}
	e.TotalScore += score
	e.Games++
	if score > e.BestScore {
		e.BestScore = score
	}
	return nil
}

func (b *MemoryBoard) Top(_ context.Context, n int) ([]model.LeaderboardEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ranked := b.ranked()
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

func (b *MemoryBoard) Rank(_ context.Context, userID string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, e := range b.ranked() {
		if e.UserID == userID {
			return e.Rank, nil
		}
	}
	return 0, nil
}

// ranked orders by total desc, then fewer games, then user id. Caller holds mu.
func (b *MemoryBoard) ranked() []model.LeaderboardEntry {
	out := make([]model.LeaderboardEntry, 0, len(b.entries))
	for _, e := range b.entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalScore != out[j].TotalScore {
			return out[i].TotalScore > out[j].TotalScore
		}
		if out[i].Games != out[j].Games {
			return out[i].Games < out[j].Games
		}
		return out[i].UserID < out[j].UserID
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
