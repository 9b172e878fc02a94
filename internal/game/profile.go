package game

import (
	"context"
	"fmt"

	"FOMCPulse/internal/model"
)

// RecentAttempts is how many attempts a profile lists.
const RecentAttempts = 10

// historyLimit caps how many attempts feed the profile statistics.
const historyLimit = 1000

// Profile summarises a player's recorded attempts and current rank.
func (s *Service) Profile(ctx context.Context, userID string) (*model.Profile, error) {
	if userID == "" {
		return nil, ErrMissingPlayer
	}
	attempts, err := s.Recorder.AttemptsByUser(ctx, userID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("load attempts: %w", err)
	}

	p := BuildProfile(userID, attempts)
	rank, err := s.Board.Rank(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load rank: %w", err)
	}
	p.Rank = rank
	return p, nil
}

// BuildProfile computes statistics from attempts ordered newest first.
func BuildProfile(userID string, attempts []model.Attempt) *model.Profile {
	p := &model.Profile{UserID: userID, Games: len(attempts)}
	for _, a := range attempts {
		if p.DisplayName == "" && a.DisplayName != "" {
			p.DisplayName = a.DisplayName
		}
		p.TotalScore += a.Result.Score
		if a.Result.Score > p.BestScore {
			p.BestScore = a.Result.Score
		}
		if a.Result.DirectionCorrect {
			p.DirectionHits++
		}
	}
	if p.Games > 0 {
		p.AverageScore = float64(p.TotalScore) / float64(p.Games)
		p.DirectionRate = float64(p.DirectionHits) / float64(p.Games)
	}
	recent := attempts
	if len(recent) > RecentAttempts {
		recent = recent[:RecentAttempts]
	}
	p.RecentAttempts = append([]model.Attempt{}, recent...)
	return p
}
