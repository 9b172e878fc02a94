package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"FOMCPulse/internal/leaderboard"
	"FOMCPulse/internal/model"
	"FOMCPulse/internal/recorder"
	"FOMCPulse/internal/scenario"
	"FOMCPulse/internal/scoring"
)

var ErrMissingPlayer = errors.New("user_id is required")

// Outcome is what a player sees after submitting a prediction.
type Outcome struct {
	AttemptID string            `json:"attempt_id"`
	Scenario  model.Scenario    `json:"scenario"`
	Result    model.ScoreResult `json:"result"`
	Rank      int               `json:"rank,omitempty"`
}

// Service runs the Rate Reaction Game against the active scenario.
type Service struct {
	Scenarios scenario.Provider
	Recorder  recorder.Recorder
	Board     leaderboard.Board
	Now       func() time.Time
}

func NewService(p scenario.Provider, rec recorder.Recorder, board leaderboard.Board) *Service {
	return &Service{Scenarios: p, Recorder: rec, Board: board, Now: time.Now}
}

// Preview scores a prediction against the active scenario without recording it.
func (s *Service) Preview(ctx context.Context, p model.Prediction) (*model.Scenario, model.ScoreResult, error) {
	sc, err := s.Scenarios.FetchScenario(ctx)
	if err != nil {
		return nil, model.ScoreResult{}, fmt.Errorf("fetch scenario: %w", err)
	}
	return sc, scoring.Evaluate(p, *sc), nil
}

// Play scores p against the active scenario for the player, records the
// attempt and updates the leaderboard. Storage failures are logged and do not
// affect the score.
func (s *Service) Play(ctx context.Context, player model.Player, p model.Prediction) (*Outcome, error) {
	if strings.TrimSpace(player.UserID) == "" {
		return nil, ErrMissingPlayer
	}
	sc, err := s.Scenarios.FetchScenario(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch scenario: %w", err)
	}
	return s.play(ctx, player, p, sc), nil
}

func (s *Service) play(ctx context.Context, player model.Player, p model.Prediction, sc *model.Scenario) *Outcome {
	res := scoring.Evaluate(p, *sc)
	attempt := &model.Attempt{
		ID:          uuid.NewString(),
		UserID:      player.UserID,
		DisplayName: player.DisplayName,
		ScenarioID:  sc.ID,
		Prediction:  p,
		Result:      res,
		CreatedAt:   s.Now().UTC(),
	}
	if err := s.Recorder.RecordAttempt(ctx, attempt); err != nil {
		log.Error().Err(err).Str("attempt", attempt.ID).Msg("record attempt")
	}

	out := &Outcome{AttemptID: attempt.ID, Scenario: *sc, Result: res}
	if err := s.Board.Record(ctx, player.UserID, player.DisplayName, res.Score); err != nil {
		log.Error().Err(err).Str("user", player.UserID).Msg("update leaderboard")
	} else if rank, err := s.Board.Rank(ctx, player.UserID); err == nil {
		out.Rank = rank
	}

	log.Info().
		Str("user", player.UserID).
		Str("scenario", sc.ID).
		Int("score", res.Score).
		Str("tier", res.Tier).
		Msg("prediction scored")
	return out
}

// PlaySession submits a session's prediction for the player and returns the
// reset session together with the outcome. A session bound to a scenario is
// scored against that scenario even if the active one has since rotated.
func (s *Service) PlaySession(ctx context.Context, player model.Player, sess Session) (Session, *Outcome, error) {
	if sess.ScenarioID == "" {
		out, err := s.Play(ctx, player, sess.Prediction)
		if err != nil {
			return sess, nil, err
		}
		next, _, _ := sess.Submit(out.Scenario)
		return next, out, nil
	}

	if strings.TrimSpace(player.UserID) == "" {
		return sess, nil, ErrMissingPlayer
	}
	sc, err := s.scenarioByID(ctx, sess.ScenarioID)
	if err != nil {
		return sess, nil, err
	}
	out := s.play(ctx, player, sess.Prediction, sc)
	next, _, _ := sess.Submit(out.Scenario)
	return next, out, nil
}

func (s *Service) scenarioByID(ctx context.Context, id string) (*model.Scenario, error) {
	list, err := s.Scenarios.ListScenarios(ctx)
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", scenario.ErrScenarioNotFound, id)
}
