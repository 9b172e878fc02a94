package scheduler

import (
	"context"
	"fmt"
	"html"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"FOMCPulse/internal/leaderboard"
	"FOMCPulse/internal/model"
	"FOMCPulse/internal/notifier"
	"FOMCPulse/internal/survey"
)

const digestSize = 10

// Rotator advances the active scenario.
type Rotator interface {
	Rotate() model.Scenario
}

// Sender posts a message to the announcement chat.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron     *cron.Cron
	Rotator  Rotator
	Board    leaderboard.Board
	Results  survey.ResultsProvider
	Notifier Sender
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler. rot may be nil when the scenario
// source cannot be rotated locally.
func NewScheduler(ctx context.Context, rot Rotator, board leaderboard.Board, results survey.ResultsProvider, n Sender) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Rotator:  rot,
		Board:    board,
		Results:  results,
		Notifier: n,
		Ctx:      ctx,
	}
}

// RegisterAll registers the scenario rotation and weekly digest tasks.
func (s *Scheduler) RegisterAll(rotateCron, digestCron string) error {
	if s.Rotator != nil {
		if _, err := s.Cron.AddFunc(rotateCron, s.rotateTask); err != nil {
			return fmt.Errorf("register rotate task: %w", err)
		}
	} else {
		log.Info().Msg("scenario source is not rotatable, rotate task disabled")
	}
	if _, err := s.Cron.AddFunc(digestCron, s.digestTask); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("tasks", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running tasks.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunDigestNow posts the digest immediately.
func (s *Scheduler) RunDigestNow() {
	s.digestTask()
}

func (s *Scheduler) rotateTask() {
	sc := s.Rotator.Rotate()
	log.Info().Str("scenario", sc.ID).Msg("scenario rotated")
	s.trySend("🔄 <b>New scenario</b>\n\n" + notifier.FormatScenario(&sc))
}

func (s *Scheduler) digestTask() {
	log.Info().Msg("running weekly digest")

	entries, err := s.Board.Top(s.Ctx, digestSize)
	if err != nil {
		log.Error().Err(err).Msg("digest: leaderboard")
		s.trySend("❌ Weekly digest failed: " + html.EscapeString(err.Error()))
		return
	}
	report := notifier.FormatLeaderboard(entries)

	agg, err := s.Results.FetchAggregates(s.Ctx)
	if err != nil {
		log.Error().Err(err).Msg("digest: survey results")
	} else {
		report += "\n\n" + notifier.FormatAggregates(agg)
	}
	s.trySend(report)
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}
