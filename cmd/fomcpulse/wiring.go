package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"FOMCPulse/internal/config"
	"FOMCPulse/internal/leaderboard"
	"FOMCPulse/internal/model"
	"FOMCPulse/internal/recorder"
	"FOMCPulse/internal/scenario"
	"FOMCPulse/internal/scheduler"
	"FOMCPulse/internal/survey"
)

// buildProvider returns the configured scenario source and, when it is a
// local catalog, the rotator for the scheduler.
func buildProvider(cfg *config.Config) (scenario.Provider, scheduler.Rotator, error) {
	switch cfg.Scenarios.Source {
	case "file":
		p, err := scenario.LoadFile(cfg.Scenarios.File)
		if err != nil {
			return nil, nil, err
		}
		return p, p, nil
	case "http":
		return scenario.NewHTTPProvider(cfg.Scenarios.BaseURL, cfg.Scenarios.APIKey, cfg.Proxy), nil, nil
	default:
		p := scenario.NewHistoricalProvider()
		return p, p, nil
	}
}

// buildRecorder opens the configured database, falling back to the noop
// recorder when it is disabled or unreachable.
func buildRecorder(ctx context.Context, cfg *config.Config) recorder.Recorder {
	if cfg.Database.Driver == "none" {
		return recorder.NewNoopRecorder()
	}
	driver := recorder.Driver(cfg.Database.Driver)
	if driver == recorder.DriverSQLite && !strings.HasPrefix(cfg.Database.DSN, "file:") {
		if dir := filepath.Dir(cfg.Database.DSN); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				log.Warn().Err(err).Str("dir", dir).Msg("create database directory")
			}
		}
	}
	rec, err := recorder.Open(ctx, driver, cfg.Database.DSN)
	if err != nil {
		log.Warn().Err(err).Msg("init sql recorder failed, using noop")
		return recorder.NewNoopRecorder()
	}
	return rec
}

// buildBoard uses Redis when configured and reachable, otherwise memory.
func buildBoard(ctx context.Context, cfg *config.Config) (leaderboard.Board, func() error) {
	noop := func() error { return nil }
	if cfg.Redis.Addr == "" {
		return leaderboard.NewMemoryBoard(), noop
	}
	rb := leaderboard.NewRedisBoard(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix)
	if err := rb.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable, using in-memory leaderboard")
		rb.Close()
		return leaderboard.NewMemoryBoard(), noop
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis leaderboard connected")
	return rb, rb.Close
}

// buildResults aggregates recorded submissions when a database is available.
func buildResults(rec recorder.Recorder) survey.ResultsProvider {
	if _, ok := rec.(*recorder.NoopRecorder); ok {
		return survey.StaticResults{}
	}
	return &survey.StoreResults{Source: rec}
}

func findScenario(ctx context.Context, p scenario.Provider, id string) (*model.Scenario, error) {
	if id == "" {
		sc, err := p.FetchScenario(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch scenario: %w", err)
		}
		return sc, nil
	}
	list, err := p.ListScenarios(ctx)
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
