package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FOMCPulse/internal/leaderboard"
	"FOMCPulse/internal/model"
	"FOMCPulse/internal/scenario"
	"FOMCPulse/internal/survey"
)

type captureSender struct {
	sent []string
}

func (c *captureSender) SendWithRetry(_ context.Context, text string, _ int) error {
	c.sent = append(c.sent, text)
	return nil
}

type failingResults struct{}

func (failingResults) FetchAggregates(context.Context) (*model.Aggregates, error) {
	return nil, errors.New("db down")
}

type failingBoard struct{ leaderboard.Board }

func (failingBoard) Top(context.Context, int) ([]model.LeaderboardEntry, error) {
	return nil, errors.New(`dial <redis> & retry: refused`)
}

func TestRegisterAll(t *testing.T) {
	ctx := context.Background()
	s := NewScheduler(ctx, scenario.NewHistoricalProvider(), leaderboard.NewMemoryBoard(), survey.StaticResults{}, &captureSender{})
	require.NoError(t, s.RegisterAll("0 0 8 * * *", "0 0 9 * * 1"))
	assert.Len(t, s.Cron.Entries(), 2)

	s = NewScheduler(ctx, nil, leaderboard.NewMemoryBoard(), survey.StaticResults{}, &captureSender{})
	require.NoError(t, s.RegisterAll("0 0 8 * * *", "0 0 9 * * 1"))
	assert.Len(t, s.Cron.Entries(), 1, "no rotate task without a rotator")

	assert.Error(t, s.RegisterAll("not a cron", "0 0 9 * * 1"))
}

func TestRotateTask(t *testing.T) {
	sender := &captureSender{}
	p := scenario.NewHistoricalProvider()
	s := NewScheduler(context.Background(), p, leaderboard.NewMemoryBoard(), survey.StaticResults{}, sender)

	s.rotateTask()
	active, err := p.FetchScenario(context.Background())
	require.NoError(t, err)
	assert.Equal(t, scenario.Historical[1].ID, active.ID)

	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "New scenario")
	assert.Contains(t, sender.sent[0], scenario.Historical[1].OccurredOn)
}

func TestDigestTask(t *testing.T) {
	ctx := context.Background()
	board := leaderboard.NewMemoryBoard()
	require.NoError(t, board.Record(ctx, "u1", "Ada", 85))

	sender := &captureSender{}
	s := NewScheduler(ctx, nil, board, survey.StaticResults{}, sender)
	s.RunDigestNow()
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "1. Ada  85 pts")
	assert.Contains(t, sender.sent[0], "1247 responses")

	sender.sent = nil
	s.Results = failingResults{}
	s.RunDigestNow()
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "Ada")
	assert.NotContains(t, sender.sent[0], "responses")
}

func TestDigestTask_EscapesErrors(t *testing.T) {
	sender := &captureSender{}
	s := NewScheduler(context.Background(), nil, failingBoard{}, survey.StaticResults{}, sender)
	s.RunDigestNow()
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "Weekly digest failed")
	assert.Contains(t, sender.sent[0], "dial &lt;redis&gt; &amp; retry: refused")
	assert.NotContains(t, sender.sent[0], "<redis>")
}
