package recorder

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FOMCPulse/internal/model"
)

func openTestDB(t *testing.T) *SQLRecorder {
	t.Helper()
	r, err := Open(context.Background(), DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRebind(t *testing.T) {
	q := "INSERT INTO t (a, b, c) VALUES (?,?,?)"
	assert.Equal(t, q, rebind(DriverSQLite, q))
	assert.Equal(t, "INSERT INTO t (a, b, c) VALUES ($1,$2,$3)", rebind(DriverPostgres, q))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), Driver("oracle"), "")
	assert.ErrorContains(t, err, "unsupported driver")
}

func TestSQLRecorder_Attempts(t *testing.T) {
	r := openTestDB(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 18, 18, 0, 0, 0, time.UTC)
	hike := model.DirectionHike

	attempts := []model.Attempt{
		{
			ID: "a1", UserID: "u1", DisplayName: "Ada", ScenarioID: "fomc-2022-03",
			Prediction: model.Prediction{GuessedDirection: &hike, GuessedYieldChangeBps: 25, ConfidencePercent: 70},
			Result:     model.ScoreResult{Score: 85, DirectionPoints: 50, YieldPoints: 35, DirectionCorrect: true, YieldDiffBps: 10, Accuracy: "Very close", Tier: "Excellent"},
			CreatedAt:  base,
		},
		{
			ID: "a2", UserID: "u1", DisplayName: "Ada", ScenarioID: "fomc-2022-06",
			Prediction: model.Prediction{GuessedYieldChangeBps: 0, ConfidencePercent: 50},
			Result:     model.ScoreResult{Score: 15, YieldPoints: 15, YieldDiffBps: 20, Accuracy: "Close", Tier: "Try Again"},
			CreatedAt:  base.Add(time.Hour),
		},
		{
			ID: "b1", UserID: "u2", DisplayName: "Bo", ScenarioID: "fomc-2022-03",
			Prediction: model.Prediction{GuessedDirection: &hike, GuessedYieldChangeBps: 15, ConfidencePercent: 100},
			Result:     model.ScoreResult{Score: 100, DirectionPoints: 50, YieldPoints: 50, DirectionCorrect: true, Accuracy: "Perfect!", Tier: "Excellent"},
			CreatedAt:  base,
		},
	}
	for i := range attempts {
		require.NoError(t, r.RecordAttempt(ctx, &attempts[i]))
	}

	got, err := r.AttemptsByUser(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a2", got[0].ID, "newest first")
	assert.Nil(t, got[0].Prediction.GuessedDirection)
	assert.Equal(t, attempts[0], got[1])

	got, err = r.AttemptsByUser(ctx, "u1", 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = r.AttemptsByUser(ctx, "nobody", 10)
	require.NoError(t, err)
	assert.Empty(t, got)

	assert.Error(t, r.RecordAttempt(ctx, &attempts[0]), "duplicate id must fail")
}

func TestSQLRecorder_Survey(t *testing.T) {
	r := openTestDB(t)
	ctx := context.Background()
	base := time.Date(2026, 6, 17, 12, 0, 0, 0, time.UTC)
	cut := model.DirectionCut

	require.NoError(t, r.RecordSurvey(ctx, &model.SurveySubmission{
		ID: "s1", UserID: "u1", Outlook: &cut,
		Projections: []model.DotProjection{
			{Year: "2026", Rate: decimal.RequireFromString("0.0375")},
			{Year: "2027", Rate: decimal.RequireFromString("0.03125")},
		},
		CreatedAt: base,
	}))
	require.NoError(t, r.RecordSurvey(ctx, &model.SurveySubmission{
		ID: "s2", UserID: "u2", Comment: "no cuts before December", CreatedAt: base.Add(time.Minute),
	}))

	subs, err := r.SurveySubmissions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, subs, 2)

	assert.Equal(t, "s2", subs[0].ID)
	assert.Nil(t, subs[0].Outlook)
	assert.Nil(t, subs[0].Projections)
	assert.Equal(t, "no cuts before December", subs[0].Comment)

	assert.Equal(t, "s1", subs[1].ID)
	require.NotNil(t, subs[1].Outlook)
	assert.Equal(t, model.DirectionCut, *subs[1].Outlook)
	require.Len(t, subs[1].Projections, 2)
	assert.True(t, decimal.RequireFromString("0.0375").Equal(subs[1].Projections[0].Rate))
	assert.Equal(t, base, subs[1].CreatedAt)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	ctx := context.Background()
	assert.NoError(t, r.RecordAttempt(ctx, &model.Attempt{}))
	assert.NoError(t, r.RecordSurvey(ctx, &model.SurveySubmission{}))
	got, err := r.AttemptsByUser(ctx, "u", 5)
	assert.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, r.Close())
}
