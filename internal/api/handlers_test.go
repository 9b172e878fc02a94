package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FOMCPulse/internal/game"
	"FOMCPulse/internal/leaderboard"
	"FOMCPulse/internal/model"
	"FOMCPulse/internal/recorder"
	"FOMCPulse/internal/scenario"
	"FOMCPulse/internal/survey"
)

type surveySink struct {
	mu   sync.Mutex
	subs []model.SurveySubmission
}

func (s *surveySink) RecordSurvey(_ context.Context, sub *model.SurveySubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, *sub)
	return nil
}

func newTestServer(t *testing.T) (*httptest.Server, *surveySink) {
	t.Helper()
	g := game.NewService(scenario.NewHistoricalProvider(), recorder.NewNoopRecorder(), leaderboard.NewMemoryBoard())
	sink := &surveySink{}
	srv := NewServer(g, survey.NewService(sink), survey.StaticResults{}, []string{"http://localhost:3000"})
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts, sink
}

func doJSON(t *testing.T, method, url, body string, out any) int {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t)
	var body map[string]string
	assert.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, ts.URL+"/healthz", "", &body))
	assert.Equal(t, "ok", body["status"])
}

func TestGetScenario_HidesAnswer(t *testing.T) {
	ts, _ := newTestServer(t)
	var raw map[string]any
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, ts.URL+"/api/scenario", "", &raw))
	assert.Equal(t, "fomc-2022-03", raw["id"])
	assert.NotContains(t, raw, "actual_direction")
	assert.NotContains(t, raw, "actual_yield_change_bps")

	var cards []map[string]any
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, ts.URL+"/api/scenarios", "", &cards))
	assert.Len(t, cards, len(scenario.Historical))
	for _, c := range cards {
		assert.NotContains(t, c, "actual_direction")
	}
}

func TestPostPrediction(t *testing.T) {
	ts, _ := newTestServer(t)

	var out game.Outcome
	code := doJSON(t, http.MethodPost, ts.URL+"/api/game/predictions",
		`{"user_id":"ada","display_name":"Ada","direction":"hike","yield_change_bps":25,"confidence":70}`, &out)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 85, out.Result.Score)
	assert.Equal(t, "Very close", out.Result.Accuracy)
	assert.Equal(t, "Excellent", out.Result.Tier)
	assert.Equal(t, 1, out.Rank)
	assert.Equal(t, model.DirectionHike, out.Scenario.ActualDirection)

	code = doJSON(t, http.MethodPost, ts.URL+"/api/game/predictions",
		`{"user_id":"bo","yield_change_bps":15}`, &out)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 50, out.Result.Score, "unset direction forfeits the direction points")

	var board []model.LeaderboardEntry
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, ts.URL+"/api/leaderboard?limit=1", "", &board))
	require.Len(t, board, 1)
	assert.Equal(t, "ada", board[0].UserID)
	assert.Equal(t, "Ada", board[0].DisplayName)

	var profile model.Profile
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, ts.URL+"/api/profile/bo", "", &profile))
	assert.Equal(t, 2, profile.Rank)
}

func TestPostPrediction_BadRequests(t *testing.T) {
	ts, _ := newTestServer(t)
	tests := []struct {
		name string
		body string
	}{
		{"missing user", `{"direction":"hike","yield_change_bps":15}`},
		{"unknown direction", `{"user_id":"ada","direction":"sideways","yield_change_bps":15}`},
		{"confidence out of range", `{"user_id":"ada","direction":"hike","yield_change_bps":15,"confidence":101}`},
		{"malformed json", `{"user_id":`},
		{"unknown field", `{"user_id":"ada","bps":15}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]string
			assert.Equal(t, http.StatusBadRequest, doJSON(t, http.MethodPost, ts.URL+"/api/game/predictions", tt.body, &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestPostScore_RecordsNothing(t *testing.T) {
	ts, _ := newTestServer(t)
	var resp scoreResponse
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, ts.URL+"/api/game/score",
		`{"direction":"cut","yield_change_bps":-40}`, &resp))
	assert.Equal(t, 5, resp.Result.Score)
	assert.Equal(t, "Try Again", resp.Result.Tier)

	var board []model.LeaderboardEntry
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, ts.URL+"/api/leaderboard", "", &board))
	assert.Empty(t, board)
}

func TestGetLeaderboard_BadLimit(t *testing.T) {
	ts, _ := newTestServer(t)
	for _, q := range []string{"0", "-1", "ten"} {
		assert.Equal(t, http.StatusBadRequest, doJSON(t, http.MethodGet, ts.URL+"/api/leaderboard?limit="+q, "", nil), q)
	}
}

func TestPostSurvey(t *testing.T) {
	ts, sink := newTestServer(t)

	var saved model.SurveySubmission
	code := doJSON(t, http.MethodPost, ts.URL+"/api/survey",
		`{"user_id":"ada","outlook":"cut","projections":[{"year":"2026","rate":"0.0350"}]}`, &saved)
	require.Equal(t, http.StatusCreated, code)
	assert.NotEmpty(t, saved.ID)
	require.NotNil(t, saved.Outlook)
	assert.Equal(t, model.DirectionCut, *saved.Outlook)

	code = doJSON(t, http.MethodPost, ts.URL+"/api/survey",
		`{"user_id":"bo","kind":"comment","outlook":"hike","comment":"two more cuts"}`, &saved)
	require.Equal(t, http.StatusCreated, code)
	assert.Nil(t, saved.Outlook, "comments carry no outlook")

	require.Len(t, sink.subs, 2)
}

func TestPostSurvey_Validation(t *testing.T) {
	ts, sink := newTestServer(t)
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"no user", `{"outlook":"hold"}`, "Please tell us who you are"},
		{"no outlook", `{"user_id":"ada"}`, "Please select your rate outlook"},
		{"garbage outlook", `{"user_id":"ada","outlook":"moon"}`, "Please select your rate outlook"},
		{"empty comment", `{"user_id":"ada","kind":"comment","comment":"  "}`, "Please enter a comment"},
		{"negative rate", `{"user_id":"ada","outlook":"hold","projections":[{"year":"2026","rate":"-0.01"}]}`, "Each projection needs a year and a non-negative rate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]string
			assert.Equal(t, http.StatusUnprocessableEntity, doJSON(t, http.MethodPost, ts.URL+"/api/survey", tt.body, &body))
			assert.Equal(t, tt.message, body["error"])
		})
	}
	assert.Empty(t, sink.subs)

	assert.Equal(t, http.StatusBadRequest, doJSON(t, http.MethodPost, ts.URL+"/api/survey", `{"user_id":"ada","kind":"poll"}`, nil))
}

func TestGetResults(t *testing.T) {
	ts, _ := newTestServer(t)
	var agg model.Aggregates
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, ts.URL+"/api/results", "", &agg))
	assert.Equal(t, "mock", agg.Source)
	assert.Equal(t, 100, agg.Share.Hike+agg.Share.Hold+agg.Share.Cut)
	assert.NotEmpty(t, agg.Dots)
}

func TestCORS(t *testing.T) {
	ts, _ := newTestServer(t)
	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/game/score", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}
