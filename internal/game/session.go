package game

import (
	"FOMCPulse/internal/model"
	"FOMCPulse/internal/scoring"
)

// MaxYieldGuessBps bounds the yield slider in either direction.
const MaxYieldGuessBps = 50

// Session is one player's game view state. Event methods return an updated
// copy; a Session is never shared between players.
type Session struct {
	ScenarioID string             `json:"scenario_id"`
	Prediction model.Prediction   `json:"prediction"`
	Submitted  bool               `json:"submitted"`
	Last       *model.ScoreResult `json:"last,omitempty"`
}

// NewSession opens a game view for a scenario with a default prediction.
func NewSession(scenarioID string) Session {
	return Session{ScenarioID: scenarioID, Prediction: model.NewPrediction()}
}

func (s Session) SelectDirection(d model.Direction) Session {
	s.Prediction.GuessedDirection = &d
	s.Submitted = false
	return s
}

func (s Session) ClearDirection() Session {
	s.Prediction.GuessedDirection = nil
	return s
}

// AdjustYield nudges the yield estimate, staying within the slider bounds.
func (s Session) AdjustYield(deltaBps int) Session {
	return s.SetYield(s.Prediction.GuessedYieldChangeBps + deltaBps)
}

func (s Session) SetYield(bps int) Session {
	s.Prediction.GuessedYieldChangeBps = clamp(bps, -MaxYieldGuessBps, MaxYieldGuessBps)
	s.Submitted = false
	return s
}

func (s Session) SetConfidence(pct int) Session {
	s.Prediction.ConfidencePercent = clamp(pct, 0, 100)
	return s
}

// Submit scores the current prediction against scenario and resets the
// prediction to its defaults. The submitted prediction is returned alongside.
func (s Session) Submit(scenario model.Scenario) (Session, model.Prediction, model.ScoreResult) {
	submitted := s.Prediction
	res := scoring.Evaluate(submitted, scenario)
	s.ScenarioID = scenario.ID
	s.Last = &res
	s.Submitted = true
	s.Prediction = model.NewPrediction()
	return s, submitted, res
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
