package model

// Scenario describes one historical macro event used as the game's ground truth.
// Scenarios are read-only configuration and are never mutated after construction.
type Scenario struct {
	ID                   string     `json:"id" yaml:"id"`
	Narrative            string     `json:"narrative" yaml:"narrative"`
	ActualDirection      Direction  `json:"actual_direction" yaml:"actual_direction"`
	ActualYieldChangeBps int        `json:"actual_yield_change_bps" yaml:"actual_yield_change_bps"`
	OccurredOn           string     `json:"occurred_on" yaml:"occurred_on"`
	Context              string     `json:"context" yaml:"context"`
	Difficulty           Difficulty `json:"difficulty" yaml:"difficulty"`
}

// ScenarioCard is the player-facing view of a scenario, with the outcome withheld.
type ScenarioCard struct {
	ID         string     `json:"id"`
	Narrative  string     `json:"narrative"`
	OccurredOn string     `json:"occurred_on"`
	Difficulty Difficulty `json:"difficulty"`
}

// Card strips the answer fields from s.
func (s Scenario) Card() ScenarioCard {
	return ScenarioCard{
		ID:         s.ID,
		Narrative:  s.Narrative,
		OccurredOn: s.OccurredOn,
		Difficulty: s.Difficulty,
	}
}

// Prediction is one user attempt. GuessedDirection is nil while unset.
// ConfidencePercent is informational only and does not affect scoring.
type Prediction struct {
	GuessedDirection      *Direction `json:"guessed_direction,omitempty"`
	GuessedYieldChangeBps int        `json:"guessed_yield_change_bps"`
	ConfidencePercent     int        `json:"confidence_percent"`
}

// DefaultConfidence is the slider position of a fresh prediction.
const DefaultConfidence = 50

// NewPrediction returns a prediction with UI defaults.
func NewPrediction() Prediction {
	return Prediction{ConfidencePercent: DefaultConfidence}
}
