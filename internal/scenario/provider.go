package scenario

import (
	"context"
	"errors"
	"fmt"

	"FOMCPulse/internal/model"
)

var (
	ErrNoScenarios      = errors.New("scenario catalog is empty")
	ErrScenarioNotFound = errors.New("scenario not found")
)

// Provider supplies the scenarios the game is played against.
type Provider interface {
	FetchScenario(ctx context.Context) (*model.Scenario, error)
	ListScenarios(ctx context.Context) ([]model.Scenario, error)
	Name() string
}

// Validate checks a catalog for missing ids, bad enums and duplicates.
func Validate(scenarios []model.Scenario) error {
	if len(scenarios) == 0 {
		return ErrNoScenarios
	}
	seen := make(map[string]bool, len(scenarios))
	for i, s := range scenarios {
		if s.ID == "" {
			return fmt.Errorf("scenario %d: id is required", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("scenario %q: duplicate id", s.ID)
		}
		seen[s.ID] = true
		if !s.ActualDirection.Valid() {
			return fmt.Errorf("scenario %q: invalid actual_direction %q", s.ID, s.ActualDirection)
		}
		if !s.Difficulty.Valid() {
			return fmt.Errorf("scenario %q: invalid difficulty %q", s.ID, s.Difficulty)
		}
	}
	return nil
}
