package scenario

import (
	"context"
	"fmt"
	"sync"

	"FOMCPulse/internal/model"
)

// Historical is the built-in scenario catalog. The first entry is the
// default game scenario.
var Historical = []model.Scenario{
	{
		ID:                   "fomc-2022-03",
		Narrative:            "Inflation is running at a 40-year high and the Fed has held rates at zero for two years. Markets expect liftoff, but the war in Ukraine has added growth uncertainty.",
		ActualDirection:      model.DirectionHike,
		ActualYieldChangeBps: 15,
		OccurredOn:           "March 2022",
		Context:              "The FOMC raised the target range by 25 bps, its first hike since 2018, and signalled six more this year. The 2-year yield rose as the dots moved higher.",
		Difficulty:           model.DifficultyEasy,
	},
	{
		ID:                   "fomc-2022-06",
		Narrative:            "A hotter-than-expected CPI print lands days before the meeting. A 50 bp move had been guided, but press reports hint at something larger.",
		ActualDirection:      model.DirectionHike,
		ActualYieldChangeBps: -20,
		OccurredOn:           "June 2022",
		Context:              "The Fed hiked 75 bps, the largest move since 1994. Front-end yields had already priced it in and rallied on the decision.",
		Difficulty:           model.DifficultyHard,
	},
	{
		ID:                   "fomc-2019-07",
		Narrative:            "Trade tensions and soft global growth weigh on the outlook, while unemployment sits near a 50-year low. Markets price an insurance cut.",
		ActualDirection:      model.DirectionCut,
		ActualYieldChangeBps: 3,
		OccurredOn:           "July 2019",
		Context:              "The Fed cut 25 bps, its first cut since 2008, but the chair called it a mid-cycle adjustment. Yields rose on the less dovish message.",
		Difficulty:           model.DifficultyHard,
	},
	{
		ID:                   "fomc-2020-03",
		Narrative:            "The pandemic is shutting down economies and funding markets are seizing up. An emergency Sunday announcement is scheduled.",
		ActualDirection:      model.DirectionCut,
		ActualYieldChangeBps: -13,
		OccurredOn:           "March 2020",
		Context:              "The Fed cut 100 bps to the zero bound and restarted asset purchases outside a scheduled meeting.",
		Difficulty:           model.DifficultyEasy,
	},
	{
		ID:                   "fomc-2023-09",
		Narrative:            "After 525 bps of tightening, inflation is cooling but growth is resilient. The committee has signalled it may proceed carefully.",
		ActualDirection:      model.DirectionHold,
		ActualYieldChangeBps: 5,
		OccurredOn:           "September 2023",
		Context:              "Rates were held at 5.25-5.50% but the dots removed two cuts from 2024, a hawkish hold that lifted the 2-year yield.",
		Difficulty:           model.DifficultyMedium,
	},
	{
		ID:                   "fomc-2024-09",
		Narrative:            "Inflation is approaching target and the labor market is softening. Futures are split between a 25 and a 50 bp first cut.",
		ActualDirection:      model.DirectionCut,
		ActualYieldChangeBps: -2,
		OccurredOn:           "September 2024",
		Context:              "The Fed opened its easing cycle with a 50 bp cut. The move was largely priced and front-end yields barely moved.",
		Difficulty:           model.DifficultyMedium,
	},
}

// StaticProvider serves a fixed catalog with a movable active scenario.
type StaticProvider struct {
	mu        sync.RWMutex
	scenarios []model.Scenario
	active    int
	name      string
}

// NewStaticProvider copies scenarios into a provider. The first scenario starts active.
func NewStaticProvider(scenarios []model.Scenario) (*StaticProvider, error) {
	if err := Validate(scenarios); err != nil {
		return nil, err
	}
	cp := make([]model.Scenario, len(scenarios))
	copy(cp, scenarios)
	return &StaticProvider{scenarios: cp, name: "static"}, nil
}

// NewHistoricalProvider serves the built-in catalog.
func NewHistoricalProvider() *StaticProvider {
	p, err := NewStaticProvider(Historical)
	if err != nil {
		panic(fmt.Sprintf("built-in scenario catalog: %v", err))
	}
	return p
}

func (p *StaticProvider) Name() string { return p.name }

func (p *StaticProvider) FetchScenario(_ context.Context) (*model.Scenario, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s := p.scenarios[p.active]
	return &s, nil
}

func (p *StaticProvider) ListScenarios(_ context.Context) ([]model.Scenario, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]model.Scenario, len(p.scenarios))
	copy(out, p.scenarios)
	return out, nil
}

// Lookup returns the scenario with the given id.
func (p *StaticProvider) Lookup(id string) (*model.Scenario, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, s := range p.scenarios {
		if s.ID == id {
			s := s
			return &s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrScenarioNotFound, id)
}

// Select makes the scenario with the given id active.
func (p *StaticProvider) Select(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, s := range p.scenarios {
		if s.ID == id {
			p.active = i
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrScenarioNotFound, id)
}

// Rotate advances the active scenario, wrapping at the end, and returns it.
func (p *StaticProvider) Rotate() model.Scenario {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = (p.active + 1) % len(p.scenarios)
	return p.scenarios[p.active]
}
