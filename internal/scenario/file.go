package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"FOMCPulse/internal/model"
)

type catalogFile struct {
	Active    string           `yaml:"active"`
	Scenarios []model.Scenario `yaml:"scenarios"`
}

// LoadFile reads a YAML scenario catalog and returns a StaticProvider over it.
// When the file names an active scenario it is selected.
func LoadFile(path string) (*StaticProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML catalog.
func ParseCatalog(data []byte) (*StaticProvider, error) {
	var cat catalogFile
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse scenario catalog: %w", err)
	}
	p, err := NewStaticProvider(cat.Scenarios)
	if err != nil {
		return nil, fmt.Errorf("scenario catalog: %w", err)
	}
	p.name = "file"
	if cat.Active != "" {
		if err := p.Select(cat.Active); err != nil {
			return nil, fmt.Errorf("scenario catalog: active: %w", err)
		}
	}
	return p, nil
}
