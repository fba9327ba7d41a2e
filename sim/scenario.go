package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScenarioFile is the top-level layout of a scenario YAML file.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type ScenarioFile struct {
	Version   string     `yaml:"version"`
	Scenarios []Scenario `yaml:"scenarios"`
}

// Scenario is one named simulation run.
type Scenario struct {
	Name        string  `yaml:"name"`
	ArrivalRate float64 `yaml:"arrival_rate"`
	ServiceRate float64 `yaml:"service_rate"`
	Servers     int     `yaml:"servers"`
	WarmUp      float64 `yaml:"warm_up"`
	Customers   int     `yaml:"customers"`
	Seed        *int64  `yaml:"seed,omitempty"`
	MaxEvents   uint64  `yaml:"max_events,omitempty"`
}

// DefaultCustomers is the served-customer target used when a scenario omits one.
const DefaultCustomers = 10000

// Config converts the scenario into simulator construction parameters.
func (sc Scenario) Config() Config {
	cfg := NewConfig(sc.ArrivalRate, sc.ServiceRate, sc.Servers, sc.WarmUp)
	if sc.Seed != nil {
		cfg = cfg.WithSeed(*sc.Seed)
	}
	cfg.MaxEvents = sc.MaxEvents
	return cfg
}

// Validate checks the scenario's model parameters and customer target.
func (sc Scenario) Validate() error {
	if sc.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if err := sc.Config().Validate(); err != nil {
		return fmt.Errorf("scenario %q: %w", sc.Name, err)
	}
	if sc.Customers < 0 {
		return fmt.Errorf("scenario %q: customers must be positive, got %d: %w", sc.Name, sc.Customers, ErrConfiguration)
	}
	return nil
}

// LoadScenarioFile reads, strictly parses and validates a scenario file.
func LoadScenarioFile(path string) (*ScenarioFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	sf, err := ParseScenarios(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sf, nil
}

// ParseScenarios decodes scenario YAML with strict field checking (typos must
// cause errors), fills default customer targets and validates every entry.
func ParseScenarios(data []byte) (*ScenarioFile, error) {
	var sf ScenarioFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sf); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}
	if len(sf.Scenarios) == 0 {
		return nil, fmt.Errorf("scenario file defines no scenarios")
	}

	seen := make(map[string]bool, len(sf.Scenarios))
	for i := range sf.Scenarios {
		sc := &sf.Scenarios[i]
		if sc.Customers == 0 {
			sc.Customers = DefaultCustomers
		}
		if err := sc.Validate(); err != nil {
			return nil, err
		}
		if seen[sc.Name] {
			return nil, fmt.Errorf("duplicate scenario name %q", sc.Name)
		}
		seen[sc.Name] = true
	}
	return &sf, nil
}
