package gamedata

import (
	"errors"
	"strings"
)

// ScenarioDef is a reference battle with its known result.
type ScenarioDef struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Map       string `yaml:"map"`
	Rounds    int    `yaml:"rounds"`
	HitPoints int    `yaml:"hitPoints"`
	Outcome   int    `yaml:"outcome"`
	Winner    string `yaml:"winner"`

	// Smallest elf attack power that loses no elf, zero when unknown.
	ElfPower        int `yaml:"elfPower,omitempty"`
	ElfPowerOutcome int `yaml:"elfPowerOutcome,omitempty"`
}

// Rows returns the scenario map split into lines.
func (s *ScenarioDef) Rows() []string {
	return strings.Split(strings.TrimRight(s.Map, "\n"), "\n")
}

// ScenariosFile represents the structure of scenarios.yaml.
type ScenariosFile struct {
	Scenarios []ScenarioDef `yaml:"scenarios"`
}

// LoadScenarios loads scenario definitions from the embedded scenarios.yaml.
func LoadScenarios() ([]ScenarioDef, error) {
	file, err := Load[ScenariosFile]("scenarios.yaml")
	if err != nil {
		return nil, err
	}
	return file.Scenarios, nil
}

// ScenarioRegistry provides lookup of scenarios by id.
type ScenarioRegistry struct {
	scenarios []ScenarioDef
}

// LoadScenarioRegistry loads and creates a registry from the embedded scenarios.yaml.
func LoadScenarioRegistry() (*ScenarioRegistry, error) {
	scenarios, err := LoadScenarios()
	if err != nil {
		return nil, err
	}
	if len(scenarios) == 0 {
		return nil, errors.New("no scenarios loaded from scenarios.yaml")
	}
	return &ScenarioRegistry{scenarios: scenarios}, nil
}

// GetByID returns the scenario with the given ID, or nil if not found.
func (r *ScenarioRegistry) GetByID(id string) *ScenarioDef {
	for i := range r.scenarios {
		if r.scenarios[i].ID == id {
			return &r.scenarios[i]
		}
	}
	return nil
}

// All returns all scenarios in file order.
func (r *ScenarioRegistry) All() []ScenarioDef {
	return r.scenarios
}

// Count returns the number of scenarios in the registry.
func (r *ScenarioRegistry) Count() int {
	return len(r.scenarios)
}
