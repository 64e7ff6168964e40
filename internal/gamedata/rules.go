package gamedata

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/gdamore/tcell/v2"
)

// FactionDef defines one side of a battle loaded from YAML.
type FactionDef struct {
	ID          string `yaml:"id"`          // Faction identifier ("goblin", "elf")
	Name        string `yaml:"name"`        // Display name
	Color       string `yaml:"color"`       // Hex color code for rendering
	Attack      int    `yaml:"attack"`      // Attack power of every unit in the faction
	SpawnWeight int    `yaml:"spawnWeight"` // Relative frequency in generated arenas
}

// TCellColor returns the faction color, falling back to white.
func (f *FactionDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(f.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

// Rules represents the structure of rules.yaml.
type Rules struct {
	HitPoints int          `yaml:"hitPoints"`
	Factions  []FactionDef `yaml:"factions"`
}

// Validate checks that the rules can drive a battle.
func (r *Rules) Validate() error {
	if r.HitPoints <= 0 {
		return fmt.Errorf("hitPoints must be positive, got %d", r.HitPoints)
	}
	if len(r.Factions) == 0 {
		return errors.New("no factions defined")
	}
	for _, f := range r.Factions {
		if f.Attack <= 0 {
			return fmt.Errorf("faction %s: attack must be positive, got %d", f.ID, f.Attack)
		}
		if f.SpawnWeight < 0 {
			return fmt.Errorf("faction %s: negative spawnWeight", f.ID)
		}
	}
	return nil
}

// LoadRules loads the embedded default rules.
func LoadRules() (*Rules, error) {
	rules, err := Load[Rules]("rules.yaml")
	if err != nil {
		return nil, err
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("rules.yaml: %w", err)
	}
	return &rules, nil
}

// LoadRulesFile loads rules from a YAML file on disk.
func LoadRulesFile(path string) (*Rules, error) {
	rules, err := LoadFile[Rules](path)
	if err != nil {
		return nil, err
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &rules, nil
}

// MustLoadRules loads the embedded rules, panicking on error.
func MustLoadRules() *Rules {
	rules, err := LoadRules()
	if err != nil {
		panic(err)
	}
	return rules
}

// FactionRegistry holds faction definitions and provides spawning utilities.
type FactionRegistry struct {
	factions    []FactionDef
	totalWeight int
}

// NewFactionRegistry creates a registry from loaded faction definitions.
func NewFactionRegistry(factions []FactionDef) *FactionRegistry {
	totalWeight := 0
	for _, f := range factions {
		totalWeight += f.SpawnWeight
	}
	return &FactionRegistry{
		factions:    factions,
		totalWeight: totalWeight,
	}
}

// SpawnRandom selects a faction definition using weighted probability.
func (r *FactionRegistry) SpawnRandom(rng *rand.Rand) *FactionDef {
	if r.totalWeight <= 0 || len(r.factions) == 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)
	cumulative := 0
	for i := range r.factions {
		cumulative += r.factions[i].SpawnWeight
		if roll < cumulative {
			return &r.factions[i]
		}
	}

	return &r.factions[0]
}

// GetByID returns the faction definition with the given ID, or nil if not found.
func (r *FactionRegistry) GetByID(id string) *FactionDef {
	for i := range r.factions {
		if r.factions[i].ID == id {
			return &r.factions[i]
		}
	}
	return nil
}

// All returns all faction definitions.
func (r *FactionRegistry) All() []FactionDef {
	return r.factions
}

// Count returns the number of factions in the registry.
func (r *FactionRegistry) Count() int {
	return len(r.factions)
}
