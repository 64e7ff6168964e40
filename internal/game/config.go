package game

import (
	"fmt"
	"maps"

	"go.uber.org/zap"

	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/gamedata"
)

// Config holds battle options.
type Config struct {
	// HitPoints every unit starts with.
	HitPoints int

	// AttackPower per faction.
	AttackPower map[entity.Faction]int

	// StopOnLoss ends the battle as soon as a unit of this faction dies.
	// FactionNone disables it.
	StopOnLoss entity.Faction

	// Logger receives the battle log. Nil discards it.
	Logger *zap.Logger

	// Observer, if set, is called for every move, attack and death.
	Observer func(Event)
}

// DefaultConfig returns the standard rules: 200 hit points and an attack
// power of 3 for both factions.
func DefaultConfig() Config {
	return Config{
		HitPoints: 200,
		AttackPower: map[entity.Faction]int{
			entity.FactionGoblin: 3,
			entity.FactionElf:    3,
		},
	}
}

// ConfigFromRules builds a config from loaded rules.
func ConfigFromRules(rules *gamedata.Rules) (Config, error) {
	cfg := Config{
		HitPoints:   rules.HitPoints,
		AttackPower: make(map[entity.Faction]int, len(rules.Factions)),
	}
	for _, def := range rules.Factions {
		f, ok := entity.ParseFaction(def.ID)
		if !ok {
			return Config{}, fmt.Errorf("rules faction %q: %w", def.ID, ErrInvalidConfig)
		}
		cfg.AttackPower[f] = def.Attack
	}
	return cfg, cfg.Validate()
}

// WithAttackPower returns a copy of c with f's attack power replaced.
func (c Config) WithAttackPower(f entity.Faction, power int) Config {
	c.AttackPower = maps.Clone(c.AttackPower)
	if c.AttackPower == nil {
		c.AttackPower = make(map[entity.Faction]int, len(entity.Factions))
	}
	c.AttackPower[f] = power
	return c
}

// Validate checks hit points and that every faction has a positive attack power.
func (c Config) Validate() error {
	if c.HitPoints <= 0 {
		return fmt.Errorf("hit points %d: %w", c.HitPoints, ErrInvalidConfig)
	}
	for _, f := range entity.Factions {
		if p := c.AttackPower[f]; p <= 0 {
			return fmt.Errorf("%s attack power %d: %w", f, p, ErrInvalidConfig)
		}
	}
	return nil
}
