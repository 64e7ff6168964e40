package game

import (
	"github.com/samdwyer/skirmish/internal/world"
)

// EventKind classifies battle events.
type EventKind int

const (
	EventMove EventKind = iota
	EventAttack
	EventDeath
)

// String returns a human-readable event kind.
func (k EventKind) String() string {
	switch k {
	case EventMove:
		return "move"
	case EventAttack:
		return "attack"
	case EventDeath:
		return "death"
	default:
		return "unknown"
	}
}

// Event records one change to the battle state.
type Event struct {
	Kind   EventKind
	Round  int // zero-based index of the round in progress
	Unit   int // acting unit id
	Target int // attacked unit id, -1 for moves
	From   world.Pos
	To     world.Pos // move destination, or the target's position
	Damage int
	HP     int // target hit points after the attack
}
