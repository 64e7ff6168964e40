// Package game runs battles: the round scheduler, outcome scoring and the
// attack-power search built on top of it.
package game

// Phase is a state of the battle state machine:
// RoundStart -> UnitTurn... -> RoundEnd -> RoundStart, ending in CombatOver.
type Phase int

const (
	// PhaseRoundStart snapshots the turn order for the next round.
	PhaseRoundStart Phase = iota
	// PhaseUnitTurn runs the turn of the unit at the cursor.
	PhaseUnitTurn
	// PhaseRoundEnd counts a fully completed round.
	PhaseRoundEnd
	// PhaseCombatOver is terminal.
	PhaseCombatOver
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseRoundStart:
		return "round_start"
	case PhaseUnitTurn:
		return "unit_turn"
	case PhaseRoundEnd:
		return "round_end"
	case PhaseCombatOver:
		return "combat_over"
	default:
		return "unknown"
	}
}
