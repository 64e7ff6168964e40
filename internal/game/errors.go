package game

import "errors"

var (
	// ErrUnknownSymbol is returned for map characters that are neither
	// terrain nor a faction.
	ErrUnknownSymbol = errors.New("unknown map symbol")
	// ErrMissingFaction is returned when a map lacks units of a faction.
	ErrMissingFaction = errors.New("faction has no units")
	// ErrInvalidConfig is returned for unusable hit points or attack power.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrInvariant wraps logic faults detected mid-battle.
	ErrInvariant = errors.New("battle invariant violated")
	// ErrStalemate is returned when a full round passes without any move or
	// attack; the battle would repeat that round forever.
	ErrStalemate = errors.New("battle cannot progress")
	// ErrNoWinningPower is returned when no attack power spares the faction.
	ErrNoWinningPower = errors.New("no attack power avoids losses")
)
