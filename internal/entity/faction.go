// Package entity provides combatants and the roster that tracks where they stand.
package entity

// Faction is one of the two opposing sides of a battle.
type Faction int

const (
	// FactionNone is the zero value; no unit belongs to it.
	FactionNone Faction = iota
	FactionGoblin
	FactionElf
)

// Factions lists the playable factions.
var Factions = [2]Faction{FactionGoblin, FactionElf}

// String returns the faction identifier.
func (f Faction) String() string {
	switch f {
	case FactionGoblin:
		return "goblin"
	case FactionElf:
		return "elf"
	default:
		return "none"
	}
}

// Symbol returns the map character for a faction.
func (f Faction) Symbol() rune {
	switch f {
	case FactionGoblin:
		return 'G'
	case FactionElf:
		return 'E'
	default:
		return '?'
	}
}

// Opponent returns the opposing faction.
func (f Faction) Opponent() Faction {
	switch f {
	case FactionGoblin:
		return FactionElf
	case FactionElf:
		return FactionGoblin
	default:
		return FactionNone
	}
}

// FactionForSymbol maps a map character to its faction.
func FactionForSymbol(r rune) (Faction, bool) {
	switch r {
	case 'G':
		return FactionGoblin, true
	case 'E':
		return FactionElf, true
	default:
		return FactionNone, false
	}
}

// ParseFaction maps a faction identifier ("goblin", "elf") to its faction.
func ParseFaction(id string) (Faction, bool) {
	for _, f := range Factions {
		if f.String() == id {
			return f, true
		}
	}
	return FactionNone, false
}
