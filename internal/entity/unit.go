package entity

import (
	"fmt"

	"github.com/samdwyer/skirmish/internal/world"
)

// Unit is a single combatant. Faction and attack power never change after
// creation; position and hit points are mutated only through a Roster.
type Unit struct {
	ID      int
	Faction Faction
	Pos     world.Pos
	HP      int // May drop below zero on the killing blow
	MaxHP   int
	Attack  int
}

// IsAlive returns true if the unit has hit points remaining.
func (u *Unit) IsAlive() bool { return u.HP > 0 }

// GetHP returns current hit points.
func (u *Unit) GetHP() int { return u.HP }

// GetAttack returns attack power.
func (u *Unit) GetAttack() int { return u.Attack }

// IsEnemyOf reports whether o fights for the other side.
func (u *Unit) IsEnemyOf(o *Unit) bool {
	return o != nil && u.Faction != o.Faction
}

func (u *Unit) String() string {
	return fmt.Sprintf("%c%d%v[%d]", u.Faction.Symbol(), u.ID, u.Pos, u.HP)
}
