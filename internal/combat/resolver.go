package combat

import (
	"errors"
	"fmt"

	"github.com/samdwyer/skirmish/internal/entity"
)

// ErrInvalidTarget is returned when an attack names a unit that is not a
// living, adjacent enemy of the attacker.
var ErrInvalidTarget = errors.New("invalid attack target")

// AttackResult contains the outcome of one attack.
type AttackResult struct {
	Attacker *entity.Unit
	Target   *entity.Unit
	Damage   int
	Killed   bool
}

// Resolver selects attack targets and applies damage.
type Resolver struct {
	units Occupancy
}

// NewResolver creates a resolver over the given units.
func NewResolver(units Occupancy) *Resolver {
	return &Resolver{units: units}
}

// SelectTarget returns the adjacent enemy with the fewest hit points, or nil
// when no enemy is adjacent. Ties go to the enemy first in reading order.
func (r *Resolver) SelectTarget(u *entity.Unit) *entity.Unit {
	var target *entity.Unit
	// Neighbors come in reading order, so keeping the first minimum breaks ties.
	for _, n := range u.Pos.Neighbors() {
		other := r.units.UnitAt(n)
		if other == nil || !u.IsEnemyOf(other) {
			continue
		}
		if target == nil || other.GetHP() < target.GetHP() {
			target = other
		}
	}
	return target
}

// Attack lets u hit its selected target. The bool result is false when no
// enemy was in reach.
func (r *Resolver) Attack(u *entity.Unit) (AttackResult, bool, error) {
	target := r.SelectTarget(u)
	if target == nil {
		return AttackResult{Attacker: u}, false, nil
	}
	result, err := r.Strike(u, target)
	return result, err == nil, err
}

// Strike applies attacker's power to target after checking that the target
// is a living enemy standing next to the attacker.
func (r *Resolver) Strike(attacker, target *entity.Unit) (AttackResult, error) {
	result := AttackResult{Attacker: attacker, Target: target}

	switch {
	case target == nil || !target.IsAlive():
		return result, fmt.Errorf("%v attacks a dead unit: %w", attacker, ErrInvalidTarget)
	case !attacker.IsEnemyOf(target):
		return result, fmt.Errorf("%v attacks ally %v: %w", attacker, target, ErrInvalidTarget)
	case !attacker.Pos.Adjacent(target.Pos):
		return result, fmt.Errorf("%v attacks distant %v: %w", attacker, target, ErrInvalidTarget)
	case r.units.UnitAt(target.Pos) != target:
		return result, fmt.Errorf("%v attacks %v missing from its cell: %w", attacker, target, ErrInvalidTarget)
	}

	killed, err := r.units.ApplyDamage(target.ID, attacker.GetAttack())
	if err != nil {
		return result, err
	}
	result.Damage = attacker.GetAttack()
	result.Killed = killed
	return result, nil
}
