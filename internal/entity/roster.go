package entity

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samdwyer/skirmish/internal/world"
)

var (
	// ErrOccupied is returned when a unit would share a cell with another living unit.
	ErrOccupied = errors.New("position occupied")
	// ErrBlocked is returned when a unit would stand on a wall or outside the grid.
	ErrBlocked = errors.New("position not open")
	// ErrUnknownUnit is returned for ids the roster never issued.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrDeadUnit is returned when a dead unit is moved or damaged.
	ErrDeadUnit = errors.New("unit is dead")
)

// Roster is the unit table plus the occupancy overlay for one grid.
// The overlay always agrees with each living unit's Pos.
type Roster struct {
	grid     *world.Grid
	units    []*Unit
	occupant []*Unit // indexed by grid.Index
	alive    map[Faction]int
}

// NewRoster creates an empty roster over grid.
func NewRoster(grid *world.Grid) *Roster {
	return &Roster{
		grid:     grid,
		units:    make([]*Unit, 0),
		occupant: make([]*Unit, grid.Size()),
		alive:    make(map[Faction]int, len(Factions)),
	}
}

// Spawn adds a living unit at pos. Ids are issued sequentially from zero.
func (r *Roster) Spawn(f Faction, pos world.Pos, hp, attack int) (*Unit, error) {
	if !r.grid.IsOpen(pos) {
		return nil, fmt.Errorf("spawn %s at %v: %w", f, pos, ErrBlocked)
	}
	if other := r.UnitAt(pos); other != nil {
		return nil, fmt.Errorf("spawn %s at %v over %v: %w", f, pos, other, ErrOccupied)
	}

	u := &Unit{
		ID:      len(r.units),
		Faction: f,
		Pos:     pos,
		HP:      hp,
		MaxHP:   hp,
		Attack:  attack,
	}
	r.units = append(r.units, u)
	r.occupant[r.grid.Index(pos)] = u
	r.alive[f]++
	return u, nil
}

// Unit returns the unit with the given id, dead or alive, or nil.
func (r *Roster) Unit(id int) *Unit {
	if id < 0 || id >= len(r.units) {
		return nil
	}
	return r.units[id]
}

// UnitAt returns the living unit standing on pos, or nil.
func (r *Roster) UnitAt(pos world.Pos) *Unit {
	if !r.grid.InBounds(pos) {
		return nil
	}
	return r.occupant[r.grid.Index(pos)]
}

// Units returns every unit ever spawned, including the dead, in id order.
func (r *Roster) Units() []*Unit {
	return r.units
}

// LivingUnits returns all living units. Order is unspecified; use
// ReadingOrder when it matters.
func (r *Roster) LivingUnits() []*Unit {
	living := make([]*Unit, 0, len(r.units))
	for _, u := range r.units {
		if u.IsAlive() {
			living = append(living, u)
		}
	}
	return living
}

// ReadingOrder returns a snapshot of the living units sorted by position,
// row first, then column.
func (r *Roster) ReadingOrder() []*Unit {
	living := r.LivingUnits()
	slices.SortFunc(living, func(a, b *Unit) int {
		return a.Pos.Compare(b.Pos)
	})
	return living
}

// MoveUnit relocates a living unit, updating the overlay.
func (r *Roster) MoveUnit(id int, to world.Pos) error {
	u := r.Unit(id)
	if u == nil {
		return fmt.Errorf("move unit %d: %w", id, ErrUnknownUnit)
	}
	if !u.IsAlive() {
		return fmt.Errorf("move %v: %w", u, ErrDeadUnit)
	}
	if !r.grid.IsOpen(to) {
		return fmt.Errorf("move %v to %v: %w", u, to, ErrBlocked)
	}
	if other := r.UnitAt(to); other != nil && other != u {
		return fmt.Errorf("move %v to %v held by %v: %w", u, to, other, ErrOccupied)
	}

	r.occupant[r.grid.Index(u.Pos)] = nil
	u.Pos = to
	r.occupant[r.grid.Index(to)] = u
	return nil
}

// ApplyDamage subtracts amount from a living unit's hit points. A unit
// whose hit points reach zero or below is removed from the overlay at once.
// Returns whether the unit died.
func (r *Roster) ApplyDamage(id int, amount int) (bool, error) {
	u := r.Unit(id)
	if u == nil {
		return false, fmt.Errorf("damage unit %d: %w", id, ErrUnknownUnit)
	}
	if !u.IsAlive() {
		return false, fmt.Errorf("damage %v: %w", u, ErrDeadUnit)
	}

	u.HP -= amount
	if u.IsAlive() {
		return false, nil
	}

	r.occupant[r.grid.Index(u.Pos)] = nil
	r.alive[u.Faction]--
	return true, nil
}

// FactionAlive returns true iff at least one unit of f is alive.
func (r *Roster) FactionAlive(f Faction) bool {
	return r.alive[f] > 0
}

// AliveCount returns the number of living units of f.
func (r *Roster) AliveCount(f Faction) int {
	return r.alive[f]
}

// SpawnedCount returns how many units of f were ever spawned.
func (r *Roster) SpawnedCount(f Faction) int {
	n := 0
	for _, u := range r.units {
		if u.Faction == f {
			n++
		}
	}
	return n
}

// TotalHP returns the summed hit points of all living units.
func (r *Roster) TotalHP() int {
	total := 0
	for _, u := range r.units {
		if u.IsAlive() {
			total += u.HP
		}
	}
	return total
}
