package combat

import (
	"errors"
	"fmt"

	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/world"
)

// ErrNoStep is returned when a target square is reachable but no first step
// toward it exists, which means the distance fields disagree.
var ErrNoStep = errors.New("no step toward reachable target")

const unreached = -1

// Step describes a unit's movement decision for one turn.
type Step struct {
	From     world.Pos
	To       world.Pos
	Target   world.Pos // chosen target square; zero when Moved is false
	Distance int       // shortest distance from From to Target
	Moved    bool
}

// Pathfinder picks single steps toward the nearest enemy using breadth-first
// search. It owns its queue and distance field and reuses them across calls,
// so one Pathfinder must not be shared between goroutines.
type Pathfinder struct {
	terrain Terrain
	units   Occupancy
	dist    []int
	queue   []world.Pos
}

// NewPathfinder creates a pathfinder over the given terrain and units.
func NewPathfinder(terrain Terrain, units Occupancy) *Pathfinder {
	return &Pathfinder{
		terrain: terrain,
		units:   units,
		dist:    make([]int, terrain.Size()),
		queue:   make([]world.Pos, 0, terrain.Size()),
	}
}

// EnemyAdjacent reports whether u can attack without moving.
func (pf *Pathfinder) EnemyAdjacent(u *entity.Unit) bool {
	return adjacentEnemy(pf.terrain, pf.units, u)
}

// NextStep computes u's move for this turn without applying it.
//
// If u already stands next to an enemy, or no target square is reachable,
// the returned step has Moved == false.
func (pf *Pathfinder) NextStep(u *entity.Unit) (Step, error) {
	stay := Step{From: u.Pos, To: u.Pos}
	if pf.EnemyAdjacent(u) {
		return stay, nil
	}

	target, distance, ok := pf.ChooseTarget(u)
	if !ok {
		return stay, nil
	}

	// Distances measured outward from the target rank u's candidate steps.
	pf.flood(target, nil)

	best, bestDist := world.Pos{}, unreached
	for _, n := range pf.terrain.Neighbors(u.Pos) {
		if !pf.free(n) {
			continue
		}
		d := pf.dist[pf.terrain.Index(n)]
		if d == unreached {
			continue
		}
		// Strict comparison: the earlier direction keeps ties.
		if bestDist == unreached || d < bestDist {
			best, bestDist = n, d
		}
	}

	if bestDist == unreached {
		return stay, fmt.Errorf("unit %v toward %v at distance %d: %w", u, target, distance, ErrNoStep)
	}
	if bestDist != distance-1 {
		return stay, fmt.Errorf("unit %v toward %v: best step %v is %d away, want %d: %w",
			u, target, best, bestDist, distance-1, ErrNoStep)
	}

	return Step{
		From:     u.Pos,
		To:       best,
		Target:   target,
		Distance: distance,
		Moved:    true,
	}, nil
}

// Advance computes u's step and applies it through the occupancy.
func (pf *Pathfinder) Advance(u *entity.Unit) (Step, error) {
	step, err := pf.NextStep(u)
	if err != nil || !step.Moved {
		return step, err
	}
	if err := pf.units.MoveUnit(u.ID, step.To); err != nil {
		return Step{From: u.Pos, To: u.Pos}, err
	}
	return step, nil
}

// ChooseTarget returns the nearest reachable target square for u: an open,
// unoccupied cell next to a living enemy. Ties on distance go to the square
// first in reading order.
func (pf *Pathfinder) ChooseTarget(u *entity.Unit) (world.Pos, int, bool) {
	pf.flood(u.Pos, u)

	var target world.Pos
	best := unreached
	for _, enemy := range pf.units.LivingUnits() {
		if !u.IsEnemyOf(enemy) {
			continue
		}
		for _, sq := range pf.terrain.Neighbors(enemy.Pos) {
			if !pf.free(sq) {
				continue
			}
			d := pf.dist[pf.terrain.Index(sq)]
			if d == unreached {
				continue
			}
			if best == unreached || d < best || (d == best && sq.Less(target)) {
				target, best = sq, d
			}
		}
	}

	return target, best, best != unreached
}

// Distance returns the shortest walkable distance from u to p, or -1 when p
// cannot be reached. Cells held by other units block the way.
func (pf *Pathfinder) Distance(u *entity.Unit, p world.Pos) int {
	if !pf.terrain.IsOpen(p) {
		return unreached
	}
	pf.flood(u.Pos, u)
	return pf.dist[pf.terrain.Index(p)]
}

// flood fills pf.dist with breadth-first distances from origin over open
// cells that are unoccupied or held by self. Neighbors are visited up, left,
// right, down and the first write to a cell wins.
func (pf *Pathfinder) flood(origin world.Pos, self *entity.Unit) {
	for i := range pf.dist {
		pf.dist[i] = unreached
	}
	pf.queue = append(pf.queue[:0], origin)
	pf.dist[pf.terrain.Index(origin)] = 0

	for head := 0; head < len(pf.queue); head++ {
		p := pf.queue[head]
		d := pf.dist[pf.terrain.Index(p)]
		for _, n := range pf.terrain.Neighbors(p) {
			if !pf.terrain.IsOpen(n) {
				continue
			}
			if occ := pf.units.UnitAt(n); occ != nil && occ != self {
				continue
			}
			i := pf.terrain.Index(n)
			if pf.dist[i] != unreached {
				continue
			}
			pf.dist[i] = d + 1
			pf.queue = append(pf.queue, n)
		}
	}
}

// free reports whether p is open and nobody stands on it.
func (pf *Pathfinder) free(p world.Pos) bool {
	return pf.terrain.IsOpen(p) && pf.units.UnitAt(p) == nil
}
