// Package combat provides per-turn movement and attack resolution for battles.
package combat

import (
	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/world"
)

// Terrain answers static wall/open queries. *world.Grid implements it.
type Terrain interface {
	IsOpen(p world.Pos) bool
	Neighbors(p world.Pos) [4]world.Pos
	Size() int
	Index(p world.Pos) int
}

// Occupancy is the live unit state a turn reads and mutates.
// *entity.Roster implements it.
type Occupancy interface {
	UnitAt(p world.Pos) *entity.Unit
	LivingUnits() []*entity.Unit
	MoveUnit(id int, to world.Pos) error
	ApplyDamage(id int, amount int) (bool, error)
}

var (
	_ Terrain   = (*world.Grid)(nil)
	_ Occupancy = (*entity.Roster)(nil)
)

// adjacentEnemy reports whether any living enemy of u stands next to it.
func adjacentEnemy(terrain Terrain, units Occupancy, u *entity.Unit) bool {
	for _, n := range terrain.Neighbors(u.Pos) {
		if other := units.UnitAt(n); other != nil && u.IsEnemyOf(other) {
			return true
		}
	}
	return false
}
