package combat

import (
	"testing"

	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/world"
)

// newBoard builds a grid and roster from map rows. Units get 200 HP and 3 attack.
func newBoard(t *testing.T, rows ...string) (*world.Grid, *entity.Roster) {
	t.Helper()

	g := world.NewGrid(len(rows[0]), len(rows))
	type spawn struct {
		f   entity.Faction
		pos world.Pos
	}
	var spawns []spawn
	for y, row := range rows {
		for x, r := range row {
			p := world.Pos{X: x, Y: y}
			switch r {
			case '#':
			case '.':
				g.Set(p, world.TileFloor)
			default:
				f, ok := entity.FactionForSymbol(r)
				if !ok {
					t.Fatalf("unknown map symbol %q", r)
				}
				g.Set(p, world.TileFloor)
				spawns = append(spawns, spawn{f, p})
			}
		}
	}

	roster := entity.NewRoster(g)
	for _, s := range spawns {
		if _, err := roster.Spawn(s.f, s.pos, 200, 3); err != nil {
			t.Fatalf("spawn: %v", err)
		}
	}
	return g, roster
}

func at(x, y int) world.Pos {
	return world.Pos{X: x, Y: y}
}
