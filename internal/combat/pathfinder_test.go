package combat

import (
	"testing"

	"github.com/samdwyer/skirmish/internal/world"
)

func TestChooseTargetNearestThenReadingOrder(t *testing.T) {
	g, units := newBoard(t,
		"#######",
		"#E..G.#",
		"#...#.#",
		"#.G.#G#",
		"#######",
	)
	pf := NewPathfinder(g, units)
	elf := units.UnitAt(at(1, 1))

	target, dist, ok := pf.ChooseTarget(elf)
	if !ok {
		t.Fatal("ChooseTarget() found nothing")
	}
	// (3,1), (2,2) and (1,3) are all two steps away; (3,1) reads first.
	if target != at(3, 1) || dist != 2 {
		t.Errorf("ChooseTarget() = %v at %d, want (3,1) at 2", target, dist)
	}

	step, err := pf.NextStep(elf)
	if err != nil {
		t.Fatalf("NextStep() error = %v", err)
	}
	if !step.Moved || step.To != at(2, 1) {
		t.Errorf("NextStep() = %+v, want a move to (2,1)", step)
	}
}

func TestNextStepPrefersEarlierDirectionOnTie(t *testing.T) {
	g, units := newBoard(t,
		"#######",
		"#.E...#",
		"#.....#",
		"#...G.#",
		"#######",
	)
	pf := NewPathfinder(g, units)
	elf := units.UnitAt(at(2, 1))

	target, dist, _ := pf.ChooseTarget(elf)
	// (4,2) and (3,3) are both three steps away; (4,2) is on the earlier row.
	if target != at(4, 2) || dist != 3 {
		t.Fatalf("ChooseTarget() = %v at %d, want (4,2) at 3", target, dist)
	}

	// Right and down both lead to (4,2) in two steps; right comes first.
	step, err := pf.NextStep(elf)
	if err != nil {
		t.Fatalf("NextStep() error = %v", err)
	}
	if step.To != at(3, 1) {
		t.Errorf("NextStep().To = %v, want (3,1)", step.To)
	}
}

func TestNextStepUpBeatsLeft(t *testing.T) {
	g, units := newBoard(t,
		"#######",
		"#G....#",
		"#.....#",
		"#..E..#",
		"#.....#",
		"#######",
	)
	pf := NewPathfinder(g, units)
	elf := units.UnitAt(at(3, 3))

	target, _, _ := pf.ChooseTarget(elf)
	if target != at(2, 1) {
		t.Fatalf("ChooseTarget() = %v, want (2,1)", target)
	}

	step, err := pf.NextStep(elf)
	if err != nil {
		t.Fatalf("NextStep() error = %v", err)
	}
	if step.To != at(3, 2) {
		t.Errorf("NextStep().To = %v, want up to (3,2)", step.To)
	}
}

func TestNextStepMirrorTargets(t *testing.T) {
	// Two goblins equally far to the left and right of the elf; the target
	// square on the left reads first.
	g, units := newBoard(t,
		"#########",
		"#G.....G#",
		"#...E...#",
		"#########",
	)
	pf := NewPathfinder(g, units)
	elf := units.UnitAt(at(4, 2))

	target, _, _ := pf.ChooseTarget(elf)
	if target != at(2, 1) {
		t.Fatalf("ChooseTarget() = %v, want (2,1)", target)
	}
	step, _ := pf.NextStep(elf)
	if step.To != at(4, 1) {
		t.Errorf("NextStep().To = %v, want up to (4,1)", step.To)
	}
}

func TestNextStepAdjacentStays(t *testing.T) {
	g, units := newBoard(t,
		"#####",
		"#GE.#",
		"#####",
	)
	pf := NewPathfinder(g, units)
	goblin := units.UnitAt(at(1, 1))

	if !pf.EnemyAdjacent(goblin) {
		t.Fatal("EnemyAdjacent() = false, want true")
	}
	step, err := pf.NextStep(goblin)
	if err != nil || step.Moved {
		t.Errorf("NextStep() = %+v, %v; want no move", step, err)
	}
}

func TestNextStepUnreachableStays(t *testing.T) {
	g, units := newBoard(t,
		"#######",
		"#G.#.E#",
		"#######",
	)
	pf := NewPathfinder(g, units)
	goblin := units.UnitAt(at(1, 1))

	if _, _, ok := pf.ChooseTarget(goblin); ok {
		t.Error("ChooseTarget() should find nothing behind a wall")
	}
	step, err := pf.NextStep(goblin)
	if err != nil || step.Moved {
		t.Errorf("NextStep() = %+v, %v; want no move", step, err)
	}
}

func TestNextStepBlockedByAlly(t *testing.T) {
	// The only corridor is held by another goblin.
	g, units := newBoard(t,
		"#######",
		"#GG..E#",
		"#######",
	)
	pf := NewPathfinder(g, units)

	rear := units.UnitAt(at(1, 1))
	step, err := pf.NextStep(rear)
	if err != nil || step.Moved {
		t.Errorf("rear NextStep() = %+v, %v; want no move", step, err)
	}

	front := units.UnitAt(at(2, 1))
	step, err = pf.Advance(front)
	if err != nil || step.To != at(3, 1) {
		t.Fatalf("front Advance() = %+v, %v; want move to (3,1)", step, err)
	}
	if units.UnitAt(at(3, 1)) != front || front.Pos != at(3, 1) {
		t.Error("Advance() should apply the move to the roster")
	}

	// The front goblin still blocks the corridor.
	if _, _, ok := pf.ChooseTarget(rear); ok {
		t.Error("rear ChooseTarget() should find nothing past its ally")
	}
}

func TestDistanceIgnoresOwnCell(t *testing.T) {
	g, units := newBoard(t,
		"######",
		"#E...#",
		"#.##.#",
		"#...G#",
		"######",
	)
	pf := NewPathfinder(g, units)
	elf := units.UnitAt(at(1, 1))

	tests := []struct {
		p    world.Pos
		want int
	}{
		{at(1, 1), 0},
		{at(4, 1), 3},
		{at(3, 3), 4},
		{at(4, 3), -1}, // held by the goblin
		{at(2, 2), -1}, // wall
	}
	for _, tt := range tests {
		if got := pf.Distance(elf, tt.p); got != tt.want {
			t.Errorf("Distance(%v) = %d, want %d", tt.p, got, tt.want)
		}
	}
}

func TestPathfinderMovementSequence(t *testing.T) {
	// Several turns of the classic movement example: every unit in reading
	// order takes one step until they cluster around the elf.
	g, units := newBoard(t,
		"#########",
		"#G..G..G#",
		"#.......#",
		"#.......#",
		"#G..E..G#",
		"#.......#",
		"#.......#",
		"#G..G..G#",
		"#########",
	)
	pf := NewPathfinder(g, units)

	for round := 0; round < 3; round++ {
		for _, u := range units.ReadingOrder() {
			if _, err := pf.Advance(u); err != nil {
				t.Fatalf("round %d: Advance(%v) error = %v", round, u, err)
			}
		}
	}

	want := []world.Pos{
		at(3, 2), at(4, 2), at(5, 2),
		at(3, 3), at(4, 3), at(5, 3),
		at(1, 4), at(4, 4), at(7, 5),
	}
	got := units.ReadingOrder()
	if len(got) != len(want) {
		t.Fatalf("got %d units, want %d", len(got), len(want))
	}
	for i, u := range got {
		if u.Pos != want[i] {
			t.Errorf("unit %d at %v, want %v", i, u.Pos, want[i])
		}
	}
}

// countingTerrain records neighbor lookups made through the terrain.
type countingTerrain struct {
	*world.Grid
	neighbors int
}

func (c *countingTerrain) Neighbors(p world.Pos) [4]world.Pos {
	c.neighbors++
	return c.Grid.Neighbors(p)
}

func TestPathfinderUsesTerrainNeighbors(t *testing.T) {
	g, units := newBoard(t,
		"#######",
		"#E..G.#",
		"#...#.#",
		"#.G.#G#",
		"#######",
	)
	terrain := &countingTerrain{Grid: g}
	pf := NewPathfinder(terrain, units)
	elf := units.UnitAt(at(1, 1))

	step, err := pf.NextStep(elf)
	if err != nil {
		t.Fatalf("NextStep() error = %v", err)
	}
	if step.To != at(2, 1) {
		t.Errorf("NextStep().To = %v, want (2,1)", step.To)
	}
	if terrain.neighbors == 0 {
		t.Error("NextStep() never asked the terrain for neighbors")
	}
}
