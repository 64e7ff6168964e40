package world

import (
	"fmt"
	"slices"
)

// Pos is a grid coordinate. Y grows downwards, so "up" is Y-1.
type Pos struct {
	X, Y int
}

// Directions lists the four step offsets in tie-break order: up, left,
// right, down. For any cell this is also the reading order of its neighbors.
var Directions = [4]Pos{
	{X: 0, Y: -1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
}

// Add returns p offset by d.
func (p Pos) Add(d Pos) Pos {
	return Pos{X: p.X + d.X, Y: p.Y + d.Y}
}

// Neighbors returns the four adjacent positions in up, left, right, down order.
func (p Pos) Neighbors() [4]Pos {
	var out [4]Pos
	for i, d := range Directions {
		out[i] = p.Add(d)
	}
	return out
}

// Adjacent reports whether o is one orthogonal step away from p.
func (p Pos) Adjacent(o Pos) bool {
	dx, dy := p.X-o.X, p.Y-o.Y
	return dx*dx+dy*dy == 1
}

// Compare orders positions in reading order: row first, then column.
func (p Pos) Compare(o Pos) int {
	switch {
	case p.Y < o.Y:
		return -1
	case p.Y > o.Y:
		return 1
	case p.X < o.X:
		return -1
	case p.X > o.X:
		return 1
	}
	return 0
}

// Less reports whether p comes before o in reading order.
func (p Pos) Less(o Pos) bool {
	return p.Compare(o) < 0
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// SortReadingOrder sorts positions in place by row, then column.
func SortReadingOrder(ps []Pos) {
	slices.SortFunc(ps, Pos.Compare)
}
