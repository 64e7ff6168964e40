package world

// Grid is the static terrain of a battle. It is only written while a map is
// being built; simulations treat it as read-only.
type Grid struct {
	Width  int
	Height int
	Tiles  [][]Tile
}

// NewGrid creates a grid filled with walls.
func NewGrid(width, height int) *Grid {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = TileWall
		}
	}
	return &Grid{
		Width:  width,
		Height: height,
		Tiles:  tiles,
	}
}

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Pos) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// IsOpen returns true iff p is in bounds and not a wall.
func (g *Grid) IsOpen(p Pos) bool {
	if !g.InBounds(p) {
		return false
	}
	return g.Tiles[p.Y][p.X].IsPassable()
}

// Tile returns the tile at p. Out-of-bounds positions read as walls.
func (g *Grid) Tile(p Pos) Tile {
	if !g.InBounds(p) {
		return TileWall
	}
	return g.Tiles[p.Y][p.X]
}

// Set replaces the tile at p. Out-of-bounds writes are ignored.
func (g *Grid) Set(p Pos, t Tile) {
	if g.InBounds(p) {
		g.Tiles[p.Y][p.X] = t
	}
}

// Neighbors returns the up, left, right and down positions of p. Callers
// filter them by IsOpen and by occupancy.
func (g *Grid) Neighbors(p Pos) [4]Pos {
	return p.Neighbors()
}

// Size returns the number of cells in the grid.
func (g *Grid) Size() int {
	return g.Width * g.Height
}

// Index maps an in-bounds position to a dense row-major index.
func (g *Grid) Index(p Pos) int {
	return p.Y*g.Width + p.X
}

// PosAt is the inverse of Index.
func (g *Grid) PosAt(i int) Pos {
	return Pos{X: i % g.Width, Y: i / g.Width}
}

// OpenCount returns the number of open cells.
func (g *Grid) OpenCount() int {
	n := 0
	for y := range g.Tiles {
		for _, t := range g.Tiles[y] {
			if t.IsPassable() {
				n++
			}
		}
	}
	return n
}
