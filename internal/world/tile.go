// Package world provides the battle grid, positions and arena generation.
package world

// Tile represents a single terrain cell. Units are not tiles; they live in
// the occupancy overlay kept by the entity roster.
type Tile rune

const (
	// TileWall represents an impassable wall tile.
	TileWall Tile = '#'
	// TileFloor represents an open floor tile.
	TileFloor Tile = '.'
)

// IsPassable returns true if the tile can be stood on.
func (t Tile) IsPassable() bool {
	return t == TileFloor
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}
