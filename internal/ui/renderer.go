package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/gamedata"
	"github.com/samdwyer/skirmish/internal/world"
)

// Renderer handles drawing a battle to the screen.
type Renderer struct {
	screen  *Screen
	palette Palette
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, palette Palette) *Renderer {
	return &Renderer{screen: screen, palette: palette}
}

// Render draws the terrain, the living units and a status line below the map.
func (r *Renderer) Render(grid *world.Grid, units *entity.Roster, status string) {
	r.screen.Clear()

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			tile := grid.Tile(world.Pos{X: x, Y: y})
			r.screen.SetContent(x, y, tile.Rune(), r.getTileStyle(tile))
		}
	}

	// Units on top
	for _, u := range units.LivingUnits() {
		r.screen.SetContent(u.Pos.X, u.Pos.Y, u.Faction.Symbol(), r.UnitStyle(u))
	}

	r.RenderMessage(status, grid.Height+1)
	r.screen.Show()
}

// UnitStyle returns the style of u: its faction color, dimmed by wounds.
func (r *Renderer) UnitStyle(u *entity.Unit) tcell.Style {
	c := Shade(r.palette.Color(u.Faction), u.HP, u.MaxHP)
	return tcell.StyleDefault.Foreground(gamedata.TCell(c)).Bold(true)
}

// getTileStyle returns the appropriate style for a tile type.
func (r *Renderer) getTileStyle(tile world.Tile) tcell.Style {
	switch tile {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.TileFloor:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	default:
		return tcell.StyleDefault
	}
}

// RenderMessage writes msg on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range []rune(msg) {
		r.screen.SetContent(i, y, ch, style)
	}
}
