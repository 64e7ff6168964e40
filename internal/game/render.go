package game

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/samdwyer/skirmish/internal/world"
)

// Render draws the battle as text: one line per grid row, followed by the
// hit points of the units on that row in reading order.
//
//	#######
//	#.G...#   G(200)
//	#...EG#   E(197), G(194)
func (s *Simulation) Render() string {
	var b strings.Builder
	for y := 0; y < s.grid.Height; y++ {
		var hp []string
		for x := 0; x < s.grid.Width; x++ {
			p := world.Pos{X: x, Y: y}
			if u := s.units.UnitAt(p); u != nil {
				b.WriteRune(u.Faction.Symbol())
				hp = append(hp, fmt.Sprintf("%c(%d)", u.Faction.Symbol(), u.HP))
				continue
			}
			b.WriteRune(s.grid.Tile(p).Rune())
		}
		if len(hp) > 0 {
			b.WriteString("   ")
			b.WriteString(strings.Join(hp, ", "))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Fingerprint hashes the completed round count and the rendered state.
// Equal fingerprints mean equal positions and hit points.
func (s *Simulation) Fingerprint() uint64 {
	d := xxhash.New()
	fmt.Fprintf(d, "%d\n", s.rounds)
	d.WriteString(s.Render())
	return d.Sum64()
}
