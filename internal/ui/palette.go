package ui

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/gamedata"
)

var (
	fallbackColor = colorful.Color{R: 1, G: 1, B: 1}
	woundedColor  = colorful.Color{R: 0.25, G: 0.25, B: 0.25}
)

// Palette maps each faction to its display color.
type Palette map[entity.Faction]colorful.Color

// NewPalette reads faction colors from rules. Factions without a valid
// color are drawn white.
func NewPalette(rules *gamedata.Rules) Palette {
	p := make(Palette, len(entity.Factions))
	for _, f := range entity.Factions {
		p[f] = fallbackColor
	}
	for _, def := range rules.Factions {
		f, ok := entity.ParseFaction(def.ID)
		if !ok {
			continue
		}
		if c, err := gamedata.ParseColor(def.Color); err == nil {
			p[f] = c
		}
	}
	return p
}

// Color returns f's color, or white if f has none.
func (p Palette) Color(f entity.Faction) colorful.Color {
	if c, ok := p[f]; ok {
		return c
	}
	return fallbackColor
}

// Shade fades base toward gray as hp drops below maxHP.
func Shade(base colorful.Color, hp, maxHP int) colorful.Color {
	if maxHP <= 0 {
		return base
	}
	frac := min(max(float64(hp)/float64(maxHP), 0), 1)
	return woundedColor.BlendLab(base, frac).Clamped()
}
