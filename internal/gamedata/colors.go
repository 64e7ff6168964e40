package gamedata

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor parses a six-digit hex color ("#FF0000" or "FF0000").
func ParseColor(hex string) (colorful.Color, error) {
	hex = "#" + strings.TrimPrefix(hex, "#")
	if len(hex) != 7 {
		return colorful.Color{}, fmt.Errorf("invalid hex color length: %s", hex)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}
	return c, nil
}

// ParseHexColor converts a hex color string to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	c, err := ParseColor(hex)
	if err != nil {
		return tcell.ColorDefault, err
	}
	return TCell(c), nil
}

// TCell converts a colorful.Color to the nearest tcell RGB color.
func TCell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
