// Package mapfile reads battle maps: rectangular rows of '#' walls, '.' floor
// and unit symbols.
package mapfile

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/samdwyer/skirmish/internal/world"
)

var (
	// ErrEmptyMap is returned for input without any rows.
	ErrEmptyMap = errors.New("map has no rows")
	// ErrNotRectangular is returned when rows differ in length.
	ErrNotRectangular = errors.New("map is not rectangular")
)

// document is the parsed form of a map file: non-blank lines separated by
// one or more line breaks.
type document struct {
	Rows []*row `EOL* ( @@ EOL* )*`
}

type row struct {
	Pos   lexer.Position
	Cells string `@Cells`
}

var mapLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "EOL", Pattern: `\r?\n`},
	{Name: "Cells", Pattern: `[^\r\n]+`},
})

var parser = participle.MustBuild[document](
	participle.Lexer(mapLexer),
)

// Spawn is a unit symbol found on the map.
type Spawn struct {
	Pos    world.Pos
	Symbol rune
}

// Layout is a validated rectangular map.
type Layout struct {
	Rows []string
}

// Parse reads a map from text. Trailing whitespace and blank lines are ignored.
func Parse(src string) (*Layout, error) {
	doc, err := parser.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("parse map: %w", err)
	}

	rows := make([]string, 0, len(doc.Rows))
	lines := make([]int, 0, len(doc.Rows))
	for _, r := range doc.Rows {
		cells := strings.TrimRightFunc(r.Cells, unicode.IsSpace)
		if cells == "" {
			continue
		}
		rows = append(rows, cells)
		lines = append(lines, r.Pos.Line)
	}

	if len(rows) == 0 {
		return nil, ErrEmptyMap
	}
	width := len([]rune(rows[0]))
	for i, r := range rows {
		if n := len([]rune(r)); n != width {
			return nil, fmt.Errorf("line %d has %d cells, want %d: %w", lines[i], n, width, ErrNotRectangular)
		}
	}

	return &Layout{Rows: rows}, nil
}

// ParseRows builds a layout from pre-split rows.
func ParseRows(rows []string) (*Layout, error) {
	return Parse(strings.Join(rows, "\n"))
}

// Load reads a map file from disk.
func Load(path string) (*Layout, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map %s: %w", path, err)
	}
	layout, err := Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return layout, nil
}

// Width returns the number of columns.
func (l *Layout) Width() int {
	return len([]rune(l.Rows[0]))
}

// Height returns the number of rows.
func (l *Layout) Height() int {
	return len(l.Rows)
}

// Terrain builds the static grid and lists every non-terrain symbol. Unit
// symbols stand on floor. Interpreting the symbols is left to the caller.
func (l *Layout) Terrain() (*world.Grid, []Spawn) {
	g := world.NewGrid(l.Width(), l.Height())
	var spawns []Spawn
	for y, r := range l.Rows {
		for x, c := range []rune(r) {
			p := world.Pos{X: x, Y: y}
			switch world.Tile(c) {
			case world.TileWall:
			case world.TileFloor:
				g.Set(p, world.TileFloor)
			default:
				g.Set(p, world.TileFloor)
				spawns = append(spawns, Spawn{Pos: p, Symbol: c})
			}
		}
	}
	return g, spawns
}

func (l *Layout) String() string {
	return strings.Join(l.Rows, "\n")
}
