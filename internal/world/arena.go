package world

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/skirmish/internal/telemetry"
)

const (
	// Default arena dimensions
	DefaultWidth  = 32
	DefaultHeight = 24

	// MinArenaSize is the smallest width or height Generate accepts.
	MinArenaSize = minLeafSize + 2

	// BSP parameters
	minRoomSize = 3 // Minimum room dimension
	maxRoomSize = 8 // Maximum room dimension
	minLeafSize = 6 // Minimum BSP leaf size before stopping split
)

// Arena is a randomly generated battle map: rooms joined by corridors,
// enclosed by a wall border.
type Arena struct {
	Grid  *Grid
	Rooms []Room
	rng   *rand.Rand
}

// NewArena creates an arena filled with walls. Dimensions below MinArenaSize
// are raised to it.
func NewArena(width, height int, rng *rand.Rand) *Arena {
	width = max(width, MinArenaSize)
	height = max(height, MinArenaSize)
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Arena{
		Grid:  NewGrid(width, height),
		Rooms: make([]Room, 0),
		rng:   rng,
	}
}

// Generate carves the arena layout using binary space partitioning.
func (a *Arena) Generate(ctx context.Context) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "arena.generate")
	defer span.End()

	root := &bspNode{
		x:      1,
		y:      1,
		width:  a.Grid.Width - 2,
		height: a.Grid.Height - 2,
	}

	a.splitNode(root)
	a.createRooms(root)
	a.connectRooms(root)

	span.SetAttributes(
		attribute.Int("arena.width", a.Grid.Width),
		attribute.Int("arena.height", a.Grid.Height),
		attribute.Int("arena.room_count", len(a.Rooms)),
		attribute.Int("arena.open_cells", a.Grid.OpenCount()),
	)
}

// RandomPointInRoom returns a random open point within the specified room.
func (a *Arena) RandomPointInRoom(roomIndex int) (Pos, bool) {
	if roomIndex < 0 || roomIndex >= len(a.Rooms) {
		return Pos{}, false
	}
	room := a.Rooms[roomIndex]

	for i := 0; i < 100; i++ {
		p := Pos{X: room.X + a.rng.Intn(room.Width), Y: room.Y + a.rng.Intn(room.Height)}
		if a.Grid.IsOpen(p) {
			return p, true
		}
	}

	return room.Center(), a.Grid.IsOpen(room.Center())
}

// Rng exposes the arena's random source so that population uses the same
// seeded stream as generation.
func (a *Arena) Rng() *rand.Rand {
	return a.rng
}

// Rows renders the terrain as text, overlaying the given unit symbols.
func (a *Arena) Rows(units map[Pos]rune) []string {
	rows := make([]string, a.Grid.Height)
	for y := 0; y < a.Grid.Height; y++ {
		line := make([]rune, a.Grid.Width)
		for x := 0; x < a.Grid.Width; x++ {
			p := Pos{X: x, Y: y}
			if r, ok := units[p]; ok {
				line[x] = r
				continue
			}
			line[x] = a.Grid.Tile(p).Rune()
		}
		rows[y] = string(line)
	}
	return rows
}

// bspNode represents a node in the BSP tree.
type bspNode struct {
	x, y          int
	width, height int
	left, right   *bspNode
	room          *Room
}

func (n *bspNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// splitNode recursively splits a BSP node.
func (a *Arena) splitNode(node *bspNode) {
	if node.width < minLeafSize*2 && node.height < minLeafSize*2 {
		return
	}

	var splitHorizontally bool
	if node.width > node.height && node.width >= minLeafSize*2 {
		splitHorizontally = false
	} else if node.height >= minLeafSize*2 {
		splitHorizontally = true
	} else if node.width >= minLeafSize*2 {
		splitHorizontally = false
	} else {
		return
	}

	var splitPos int
	if splitHorizontally {
		lo, hi := minLeafSize, node.height-minLeafSize
		if hi <= lo {
			return
		}
		splitPos = lo + a.rng.Intn(hi-lo+1)
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: splitPos}
		node.right = &bspNode{x: node.x, y: node.y + splitPos, width: node.width, height: node.height - splitPos}
	} else {
		lo, hi := minLeafSize, node.width-minLeafSize
		if hi <= lo {
			return
		}
		splitPos = lo + a.rng.Intn(hi-lo+1)
		node.left = &bspNode{x: node.x, y: node.y, width: splitPos, height: node.height}
		node.right = &bspNode{x: node.x + splitPos, y: node.y, width: node.width - splitPos, height: node.height}
	}

	a.splitNode(node.left)
	a.splitNode(node.right)
}

// createRooms creates rooms in leaf nodes of the BSP tree.
func (a *Arena) createRooms(node *bspNode) {
	if node == nil {
		return
	}
	if !node.isLeaf() {
		a.createRooms(node.left)
		a.createRooms(node.right)
		return
	}

	roomWidth := minRoomSize + a.rng.Intn(min(maxRoomSize-minRoomSize+1, node.width-minRoomSize+1))
	roomHeight := minRoomSize + a.rng.Intn(min(maxRoomSize-minRoomSize+1, node.height-minRoomSize+1))

	// Leave at least one wall cell on each side of the leaf
	roomWidth = min(roomWidth, node.width-2)
	roomHeight = min(roomHeight, node.height-2)
	if roomWidth < minRoomSize || roomHeight < minRoomSize {
		return
	}

	room := Room{
		X:      node.x + 1 + a.rng.Intn(node.width-roomWidth-1),
		Y:      node.y + 1 + a.rng.Intn(node.height-roomHeight-1),
		Width:  roomWidth,
		Height: roomHeight,
	}
	node.room = &room
	a.Rooms = append(a.Rooms, room)
	a.carveRoom(room)
}

func (a *Arena) carveRoom(room Room) {
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			a.carve(Pos{X: x, Y: y})
		}
	}
}

// connectRooms joins sibling subtrees with corridors.
func (a *Arena) connectRooms(node *bspNode) {
	if node == nil || node.isLeaf() {
		return
	}

	a.connectRooms(node.left)
	a.connectRooms(node.right)

	leftRoom := a.getRoom(node.left)
	rightRoom := a.getRoom(node.right)
	if leftRoom != nil && rightRoom != nil {
		a.carveCorridor(*leftRoom, *rightRoom)
	}
}

// getRoom returns any room from a subtree.
func (a *Arena) getRoom(node *bspNode) *Room {
	if node == nil {
		return nil
	}
	if node.room != nil {
		return node.room
	}
	if room := a.getRoom(node.left); room != nil {
		return room
	}
	return a.getRoom(node.right)
}

func (a *Arena) carveCorridor(room1, room2 Room) {
	c1, c2 := room1.Center(), room2.Center()

	if a.rng.Intn(2) == 0 {
		a.carveHorizontalTunnel(c1.X, c2.X, c1.Y)
		a.carveVerticalTunnel(c1.Y, c2.Y, c2.X)
	} else {
		a.carveVerticalTunnel(c1.Y, c2.Y, c1.X)
		a.carveHorizontalTunnel(c1.X, c2.X, c2.Y)
	}
}

func (a *Arena) carveHorizontalTunnel(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		a.carve(Pos{X: x, Y: y})
	}
}

func (a *Arena) carveVerticalTunnel(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		a.carve(Pos{X: x, Y: y})
	}
}

// carve opens a cell unless it lies on the border.
func (a *Arena) carve(p Pos) {
	if p.X > 0 && p.X < a.Grid.Width-1 && p.Y > 0 && p.Y < a.Grid.Height-1 {
		a.Grid.Set(p, TileFloor)
	}
}
