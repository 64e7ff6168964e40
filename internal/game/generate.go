package game

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/gamedata"
	"github.com/samdwyer/skirmish/internal/mapfile"
	"github.com/samdwyer/skirmish/internal/world"
)

const maxPlacementAttempts = 50

// GenerateLayout builds a random arena and places count units in its rooms.
// The first two units are one goblin and one elf; the rest are drawn by the
// rules' spawn weights. The same seed always yields the same layout.
func GenerateLayout(ctx context.Context, seed int64, rules *gamedata.Rules, width, height, count int) (*mapfile.Layout, error) {
	if count < len(entity.Factions) {
		return nil, fmt.Errorf("need at least %d units, got %d: %w", len(entity.Factions), count, ErrInvalidConfig)
	}

	arena := world.NewArena(width, height, rand.New(rand.NewSource(seed)))
	arena.Generate(ctx)
	if len(arena.Rooms) == 0 {
		return nil, fmt.Errorf("arena %dx%d has no rooms: %w", width, height, ErrInvalidConfig)
	}
	rng := arena.Rng()
	registry := gamedata.NewFactionRegistry(rules.Factions)

	placed := make(map[world.Pos]rune, count)
	for i := 0; i < count; i++ {
		var f entity.Faction
		if i < len(entity.Factions) {
			f = entity.Factions[i]
		} else {
			def := registry.SpawnRandom(rng)
			if def == nil {
				return nil, fmt.Errorf("rules have no spawn weights: %w", ErrInvalidConfig)
			}
			var ok bool
			if f, ok = entity.ParseFaction(def.ID); !ok {
				return nil, fmt.Errorf("rules faction %q: %w", def.ID, ErrInvalidConfig)
			}
		}

		for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
			p, ok := arena.RandomPointInRoom(rng.Intn(len(arena.Rooms)))
			if !ok {
				continue
			}
			if _, taken := placed[p]; taken {
				continue
			}
			placed[p] = f.Symbol()
			break
		}
	}

	return mapfile.ParseRows(arena.Rows(placed))
}
