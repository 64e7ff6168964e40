package game

import (
	"fmt"

	"github.com/samdwyer/skirmish/internal/entity"
)

// Outcome is the result of a finished battle.
type Outcome struct {
	Rounds    int            // fully completed rounds
	HitPoints int            // summed hit points of the survivors
	Winner    entity.Faction // FactionNone if the battle was aborted
	Losses    map[entity.Faction]int
	Aborted   bool // stopped early by Config.StopOnLoss
}

// Score returns completed rounds times remaining hit points.
func (o Outcome) Score() int {
	return o.Rounds * o.HitPoints
}

func (o Outcome) String() string {
	return fmt.Sprintf("Outcome: %d * %d = %d", o.Rounds, o.HitPoints, o.Score())
}
