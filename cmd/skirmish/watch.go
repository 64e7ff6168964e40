package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/game"
	"github.com/samdwyer/skirmish/internal/gamedata"
	"github.com/samdwyer/skirmish/internal/ui"
)

var errQuit = errors.New("quit before the battle ended")

// watch plays sim one round per tick on the terminal. Once the battle is
// over the final state stays up until the user quits.
func watch(ctx context.Context, sim *game.Simulation, rules *gamedata.Rules, delay time.Duration) (game.Outcome, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return game.Outcome{}, fmt.Errorf("open screen: %w", err)
	}
	defer screen.Close()

	renderer := ui.NewRenderer(screen, ui.NewPalette(rules))
	quit := make(chan struct{})
	go pollQuit(screen, quit)

	ticker := time.NewTicker(max(delay, time.Millisecond))
	defer ticker.Stop()

	for {
		renderer.Render(sim.Grid(), sim.Roster(), status(sim, "q to quit"))

		select {
		case <-quit:
			return game.Outcome{}, errQuit
		case <-ctx.Done():
			return game.Outcome{}, ctx.Err()
		case <-ticker.C:
		}

		over, err := sim.PlayRound(ctx)
		if err != nil {
			return game.Outcome{}, err
		}
		if over {
			break
		}
	}

	out := sim.Outcome()
	renderer.Render(sim.Grid(), sim.Roster(), status(sim, fmt.Sprintf("%s wins, q to exit", out.Winner)))
	select {
	case <-quit:
	case <-ctx.Done():
	}
	return out, nil
}

// pollQuit closes quit when the user presses q, Escape or Ctrl-C.
func pollQuit(screen *ui.Screen, quit chan<- struct{}) {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				close(quit)
				return
			}
		}
	}
}

func status(sim *game.Simulation, hint string) string {
	units := sim.Roster()
	return fmt.Sprintf("Round %d  goblins %d  elves %d  (%s)",
		sim.CompletedRounds(),
		units.AliveCount(entity.FactionGoblin),
		units.AliveCount(entity.FactionElf),
		hint,
	)
}
