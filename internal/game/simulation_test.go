package game

import (
	"context"
	"errors"
	"testing"

	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/mapfile"
)

func TestScenarioOutcomes(t *testing.T) {
	for _, s := range scenarios(t) {
		t.Run(s.ID, func(t *testing.T) {
			sim := mustSimulation(t, scenarioLayout(t, s), DefaultConfig())
			out, err := sim.Run(context.Background())
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			if out.Rounds != s.Rounds {
				t.Errorf("Rounds = %d, want %d", out.Rounds, s.Rounds)
			}
			if out.HitPoints != s.HitPoints {
				t.Errorf("HitPoints = %d, want %d", out.HitPoints, s.HitPoints)
			}
			if out.Score() != s.Outcome {
				t.Errorf("Score() = %d, want %d", out.Score(), s.Outcome)
			}
			if out.Winner.String() != s.Winner {
				t.Errorf("Winner = %v, want %s", out.Winner, s.Winner)
			}
			if out.Aborted {
				t.Error("Aborted = true without StopOnLoss")
			}
			if sim.Phase() != PhaseCombatOver {
				t.Errorf("Phase() = %v, want combat_over", sim.Phase())
			}
		})
	}
}

func TestOutcomeString(t *testing.T) {
	out := Outcome{Rounds: 47, HitPoints: 590}
	if got, want := out.String(), "Outcome: 47 * 590 = 27730"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPlayRoundRender(t *testing.T) {
	sim := mustSimulation(t, mustLayout(t,
		"#######",
		"#.G...#",
		"#...EG#",
		"#.#.#G#",
		"#..G#E#",
		"#.....#",
		"#######",
	), DefaultConfig())
	ctx := context.Background()

	rounds := []string{
		"#######\n" +
			"#..G..#   G(200)\n" +
			"#...EG#   E(197), G(197)\n" +
			"#.#G#G#   G(200), G(197)\n" +
			"#...#E#   E(197)\n" +
			"#.....#\n" +
			"#######\n",
		"#######\n" +
			"#...G.#   G(200)\n" +
			"#..GEG#   G(200), E(188), G(194)\n" +
			"#.#.#G#   G(194)\n" +
			"#...#E#   E(194)\n" +
			"#.....#\n" +
			"#######\n",
	}

	for i, want := range rounds {
		over, err := sim.PlayRound(ctx)
		if err != nil {
			t.Fatalf("round %d: PlayRound() error = %v", i+1, err)
		}
		if over {
			t.Fatalf("round %d: PlayRound() reported the battle over", i+1)
		}
		if sim.CompletedRounds() != i+1 {
			t.Errorf("CompletedRounds() = %d, want %d", sim.CompletedRounds(), i+1)
		}
		if got := sim.Render(); got != want {
			t.Errorf("after round %d:\n%s\nwant:\n%s", i+1, got, want)
		}
	}
}

func TestStepPhases(t *testing.T) {
	sim := mustSimulation(t, mustLayout(t,
		"####",
		"#GE#",
		"####",
	), Config{HitPoints: 3, AttackPower: DefaultConfig().AttackPower})
	ctx := context.Background()

	if sim.Phase() != PhaseRoundStart {
		t.Fatalf("initial Phase() = %v, want round_start", sim.Phase())
	}

	want := []Phase{
		PhaseUnitTurn,   // round 1 begins
		PhaseUnitTurn,   // goblin kills the elf
		PhaseUnitTurn,   // dead elf skipped
		PhaseRoundEnd,   // order exhausted
		PhaseRoundStart, // round 1 counted
		PhaseUnitTurn,   // round 2 begins
		PhaseCombatOver, // goblin finds no elves
	}
	for i, phase := range want {
		if err := sim.Step(ctx); err != nil {
			t.Fatalf("step %d: Step() error = %v", i, err)
		}
		if sim.Phase() != phase {
			t.Fatalf("step %d: Phase() = %v, want %v", i, sim.Phase(), phase)
		}
	}

	// Further steps are no-ops.
	if err := sim.Step(ctx); err != nil || sim.Phase() != PhaseCombatOver {
		t.Errorf("Step() after combat over = %v in %v", err, sim.Phase())
	}
	out := sim.Outcome()
	if out.Rounds != 1 || out.HitPoints != 3 || out.Score() != 3 {
		t.Errorf("Outcome() = %+v, want 1 round with 3 hit points", out)
	}
	if out.Winner != entity.FactionGoblin || out.Losses[entity.FactionElf] != 1 {
		t.Errorf("Outcome() = %+v, want a goblin win with one elf lost", out)
	}
}

func TestIncompleteRoundNotCounted(t *testing.T) {
	// The first goblin kills the elf; the second goblin's turn then finds
	// no enemies, so the round never completes.
	sim := mustSimulation(t, mustLayout(t,
		"#####",
		"#GEG#",
		"#####",
	), Config{HitPoints: 3, AttackPower: DefaultConfig().AttackPower})

	out, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.Rounds != 0 {
		t.Errorf("Rounds = %d, want 0", out.Rounds)
	}
	if out.HitPoints != 6 || out.Score() != 0 {
		t.Errorf("Outcome() = %+v, want 6 hit points and score 0", out)
	}
}

func TestPlayRoundAfterCombatOver(t *testing.T) {
	sim := mustSimulation(t, mustLayout(t,
		"####",
		"#GE#",
		"####",
	), Config{HitPoints: 3, AttackPower: DefaultConfig().AttackPower})
	ctx := context.Background()

	if _, err := sim.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	over, err := sim.PlayRound(ctx)
	if !over || err != nil {
		t.Errorf("PlayRound() = %v, %v; want true, nil", over, err)
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		cfg  Config
		want error
	}{
		{"unknown symbol", []string{"#####", "#GXE#", "#####"}, DefaultConfig(), ErrUnknownSymbol},
		{"no elves", []string{"#####", "#G.G#", "#####"}, DefaultConfig(), ErrMissingFaction},
		{"no goblins", []string{"####", "#E.#", "####"}, DefaultConfig(), ErrMissingFaction},
		{"bad config", []string{"####", "#GE#", "####"}, Config{HitPoints: 0}, ErrInvalidConfig},
	}

	for _, tt := range tests {
		_, err := New(mustLayout(t, tt.rows...), tt.cfg)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: New() error = %v, want %v", tt.name, err, tt.want)
		}
	}

	if _, err := mapfile.ParseRows([]string{"#####", "#GE#"}); !errors.Is(err, mapfile.ErrNotRectangular) {
		t.Errorf("ParseRows(ragged) error = %v, want ErrNotRectangular", err)
	}
}

func TestStalemate(t *testing.T) {
	sim := mustSimulation(t, mustLayout(t,
		"#######",
		"#G.#.E#",
		"#######",
	), DefaultConfig())

	_, err := sim.Run(context.Background())
	if !errors.Is(err, ErrStalemate) {
		t.Fatalf("Run() error = %v, want ErrStalemate", err)
	}
	if sim.Phase() != PhaseCombatOver {
		t.Errorf("Phase() = %v, want combat_over", sim.Phase())
	}
	if !errors.Is(sim.Err(), ErrStalemate) {
		t.Errorf("Err() = %v, want ErrStalemate", sim.Err())
	}
	if err := sim.Step(context.Background()); !errors.Is(err, ErrStalemate) {
		t.Errorf("Step() after stalemate = %v, want ErrStalemate", err)
	}
}

func TestStopOnLoss(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StopOnLoss = entity.FactionElf

	s := scenarios(t)[0]
	sim := mustSimulation(t, scenarioLayout(t, s), cfg)
	out, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !out.Aborted {
		t.Fatal("Aborted = false, want true")
	}
	if out.Winner != entity.FactionNone {
		t.Errorf("Winner = %v, want none", out.Winner)
	}
	if out.Losses[entity.FactionElf] != 1 {
		t.Errorf("elf losses = %d, want 1", out.Losses[entity.FactionElf])
	}
}

func TestEventsAndConservation(t *testing.T) {
	for _, s := range scenarios(t) {
		t.Run(s.ID, func(t *testing.T) {
			rec := &recorder{}
			cfg := DefaultConfig()
			cfg.Observer = rec.observe
			sim := mustSimulation(t, scenarioLayout(t, s), cfg)

			initial := 0
			for _, u := range sim.Roster().Units() {
				initial += u.HP
			}
			if _, err := sim.Run(context.Background()); err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			dealt := 0
			dead := make(map[int]bool)
			for _, ev := range rec.events {
				if dead[ev.Unit] {
					t.Errorf("%v by dead unit %d", ev.Kind, ev.Unit)
				}
				switch ev.Kind {
				case EventAttack:
					dealt += ev.Damage
					if dead[ev.Target] {
						t.Errorf("attack on dead unit %d", ev.Target)
					}
				case EventDeath:
					dead[ev.Target] = true
				}
			}

			remaining := 0
			for _, u := range sim.Roster().Units() {
				remaining += u.HP
				if !u.IsAlive() && !dead[u.ID] {
					t.Errorf("unit %d died without a death event", u.ID)
				}
			}
			if dealt != sim.DamageDealt() {
				t.Errorf("attack events sum to %d, DamageDealt() = %d", dealt, sim.DamageDealt())
			}
			if initial-remaining != dealt {
				t.Errorf("hit points lost = %d, damage dealt = %d", initial-remaining, dealt)
			}
		})
	}
}

func TestDeterministic(t *testing.T) {
	for _, s := range scenarios(t) {
		run := func() (uint64, []Event) {
			rec := &recorder{}
			cfg := DefaultConfig()
			cfg.Observer = rec.observe
			sim := mustSimulation(t, scenarioLayout(t, s), cfg)
			if _, err := sim.Run(context.Background()); err != nil {
				t.Fatalf("%s: Run() error = %v", s.ID, err)
			}
			return sim.Fingerprint(), rec.events
		}

		fp1, ev1 := run()
		fp2, ev2 := run()
		if fp1 != fp2 {
			t.Errorf("%s: fingerprints differ: %x vs %x", s.ID, fp1, fp2)
		}
		if len(ev1) != len(ev2) {
			t.Fatalf("%s: %d events vs %d", s.ID, len(ev1), len(ev2))
		}
		for i := range ev1 {
			if ev1[i] != ev2[i] {
				t.Errorf("%s: event %d differs: %+v vs %+v", s.ID, i, ev1[i], ev2[i])
				break
			}
		}
	}
}

func TestSimulationsAreIndependent(t *testing.T) {
	s := scenarios(t)[0]
	layout := scenarioLayout(t, s)
	a := mustSimulation(t, layout, DefaultConfig())
	b := mustSimulation(t, layout, DefaultConfig())

	if a.ID() == b.ID() {
		t.Error("two simulations share an id")
	}
	before := b.Roster().TotalHP()
	if before != 6*200 {
		t.Fatalf("TotalHP() = %d, want %d", before, 6*200)
	}
	if _, err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if b.Phase() != PhaseRoundStart || b.Roster().TotalHP() != before {
		t.Error("running one simulation changed another")
	}
}
