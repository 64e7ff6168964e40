package game

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/samdwyer/skirmish/internal/combat"
	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/mapfile"
	"github.com/samdwyer/skirmish/internal/telemetry"
	"github.com/samdwyer/skirmish/internal/world"
)

// roundStats counts what happened during the round in progress.
type roundStats struct {
	moves   int
	attacks int
	deaths  int
}

// Simulation owns all state of one battle: terrain, units, the turn order
// and the round counter. Independent simulations share nothing.
type Simulation struct {
	id       uuid.UUID
	cfg      Config
	grid     *world.Grid
	units    *entity.Roster
	paths    *combat.Pathfinder
	resolver *combat.Resolver
	logger   *zap.Logger
	tracer   trace.Tracer

	phase   Phase
	rounds  int
	order   []*entity.Unit
	cursor  int
	stats   roundStats
	damage  int
	aborted bool
	err     error

	roundSpan trace.Span
}

// New sets up a battle from a map layout. Unit symbols are 'G' and 'E';
// a map without units of both factions is rejected.
func New(layout *mapfile.Layout, cfg Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	grid, spawns := layout.Terrain()
	units := entity.NewRoster(grid)
	for _, sp := range spawns {
		f, ok := entity.FactionForSymbol(sp.Symbol)
		if !ok {
			return nil, fmt.Errorf("%q at %v: %w", sp.Symbol, sp.Pos, ErrUnknownSymbol)
		}
		if _, err := units.Spawn(f, sp.Pos, cfg.HitPoints, cfg.AttackPower[f]); err != nil {
			return nil, err
		}
	}
	for _, f := range entity.Factions {
		if !units.FactionAlive(f) {
			return nil, fmt.Errorf("%s: %w", f, ErrMissingFaction)
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.New()

	return &Simulation{
		id:       id,
		cfg:      cfg,
		grid:     grid,
		units:    units,
		paths:    combat.NewPathfinder(grid, units),
		resolver: combat.NewResolver(units),
		logger:   logger.With(zap.String("run", id.String())),
		tracer:   telemetry.Tracer("battle"),
		phase:    PhaseRoundStart,
	}, nil
}

// ID identifies this run in logs and traces.
func (s *Simulation) ID() uuid.UUID { return s.id }

// Phase returns the current state.
func (s *Simulation) Phase() Phase { return s.phase }

// CompletedRounds returns the number of fully completed rounds.
func (s *Simulation) CompletedRounds() int { return s.rounds }

// Grid returns the battle terrain.
func (s *Simulation) Grid() *world.Grid { return s.grid }

// Roster returns the unit table. Callers must not mutate it mid-run.
func (s *Simulation) Roster() *entity.Roster { return s.units }

// DamageDealt returns the total damage applied by all attacks so far.
func (s *Simulation) DamageDealt() int { return s.damage }

// Err returns the fault that aborted the battle, if any.
func (s *Simulation) Err() error { return s.err }

// Step performs exactly one state transition.
func (s *Simulation) Step(ctx context.Context) error {
	switch s.phase {
	case PhaseRoundStart:
		s.startRound(ctx)

	case PhaseUnitTurn:
		if s.cursor >= len(s.order) {
			s.phase = PhaseRoundEnd
			return nil
		}
		u := s.order[s.cursor]
		if !u.IsAlive() {
			s.cursor++
			return nil
		}
		if !s.bothAlive() {
			s.finish()
			return nil
		}
		if err := s.takeTurn(u); err != nil {
			s.fail(err)
			return err
		}
		s.cursor++
		if s.aborted {
			s.finish()
		}

	case PhaseRoundEnd:
		if s.stats.moves == 0 && s.stats.attacks == 0 {
			err := fmt.Errorf("round %d: %w", s.rounds+1, ErrStalemate)
			s.fail(err)
			return err
		}
		s.rounds++
		s.endRoundSpan()
		s.phase = PhaseRoundStart

	case PhaseCombatOver:
		return s.err
	}
	return nil
}

// PlayRound steps until the current round completes or the battle ends.
// Returns true once the battle is over.
func (s *Simulation) PlayRound(ctx context.Context) (bool, error) {
	if s.phase == PhaseCombatOver {
		return true, s.err
	}
	for {
		if err := s.Step(ctx); err != nil {
			return true, err
		}
		switch s.phase {
		case PhaseCombatOver:
			return true, nil
		case PhaseRoundStart:
			return false, nil
		}
	}
}

// Run plays the battle to the end and returns its outcome. It stops early
// if ctx is cancelled.
func (s *Simulation) Run(ctx context.Context) (Outcome, error) {
	ctx, span := s.tracer.Start(ctx, "battle.run")
	defer span.End()

	span.SetAttributes(
		attribute.String("run", s.id.String()),
		attribute.Int("grid.width", s.grid.Width),
		attribute.Int("grid.height", s.grid.Height),
		attribute.Int("goblins", s.units.AliveCount(entity.FactionGoblin)),
		attribute.Int("elves", s.units.AliveCount(entity.FactionElf)),
	)
	s.logger.Info("battle started",
		zap.Int("goblins", s.units.AliveCount(entity.FactionGoblin)),
		zap.Int("elves", s.units.AliveCount(entity.FactionElf)),
	)

	for s.phase != PhaseCombatOver {
		err := ctx.Err()
		if err == nil {
			err = s.Step(ctx)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.logger.Error("battle aborted", zap.Error(err))
			return Outcome{}, err
		}
	}

	out := s.Outcome()
	span.SetAttributes(
		attribute.String("winner", out.Winner.String()),
		attribute.Int("rounds", out.Rounds),
		attribute.Int("hit_points", out.HitPoints),
		attribute.Int("score", out.Score()),
		attribute.Bool("aborted", out.Aborted),
	)
	s.logger.Info("battle finished",
		zap.Stringer("winner", out.Winner),
		zap.Int("rounds", out.Rounds),
		zap.Int("hit_points", out.HitPoints),
		zap.Int("score", out.Score()),
		zap.Bool("aborted", out.Aborted),
	)
	return out, nil
}

// Outcome reports the result so far. It is final once Phase is CombatOver.
func (s *Simulation) Outcome() Outcome {
	out := Outcome{
		Rounds:    s.rounds,
		HitPoints: s.units.TotalHP(),
		Losses:    make(map[entity.Faction]int, len(entity.Factions)),
		Aborted:   s.aborted,
	}
	alive := 0
	for _, f := range entity.Factions {
		out.Losses[f] = s.units.SpawnedCount(f) - s.units.AliveCount(f)
		if s.units.FactionAlive(f) {
			out.Winner = f
			alive++
		}
	}
	if alive != 1 || s.aborted {
		out.Winner = entity.FactionNone
	}
	return out
}

// startRound fixes this round's turn order: living units in reading order.
func (s *Simulation) startRound(ctx context.Context) {
	_, s.roundSpan = s.tracer.Start(ctx, "battle.round")
	s.roundSpan.SetAttributes(attribute.Int("round", s.rounds+1))

	s.order = s.units.ReadingOrder()
	s.cursor = 0
	s.stats = roundStats{}
	s.phase = PhaseUnitTurn
}

// takeTurn moves u if no enemy is adjacent, then attacks if one is.
func (s *Simulation) takeTurn(u *entity.Unit) error {
	step, err := s.paths.Advance(u)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvariant, err)
	}
	if step.Moved {
		s.stats.moves++
		s.logger.Debug("move",
			zap.Int("round", s.rounds),
			zap.Stringer("unit", u),
			zap.Stringer("from", step.From),
			zap.Stringer("target", step.Target),
		)
		s.emit(Event{Kind: EventMove, Round: s.rounds, Unit: u.ID, Target: -1, From: step.From, To: step.To})
	}

	result, attacked, err := s.resolver.Attack(u)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvariant, err)
	}
	if !attacked {
		return nil
	}

	target := result.Target
	s.stats.attacks++
	s.damage += result.Damage
	s.logger.Debug("attack",
		zap.Int("round", s.rounds),
		zap.Stringer("unit", u),
		zap.Stringer("target", target),
		zap.Int("damage", result.Damage),
	)
	s.emit(Event{
		Kind: EventAttack, Round: s.rounds, Unit: u.ID, Target: target.ID,
		From: u.Pos, To: target.Pos, Damage: result.Damage, HP: target.HP,
	})

	if result.Killed {
		s.stats.deaths++
		s.logger.Debug("death", zap.Int("round", s.rounds), zap.Stringer("unit", target))
		s.emit(Event{
			Kind: EventDeath, Round: s.rounds, Unit: u.ID, Target: target.ID,
			From: u.Pos, To: target.Pos, HP: target.HP,
		})
		if target.Faction == s.cfg.StopOnLoss {
			s.aborted = true
		}
	}
	return nil
}

func (s *Simulation) emit(ev Event) {
	if s.cfg.Observer != nil {
		s.cfg.Observer(ev)
	}
}

func (s *Simulation) bothAlive() bool {
	for _, f := range entity.Factions {
		if !s.units.FactionAlive(f) {
			return false
		}
	}
	return true
}

// finish moves to CombatOver without counting the round in progress.
func (s *Simulation) finish() {
	s.phase = PhaseCombatOver
	s.endRoundSpan()
}

func (s *Simulation) fail(err error) {
	s.err = err
	if s.roundSpan != nil {
		s.roundSpan.RecordError(err)
		s.roundSpan.SetStatus(codes.Error, err.Error())
	}
	s.finish()
}

func (s *Simulation) endRoundSpan() {
	if s.roundSpan == nil {
		return
	}
	s.roundSpan.SetAttributes(
		attribute.Int("moves", s.stats.moves),
		attribute.Int("attacks", s.stats.attacks),
		attribute.Int("deaths", s.stats.deaths),
	)
	s.roundSpan.End()
	s.roundSpan = nil
}
