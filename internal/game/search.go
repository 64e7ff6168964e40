package game

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/mapfile"
	"github.com/samdwyer/skirmish/internal/telemetry"
)

// PowerResult is the answer of MinimumPower.
type PowerResult struct {
	Power   int     // smallest attack power with no losses
	Outcome Outcome // outcome of the battle at that power
	Trials  int     // battles simulated
}

// MinimumPower finds the smallest attack power for f, starting from its
// configured power, at which the battle ends without a single unit of f
// dying. Every trial is a fresh simulation that stops at f's first loss.
// Powers above cfg.HitPoints are not tried: at that point every hit kills.
func MinimumPower(ctx context.Context, layout *mapfile.Layout, cfg Config, f entity.Faction) (PowerResult, error) {
	ctx, span := telemetry.Tracer("battle").Start(ctx, "battle.power_search")
	defer span.End()
	span.SetAttributes(attribute.String("faction", f.String()))

	if f == entity.FactionNone {
		return PowerResult{}, fmt.Errorf("search for %s: %w", f, ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return PowerResult{}, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	trialLogger := logger.WithOptions(zap.IncreaseLevel(zap.WarnLevel))

	var result PowerResult
	for power := cfg.AttackPower[f]; power <= cfg.HitPoints; power++ {
		trial := cfg.WithAttackPower(f, power)
		trial.StopOnLoss = f
		trial.Logger = trialLogger

		sim, err := New(layout, trial)
		if err != nil {
			return PowerResult{}, err
		}
		out, err := sim.Run(ctx)
		if err != nil {
			return PowerResult{}, fmt.Errorf("power %d: %w", power, err)
		}
		result.Trials++

		logger.Debug("power trial",
			zap.Stringer("faction", f),
			zap.Int("power", power),
			zap.Bool("aborted", out.Aborted),
			zap.Int("losses", out.Losses[f]),
		)

		if !out.Aborted && out.Losses[f] == 0 && out.Winner == f {
			result.Power = power
			result.Outcome = out
			span.SetAttributes(
				attribute.Int("power", power),
				attribute.Int("trials", result.Trials),
				attribute.Int("score", out.Score()),
			)
			return result, nil
		}
	}

	span.SetAttributes(attribute.Int("trials", result.Trials))
	return result, fmt.Errorf("%s up to power %d: %w", f, cfg.HitPoints, ErrNoWinningPower)
}
