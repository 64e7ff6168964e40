// Package main is the entry point for Skirmish.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/game"
	"github.com/samdwyer/skirmish/internal/gamedata"
	"github.com/samdwyer/skirmish/internal/mapfile"
	"github.com/samdwyer/skirmish/internal/telemetry"
	"github.com/samdwyer/skirmish/internal/world"
)

type options struct {
	mapPath     string
	scenario    string
	list        bool
	generate    int
	seed        int64
	search      string
	rulesPath   string
	hitPoints   int
	goblinPower int
	elfPower    int
	watch       bool
	delay       time.Duration
	render      bool
	debug       bool
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.mapPath, "map", "", "battle map file")
	flag.StringVar(&o.scenario, "scenario", "", "built-in scenario id")
	flag.BoolVar(&o.list, "list", false, "list built-in scenarios")
	flag.IntVar(&o.generate, "generate", 0, "generate a random arena with this many units")
	flag.Int64Var(&o.seed, "seed", 1, "seed for -generate")
	flag.StringVar(&o.search, "search", "", "find the smallest attack power at which this faction loses nobody")
	flag.StringVar(&o.rulesPath, "rules", "", "rules YAML file (default: built-in rules)")
	flag.IntVar(&o.hitPoints, "hp", 0, "starting hit points (default from rules)")
	flag.IntVar(&o.goblinPower, "goblin-power", 0, "goblin attack power (default from rules)")
	flag.IntVar(&o.elfPower, "elf-power", 0, "elf attack power (default from rules)")
	flag.BoolVar(&o.watch, "watch", false, "watch the battle in the terminal")
	flag.DurationVar(&o.delay, "delay", 150*time.Millisecond, "pause between rounds in -watch mode")
	flag.BoolVar(&o.render, "render", false, "print the final battlefield")
	flag.BoolVar(&o.debug, "debug", false, "log every move and attack")
	flag.Parse()

	if o.mapPath == "" && flag.NArg() > 0 {
		o.mapPath = flag.Arg(0)
	}
	return o
}

func main() {
	os.Exit(execute(parseFlags()))
}

// execute runs the command and returns the process exit code, so that
// deferred cleanup runs before exit.
func execute(opts options) int {
	logger, err := telemetry.NewLogger(opts.debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "skirmish: logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		logger.Debug(".env file not loaded", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if setupOTelEnv() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			logger.Warn("telemetry setup failed, running without traces", zap.Error(err))
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Warn("telemetry shutdown", zap.Error(err))
				}
			}()
		}
	}

	if err := run(ctx, opts, logger); err != nil {
		logger.Error("skirmish failed", zap.Error(err))
		return 1
	}
	return 0
}

func run(ctx context.Context, opts options, logger *zap.Logger) error {
	registry, err := gamedata.LoadScenarioRegistry()
	if err != nil {
		return err
	}
	if opts.list {
		return listScenarios(registry)
	}

	rules, err := loadRules(opts.rulesPath)
	if err != nil {
		return err
	}
	cfg, err := buildConfig(rules, opts)
	if err != nil {
		return err
	}
	cfg.Logger = logger

	layout, reference, err := loadLayout(ctx, opts, rules, registry)
	if err != nil {
		return err
	}

	if opts.search != "" {
		return searchPower(ctx, layout, cfg, opts.search, reference)
	}

	sim, err := game.New(layout, cfg)
	if err != nil {
		return err
	}

	var out game.Outcome
	if opts.watch {
		out, err = watch(ctx, sim, rules, opts.delay)
	} else {
		out, err = sim.Run(ctx)
	}
	if err != nil {
		return err
	}

	if opts.render {
		fmt.Print(sim.Render())
	}
	fmt.Println(out)
	fmt.Printf("Winner: %s (goblins lost %d, elves lost %d)\n",
		out.Winner, out.Losses[entity.FactionGoblin], out.Losses[entity.FactionElf])

	if reference != nil && reference.Outcome != out.Score() {
		logger.Warn("outcome differs from reference",
			zap.String("scenario", reference.ID),
			zap.Int("want", reference.Outcome),
			zap.Int("got", out.Score()),
		)
	}
	return nil
}

func loadRules(path string) (*gamedata.Rules, error) {
	if path == "" {
		return gamedata.LoadRules()
	}
	return gamedata.LoadRulesFile(path)
}

func buildConfig(rules *gamedata.Rules, opts options) (game.Config, error) {
	cfg, err := game.ConfigFromRules(rules)
	if err != nil {
		return game.Config{}, err
	}
	if opts.hitPoints > 0 {
		cfg.HitPoints = opts.hitPoints
	}
	if opts.goblinPower > 0 {
		cfg = cfg.WithAttackPower(entity.FactionGoblin, opts.goblinPower)
	}
	if opts.elfPower > 0 {
		cfg = cfg.WithAttackPower(entity.FactionElf, opts.elfPower)
	}
	return cfg, cfg.Validate()
}

// loadLayout picks the battle map. The reference scenario is nil unless
// -scenario was given.
func loadLayout(ctx context.Context, opts options, rules *gamedata.Rules, registry *gamedata.ScenarioRegistry) (*mapfile.Layout, *gamedata.ScenarioDef, error) {
	switch {
	case opts.scenario != "":
		s := registry.GetByID(opts.scenario)
		if s == nil {
			return nil, nil, fmt.Errorf("unknown scenario %q (see -list)", opts.scenario)
		}
		layout, err := mapfile.Parse(s.Map)
		return layout, s, err
	case opts.generate > 0:
		layout, err := game.GenerateLayout(ctx, opts.seed, rules, world.DefaultWidth, world.DefaultHeight, opts.generate)
		return layout, nil, err
	case opts.mapPath != "":
		layout, err := mapfile.Load(opts.mapPath)
		return layout, nil, err
	}
	return nil, nil, errors.New("no battle given: use -map, -scenario or -generate")
}

func searchPower(ctx context.Context, layout *mapfile.Layout, cfg game.Config, faction string, reference *gamedata.ScenarioDef) error {
	f, ok := entity.ParseFaction(faction)
	if !ok {
		return fmt.Errorf("unknown faction %q", faction)
	}
	result, err := game.MinimumPower(ctx, layout, cfg, f)
	if err != nil {
		return err
	}

	fmt.Printf("Power: %d (%d battles)\n", result.Power, result.Trials)
	fmt.Println(result.Outcome)

	if reference != nil && f == entity.FactionElf && reference.ElfPower != 0 && reference.ElfPower != result.Power {
		cfg.Logger.Warn("power differs from reference",
			zap.String("scenario", reference.ID),
			zap.Int("want", reference.ElfPower),
			zap.Int("got", result.Power),
		)
	}
	return nil
}

func listScenarios(registry *gamedata.ScenarioRegistry) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSIZE\tOUTCOME\tWINNER")
	for _, s := range registry.All() {
		rows := s.Rows()
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%s\n", s.ID, s.Name, len(rows[0]), len(rows), s.Outcome, s.Winner)
	}
	return w.Flush()
}

// setupOTelEnv maps the Honeycomb keys from .env onto the standard OTEL
// variables. Returns whether an exporter endpoint is configured.
func setupOTelEnv() bool {
	apiKey := os.Getenv("HONEYCOMB_SKIRMISH_API_KEY")
	if apiKey != "" {
		dataset := os.Getenv("HONEYCOMB_SKIRMISH_DATASET")
		if dataset == "" {
			dataset = "skirmish"
		}
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
	return os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != ""
}
