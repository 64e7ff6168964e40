package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/gamedata"
)

func TestBuildConfigOverrides(t *testing.T) {
	rules := gamedata.MustLoadRules()

	cfg, err := buildConfig(rules, options{hitPoints: 50, elfPower: 12})
	if err != nil {
		t.Fatalf("buildConfig() error = %v", err)
	}
	if cfg.HitPoints != 50 {
		t.Errorf("HitPoints = %d, want 50", cfg.HitPoints)
	}
	if cfg.AttackPower[entity.FactionElf] != 12 {
		t.Errorf("elf power = %d, want 12", cfg.AttackPower[entity.FactionElf])
	}
	if cfg.AttackPower[entity.FactionGoblin] != 3 {
		t.Errorf("goblin power = %d, want 3", cfg.AttackPower[entity.FactionGoblin])
	}
}

func TestLoadLayout(t *testing.T) {
	ctx := context.Background()
	rules := gamedata.MustLoadRules()
	registry, err := gamedata.LoadScenarioRegistry()
	if err != nil {
		t.Fatalf("LoadScenarioRegistry() error = %v", err)
	}

	layout, ref, err := loadLayout(ctx, options{scenario: "opening"}, rules, registry)
	if err != nil || ref == nil || ref.ID != "opening" || layout.Width() != 7 {
		t.Errorf("scenario layout = %v, %v, %v", layout, ref, err)
	}

	if _, _, err := loadLayout(ctx, options{scenario: "missing"}, rules, registry); err == nil {
		t.Error("unknown scenario should fail")
	}

	layout, ref, err = loadLayout(ctx, options{generate: 4, seed: 9}, rules, registry)
	if err != nil || ref != nil || layout.Height() == 0 {
		t.Errorf("generated layout = %v, %v, %v", layout, ref, err)
	}

	path := filepath.Join(t.TempDir(), "battle.txt")
	if err := os.WriteFile(path, []byte("#####\n#G.E#\n#####\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	layout, _, err = loadLayout(ctx, options{mapPath: path}, rules, registry)
	if err != nil || layout.Width() != 5 || layout.Height() != 3 {
		t.Errorf("file layout = %v, %v", layout, err)
	}

	if _, _, err := loadLayout(ctx, options{}, rules, registry); err == nil {
		t.Error("no battle should fail")
	}
}

func TestSetupOTelEnv(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")
	t.Setenv("HONEYCOMB_SKIRMISH_API_KEY", "")
	t.Setenv("HONEYCOMB_SKIRMISH_DATASET", "")

	if setupOTelEnv() {
		t.Error("setupOTelEnv() = true with nothing configured")
	}

	t.Setenv("HONEYCOMB_SKIRMISH_API_KEY", "key")
	if !setupOTelEnv() {
		t.Fatal("setupOTelEnv() = false with an API key")
	}
	if got, want := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"), "x-honeycomb-team=key,x-honeycomb-dataset=skirmish"; got != want {
		t.Errorf("headers = %q, want %q", got, want)
	}
}
