package game

import (
	"testing"

	"github.com/samdwyer/skirmish/internal/gamedata"
	"github.com/samdwyer/skirmish/internal/mapfile"
)

func mustLayout(t *testing.T, rows ...string) *mapfile.Layout {
	t.Helper()
	layout, err := mapfile.ParseRows(rows)
	if err != nil {
		t.Fatalf("ParseRows() error = %v", err)
	}
	return layout
}

func mustSimulation(t *testing.T, layout *mapfile.Layout, cfg Config) *Simulation {
	t.Helper()
	sim, err := New(layout, cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return sim
}

func scenarios(t *testing.T) []gamedata.ScenarioDef {
	t.Helper()
	registry, err := gamedata.LoadScenarioRegistry()
	if err != nil {
		t.Fatalf("LoadScenarioRegistry() error = %v", err)
	}
	return registry.All()
}

func scenarioLayout(t *testing.T, s gamedata.ScenarioDef) *mapfile.Layout {
	t.Helper()
	layout, err := mapfile.Parse(s.Map)
	if err != nil {
		t.Fatalf("%s: Parse() error = %v", s.ID, err)
	}
	return layout
}

// recorder collects observer events.
type recorder struct {
	events []Event
}

func (r *recorder) observe(ev Event) {
	r.events = append(r.events, ev)
}
