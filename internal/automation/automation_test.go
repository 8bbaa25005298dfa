package automation

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Jungo-Phi/Slidep/internal/geom"
	"github.com/Jungo-Phi/Slidep/internal/scene"
	"github.com/Jungo-Phi/Slidep/internal/solver"
)

const crankScript = `
name: crank tour
scene: crank
steps:
  - joint: 1
    target: {x: 10, y: 0}
  - joint: 1
    target: {x: 0, y: 9}
    animate: true
  - rod: 0
    k: 0.5
    target: {x: -2, y: 2}
`

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunScript(t *testing.T) {
	script, err := LoadScript(writeScript(t, crankScript))
	if err != nil {
		t.Fatal(err)
	}
	if len(script.Steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(script.Steps))
	}

	var out bytes.Buffer
	results, m, err := RunScript(context.Background(), script, solver.New(solver.DefaultConfig()), &out)
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Result.Converged {
			t.Errorf("step %d did not converge (error %g)", r.Index, r.Result.Error)
		}
	}
	if got := m.Rod(0).Len(); got < 5-1e-9 || got > 5+1e-9 {
		t.Errorf("rod length drifted to %g", got)
	}
	if m.Joint(0).Pos != geom.Pt(0, 0) {
		t.Errorf("grounded pivot moved to %s", m.Joint(0).Pos)
	}
	if strings.Count(out.String(), "\n") != 3 {
		t.Errorf("expected 3 progress lines, got %q", out.String())
	}
}

func TestRunScriptErrors(t *testing.T) {
	s := solver.New(solver.DefaultConfig())
	j, r := 1, 0

	tests := []struct {
		name   string
		script *Script
	}{
		{"unknown scene", &Script{Scene: "nope"}},
		{"empty grab", &Script{Scene: "crank", Steps: []Step{{}}}},
		{"double grab", &Script{Scene: "crank", Steps: []Step{{Joint: &j, Rod: &r}}}},
		{"missing joint", &Script{Scene: "fixation", Steps: []Step{{Joint: &j}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := RunScript(context.Background(), tt.script, s, nil); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRunScriptCancelled(t *testing.T) {
	script, err := LoadScript(writeScript(t, crankScript))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, _, err := RunScript(ctx, script, solver.New(solver.DefaultConfig()), nil)
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestRunSweep(t *testing.T) {
	sc, err := scene.Preset("slider_crank")
	if err != nil {
		t.Fatal(err)
	}
	m, err := sc.Build()
	if err != nil {
		t.Fatal(err)
	}

	sweep := &Sweep{
		Grab:    solver.GrabRodEnd(1, true),
		Center:  geom.Pt(0, 0),
		Radius:  3,
		Steps:   12,
		Animate: true,
	}
	results, err := RunSweep(context.Background(), m, sweep, solver.New(solver.DefaultConfig()), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 12 {
		t.Fatalf("expected 12 results, got %d", len(results))
	}
	if results[11].Angle != 360 {
		t.Errorf("expected last angle 360, got %g", results[11].Angle)
	}

	if d := m.Rod(0).DistanceTo(m.Joint(2).Pos); d > 0.05 {
		t.Errorf("piston %g off the rail", d)
	}
	for _, r := range results {
		if !r.Position.IsFinite() {
			t.Errorf("step %d: invalid position", r.Step)
		}
	}

	converged, unconverged, worst := SweepStats(results)
	if converged+unconverged != 12 {
		t.Errorf("stats do not add up: %d + %d", converged, unconverged)
	}
	if worst < 0 {
		t.Errorf("negative worst error %g", worst)
	}
}

func TestRunSweepRejectsBadInput(t *testing.T) {
	sc, _ := scene.Preset("crank")
	m, _ := sc.Build()
	s := solver.New(solver.DefaultConfig())

	if _, err := RunSweep(context.Background(), m, &Sweep{Grab: solver.GrabJoint(1)}, s, nil); err == nil {
		t.Error("expected error for zero steps")
	}
	if _, err := RunSweep(context.Background(), m, &Sweep{Grab: solver.GrabJoint(7), Steps: 3}, s, nil); err == nil {
		t.Error("expected error for missing joint")
	}
}

func TestRunMonteCarlo(t *testing.T) {
	sc, _ := scene.Preset("crank")
	m, _ := sc.Build()

	cfg := &MonteCarloConfig{
		Grab:         solver.GrabJoint(1),
		Base:         geom.Pt(6, 6),
		Perturbation: 2,
		NumTrials:    16,
		Seed:         42,
		Solver:       solver.DefaultConfig(),
	}
	results, err := RunMonteCarlo(context.Background(), m, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 16 {
		t.Fatalf("expected 16 results, got %d", len(results))
	}

	for i, r := range results {
		if r.TrialID != i {
			t.Errorf("result %d has trial id %d", i, r.TrialID)
		}
		if !r.Valid {
			t.Errorf("trial %d produced invalid geometry", i)
		}
	}
	if m.Joint(1).Pos != geom.Pt(5, 0) {
		t.Errorf("trials mutated the source mechanism: %s", m.Joint(1).Pos)
	}

	converged, unconverged := MonteCarloStats(results)
	if converged+unconverged != 16 {
		t.Errorf("stats do not add up: %d + %d", converged, unconverged)
	}
	if converged == 0 {
		t.Error("expected at least one converged trial")
	}
}

func TestRunMonteCarloDeterministic(t *testing.T) {
	sc, _ := scene.Preset("four_bar")
	m, _ := sc.Build()

	run := func(workers int) []MonteCarloResult {
		cfg := &MonteCarloConfig{
			Grab:         solver.GrabJoint(1),
			Base:         geom.Pt(1, 4),
			Perturbation: 1,
			NumTrials:    12,
			Seed:         7,
			Solver:       solver.DefaultConfig(),
			Workers:      workers,
		}
		results, err := RunMonteCarlo(context.Background(), m, cfg)
		if err != nil {
			t.Fatal(err)
		}
		return results
	}

	serial, parallel := run(1), run(4)
	for i := range serial {
		if serial[i] != parallel[i] {
			t.Errorf("trial %d differs between 1 and 4 workers: %+v vs %+v", i, serial[i], parallel[i])
		}
	}
}

func TestRunMonteCarloCancelled(t *testing.T) {
	sc, _ := scene.Preset("crank")
	m, _ := sc.Build()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunMonteCarlo(ctx, m, &MonteCarloConfig{
		Grab:      solver.GrabJoint(1),
		NumTrials: 8,
		Seed:      1,
		Solver:    solver.DefaultConfig(),
	})
	if err == nil {
		t.Error("expected context error")
	}
}

func TestMechanismPool(t *testing.T) {
	sc, _ := scene.Preset("slider_crank")
	base, _ := sc.Build()
	pool := NewMechanismPool(base)

	a := pool.Get()
	a.Joint(1).Pos = geom.Pt(99, 99)
	a.Joint(1).Rotating[0].K = 0.5
	pool.Put(a)

	b := pool.Get()
	if b.Joint(1).Pos != base.Joint(1).Pos {
		t.Errorf("pooled copy kept a stale position: %s", b.Joint(1).Pos)
	}
	if b.Joint(1).Rotating[0].K != base.Joint(1).Rotating[0].K {
		t.Error("pooled copy kept a stale attachment")
	}
	if base.Joint(1).Pos == geom.Pt(99, 99) {
		t.Error("pool mutated the base mechanism")
	}
	pool.Put(base)
}
