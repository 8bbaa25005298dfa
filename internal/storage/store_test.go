package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Jungo-Phi/Slidep/internal/geom"
	"github.com/Jungo-Phi/Slidep/internal/metrics"
	"github.com/Jungo-Phi/Slidep/internal/scene"
	"github.com/Jungo-Phi/Slidep/internal/solver"
)

func solvedRun(t *testing.T) Run {
	t.Helper()
	sc, err := scene.Preset("crank")
	if err != nil {
		t.Fatal(err)
	}
	m, err := sc.Build()
	if err != nil {
		t.Fatal(err)
	}

	s := solver.New(solver.DefaultConfig())
	for _, mt := range metrics.Standard() {
		s.AddMetric(mt)
	}
	g := solver.GrabJoint(1)
	target := geom.Pt(10, 0)
	res := s.Drag(m, g, target)

	return Run{
		Scene:  "crank",
		Grab:   g,
		Target: target,
		Solver: s.Config(),
		Result: res,
		Final:  m,
	}
}

func TestSaveLoad(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	run := solvedRun(t)
	id, err := store.Save(run)
	if err != nil {
		t.Fatal(err)
	}

	meta, err := store.Load(id)
	if err != nil {
		t.Fatal(err)
	}
	if meta.ID != id || meta.Scene != "crank" {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Iterations != run.Result.Iterations || meta.Converged != run.Result.Converged {
		t.Errorf("result summary not stored: %+v", meta)
	}
	if meta.Target != geom.Pt(10, 0) {
		t.Errorf("expected target (10, 0), got %s", meta.Target)
	}
	if meta.Solver.MaxIterations != 100 {
		t.Errorf("solver config not stored: %+v", meta.Solver)
	}
	if _, ok := meta.Metrics["sweeps"]; !ok {
		t.Errorf("metrics not stored: %v", meta.Metrics)
	}

	trace, err := store.LoadTrace(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(trace) != len(run.Result.Trace) {
		t.Fatalf("expected %d trace points, got %d", len(run.Result.Trace), len(trace))
	}
	for i := range trace {
		if trace[i] != run.Result.Trace[i] {
			t.Errorf("trace[%d] = %g, want %g", i, trace[i], run.Result.Trace[i])
		}
	}

	sc, err := store.LoadScene(id)
	if err != nil {
		t.Fatal(err)
	}
	m, err := sc.Build()
	if err != nil {
		t.Fatal(err)
	}
	if m.Joint(1).Pos != run.Final.Joint(1).Pos {
		t.Errorf("final scene mismatch: %s vs %s", m.Joint(1).Pos, run.Final.Joint(1).Pos)
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)

	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	first, err := store.Save(solvedRun(t))
	if err != nil {
		t.Fatal(err)
	}
	run := solvedRun(t)
	run.Scene = filepath.Join("scenes", "my rig.yaml")
	second, err := store.Save(run)
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatalf("run ids collide: %s", first)
	}

	// stray files and broken runs are skipped
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "broken"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestListMissingDir(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestRunName(t *testing.T) {
	tests := map[string]string{
		"crank":                "crank",
		"scenes/four_bar.yaml": "four_bar",
		"/tmp/x/slider.yml":    "slider",
		"":                     "scene",
	}
	for in, want := range tests {
		if got := runName(in); got != want {
			t.Errorf("runName(%q) = %q, want %q", in, got, want)
		}
	}
}
