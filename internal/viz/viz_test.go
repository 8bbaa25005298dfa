package viz

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Jungo-Phi/Slidep/internal/geom"
	"github.com/Jungo-Phi/Slidep/internal/kin"
	"github.com/Jungo-Phi/Slidep/internal/scene"
	"github.com/Jungo-Phi/Slidep/internal/solver"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(4, 2)
	if c.PixelWidth() != 8 || c.PixelHeight() != 8 {
		t.Fatalf("pixel size = %dx%d", c.PixelWidth(), c.PixelHeight())
	}
	c.Set(3, 5)
	if !c.IsSet(3, 5) {
		t.Error("pixel not set")
	}
	if c.Grid[1][1] == brailleBlank {
		t.Error("cell unchanged")
	}
	c.Unset(3, 5)
	if c.IsSet(3, 5) || c.Grid[1][1] != brailleBlank {
		t.Error("pixel not cleared")
	}
	c.Set(-1, 0)
	c.Set(100, 100)
	if c.IsSet(-1, 0) || c.IsSet(100, 100) {
		t.Error("out of bounds pixel reported set")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 3)
	c.DrawLine(0, 0, 19, 11)
	if !c.IsSet(0, 0) || !c.IsSet(19, 11) {
		t.Error("line endpoints not drawn")
	}
	c.Clear()
	if strings.ContainsFunc(c.String(), func(r rune) bool { return r > brailleBlank }) {
		t.Error("canvas not cleared")
	}
}

func TestCanvasDrawCircle(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawCircle(10, 10, 3)
	for _, p := range [][2]int{{13, 10}, {7, 10}, {10, 13}, {10, 7}} {
		if !c.IsSet(p[0], p[1]) {
			t.Errorf("circle misses (%d,%d)", p[0], p[1])
		}
	}
	if c.IsSet(10, 10) {
		t.Error("circle filled its center")
	}
}

func TestFitViewport(t *testing.T) {
	vp := FitViewport(geom.Pt(0, 0), geom.Pt(10, 2), 100, 50, 0)
	if vp.Scale != 10 {
		t.Fatalf("scale = %v, want 10", vp.Scale)
	}
	x, y := vp.ToScreen(geom.Pt(0, 0))
	if x != 0 || y != 35 {
		t.Errorf("lo maps to (%d,%d), want (0,35)", x, y)
	}
	x, y = vp.ToScreen(geom.Pt(10, 2))
	if x != 100 || y != 15 {
		t.Errorf("hi maps to (%d,%d), want (100,15)", x, y)
	}
	if p := vp.ToWorld(50, 25); !p.NearEqual(geom.Pt(5, 1), 1e-9) {
		t.Errorf("center maps back to %v", p)
	}
}

func TestFitViewportDegenerate(t *testing.T) {
	vp := FitViewport(geom.Pt(3, 3), geom.Pt(3, 3), 40, 40, 2)
	if vp.Scale != 1 {
		t.Errorf("scale = %v, want 1", vp.Scale)
	}
	if x, y := vp.ToScreen(geom.Pt(3, 3)); x != 20 || y != 20 {
		t.Errorf("point maps to (%d,%d), want (20,20)", x, y)
	}
}

func TestDrawMechanism(t *testing.T) {
	m := kin.New()
	r := m.AddRod(geom.Pt(0, 0), geom.Pt(10, 0))
	m.SetRodGround(r, true, false)
	j := m.AddJoint(kin.Pivot, geom.Pt(10, 0))
	if err := m.AttachRotating(j, r, 1); err != nil {
		t.Fatal(err)
	}

	c := NewCanvas(30, 10)
	vp := FitViewport(geom.Pt(0, 0), geom.Pt(10, 0), c.PixelWidth(), c.PixelHeight(), 6)
	DrawMechanism(c, vp, m)

	ax, ay := vp.ToScreen(geom.Pt(0, 0))
	bx, by := vp.ToScreen(geom.Pt(5, 0))
	if !c.IsSet(ax, ay) || !c.IsSet(bx, by) {
		t.Error("rod not drawn")
	}
	jx, jy := vp.ToScreen(geom.Pt(10, 0))
	if !c.IsSet(jx+pivotRadius, jy) {
		t.Error("pivot ring not drawn")
	}
	if !c.IsSet(ax, ay+pivotRadius+1) {
		t.Error("ground hatch not drawn")
	}
}

func TestSparklineChart(t *testing.T) {
	if got := SparklineChart(nil, 5); got != "─────" {
		t.Errorf("empty sparkline = %q", got)
	}
	out := SparklineChart([]float64{1, 0.1, 0.01, 0.001}, 4)
	if !strings.ContainsRune(out, '█') || !strings.ContainsRune(out, '▁') {
		t.Errorf("sparkline %q lacks extremes", out)
	}
}

func TestNextThemeWraps(t *testing.T) {
	last := Themes[len(Themes)-1]
	if NextTheme(last).Name != Themes[0].Name {
		t.Error("theme cycle does not wrap")
	}
	if GetTheme("nope").Name != ThemeBlueprint.Name {
		t.Error("unknown theme does not fall back")
	}
}

func newCrankModel(t *testing.T) Model {
	t.Helper()
	sc, err := scene.Preset("crank")
	if err != nil {
		t.Fatal(err)
	}
	m, err := sc.Build()
	if err != nil {
		t.Fatal(err)
	}
	return NewModel("crank", m, solver.New(solver.DefaultConfig()))
}

func press(m Model, keys ...tea.KeyMsg) Model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestModelGrabs(t *testing.T) {
	m := newCrankModel(t)
	if len(m.grabs) != 4 {
		t.Fatalf("grabs = %d, want 4", len(m.grabs))
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	g, ok := m.Grab()
	if !ok || g != solver.GrabJoint(1) {
		t.Fatalf("grab after tab = %v", g)
	}
	if !m.Target().NearEqual(geom.Pt(5, 0), 1e-9) {
		t.Errorf("target = %v, want (5,0)", m.Target())
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if g, _ := m.Grab(); g != solver.GrabJoint(0) {
		t.Errorf("grab after shift+tab = %v", g)
	}
	if !m.Select(solver.GrabRodEnd(0, true)) {
		t.Error("rod end not selectable")
	}
}

func TestModelDragAndUndo(t *testing.T) {
	m := newCrankModel(t)
	m = press(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyUp})

	if m.Result() == nil || !m.Result().Valid {
		t.Fatal("drag produced no valid result")
	}
	mech := m.Mechanism()
	if mech.Joint(1).Pos.Y <= 0 {
		t.Errorf("joint did not move up: %v", mech.Joint(1).Pos)
	}
	if got := mech.Rod(0).Len(); math.Abs(got-5) > 0.05 {
		t.Errorf("rod length = %v, want 5", got)
	}
	if !mech.Joint(0).Pos.NearEqual(geom.Pt(0, 0), 1e-9) {
		t.Errorf("grounded joint moved to %v", mech.Joint(0).Pos)
	}
	if len(m.history) != 2 || len(m.errHistory) != 1 {
		t.Fatalf("history = %d, errors = %d", len(m.history), len(m.errHistory))
	}

	moved := mech.Joint(1).Pos
	m = press(m, runes("["))
	if !m.Mechanism().Joint(1).Pos.NearEqual(geom.Pt(5, 0), 1e-9) {
		t.Errorf("undo left joint at %v", m.Mechanism().Joint(1).Pos)
	}
	m = press(m, runes("]"))
	if !m.Mechanism().Joint(1).Pos.NearEqual(moved, 1e-9) {
		t.Errorf("redo left joint at %v, want %v", m.Mechanism().Joint(1).Pos, moved)
	}
}

func TestModelRigidMove(t *testing.T) {
	m := newCrankModel(t)
	m = press(m, tea.KeyMsg{Type: tea.KeyTab}, runes("m"), runes("L"))

	want := geom.Pt(5+5*m.step, 0)
	if !m.Mechanism().Joint(1).Pos.NearEqual(want, 1e-9) {
		t.Errorf("joint at %v, want %v", m.Mechanism().Joint(1).Pos, want)
	}
	if !m.Mechanism().Rod(0).B.NearEqual(geom.Pt(5, 0), 1e-9) {
		t.Error("rigid move propagated to the rod")
	}
	if m.Result().Error <= 0 {
		t.Error("rigid move reported no residual")
	}
}

func TestModelGroundedGrabStays(t *testing.T) {
	m := newCrankModel(t)
	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if !m.Mechanism().Joint(0).Pos.NearEqual(geom.Pt(0, 0), 1e-9) {
		t.Errorf("grounded joint moved to %v", m.Mechanism().Joint(0).Pos)
	}
}

func TestModelToggleGroundAndReset(t *testing.T) {
	m := newCrankModel(t)
	m = press(m, tea.KeyMsg{Type: tea.KeyTab}, runes("g"))
	if !m.Mechanism().Joint(1).Ground {
		t.Fatal("ground not toggled")
	}
	m = press(m, runes("r"))
	if m.Mechanism().Joint(1).Ground {
		t.Error("reset kept the ground flag")
	}
	if len(m.history) != 1 || m.Result() != nil {
		t.Error("reset kept history")
	}
}

func TestModelView(t *testing.T) {
	m := newCrankModel(t)
	m = press(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyUp})
	out := m.View()
	for _, want := range []string{"CRANK", "Grab", "Error", "Sweeps"} {
		if !strings.Contains(out, want) {
			t.Errorf("view lacks %q", want)
		}
	}
}

func TestAppOpensScene(t *testing.T) {
	app := NewApp(solver.New(solver.DefaultConfig()))
	next, _ := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = next.(App)
	if app.state != stateLive {
		t.Fatalf("app did not open a scene: %v", app.err)
	}
	if app.live.name != scene.ListPresets()[0] {
		t.Errorf("opened %q", app.live.name)
	}
	next, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if next.(App).state != stateMenu {
		t.Error("esc did not return to the menu")
	}
}
