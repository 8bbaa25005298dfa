package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"math"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/Jungo-Phi/Slidep/internal/geom"
	"github.com/Jungo-Phi/Slidep/internal/kin"
	"github.com/Jungo-Phi/Slidep/internal/solver"
)

const (
	width           = 80
	height          = 24
	panelWidth      = 46
	historyCapacity = 200
	canvasMargin    = 6
	fastFactor      = 5
	recordingPath   = "slidep.gif"
)

// Snapshot is one entry of the undo history.
type Snapshot struct {
	Mech   *kin.Mechanism
	Target geom.Point
	Result *solver.Result
}

// Model is the interactive drag view. Arrow keys move a target point and
// every move drags the selected grab toward it.
type Model struct {
	name          string
	initial       *kin.Mechanism
	mech          *kin.Mechanism
	solver        *solver.Solver
	grabs         []solver.Grab
	selected      int
	target        geom.Point
	step          float64
	animate       bool
	rigid         bool
	result        *solver.Result
	errHistory    []float64
	history       []Snapshot
	cursor        int
	trail         []geom.Point
	width, height int
	canvas        *Canvas
	vp            Viewport
	theme         Theme
	showHelp      bool
	recording     bool
	frames        []*image.Paletted
	status        string
}

// NewModel builds a view over a copy of m.
func NewModel(name string, m *kin.Mechanism, s *solver.Solver) Model {
	model := Model{
		name:       name,
		initial:    m.Clone(),
		mech:       m.Clone(),
		solver:     s,
		grabs:      Grabs(m),
		width:      width,
		height:     height,
		canvas:     NewCanvas(width, height),
		theme:      ThemeBlueprint,
		errHistory: make([]float64, 0, historyCapacity),
	}
	model.step = stepSize(m)
	model.fit()
	model.retarget()
	model.history = []Snapshot{model.snapshot()}
	return model
}

// Grabs lists the grab points offered by the view: every joint, then both
// ends of every rod.
func Grabs(m *kin.Mechanism) []solver.Grab {
	grabs := make([]solver.Grab, 0, len(m.Joints)+2*len(m.Rods))
	for i := range m.Joints {
		grabs = append(grabs, solver.GrabJoint(kin.JointID(i)))
	}
	for i := range m.Rods {
		grabs = append(grabs, solver.GrabRodEnd(kin.RodID(i), false))
		grabs = append(grabs, solver.GrabRodEnd(kin.RodID(i), true))
	}
	return grabs
}

func stepSize(m *kin.Mechanism) float64 {
	lo, hi := m.Bounds()
	span := math.Max(hi.X-lo.X, hi.Y-lo.Y)
	if span <= 0 {
		return 0.5
	}
	return span / 40
}

// Select makes g the active grab if the view offers it.
func (m *Model) Select(g solver.Grab) bool {
	for i, cand := range m.grabs {
		if cand == g {
			m.selected = i
			m.retarget()
			return true
		}
	}
	return false
}

// Grab returns the active grab. ok is false for an empty mechanism.
func (m Model) Grab() (g solver.Grab, ok bool) {
	if len(m.grabs) == 0 {
		return solver.Grab{}, false
	}
	return m.grabs[m.selected], true
}

func (m Model) Mechanism() *kin.Mechanism { return m.mech }
func (m Model) Target() geom.Point        { return m.target }
func (m Model) Result() *solver.Result    { return m.result }

func (m Model) Init() tea.Cmd { return nil }

// Update handles key presses and window resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width-panelWidth-4, msg.Height-2)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.recording {
				m.stopRecording()
			}
			return m, tea.Quit
		case "tab":
			m.cycleGrab(1)
		case "shift+tab":
			m.cycleGrab(-1)
		case "left", "h":
			m.nudge(geom.Pt(-1, 0), 1)
		case "right", "l":
			m.nudge(geom.Pt(1, 0), 1)
		case "up", "k":
			m.nudge(geom.Pt(0, 1), 1)
		case "down", "j":
			m.nudge(geom.Pt(0, -1), 1)
		case "shift+left", "H":
			m.nudge(geom.Pt(-1, 0), fastFactor)
		case "shift+right", "L":
			m.nudge(geom.Pt(1, 0), fastFactor)
		case "shift+up", "K":
			m.nudge(geom.Pt(0, 1), fastFactor)
		case "shift+down", "J":
			m.nudge(geom.Pt(0, -1), fastFactor)
		case "a":
			m.animate = !m.animate
		case "m":
			m.rigid = !m.rigid
		case "g":
			m.toggleGround()
		case " ", "enter":
			m.settle()
		case "r":
			m.reset()
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "+", "=":
			m.vp.Zoom(1.25)
		case "-", "_":
			m.vp.Zoom(0.8)
		case "f":
			m.fit()
		case "t":
			m.theme = NextTheme(m.theme)
		case "v":
			if m.recording {
				m.stopRecording()
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
				m.status = ""
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	}
	m.draw()
	if m.recording {
		m.captureFrame()
	}
	return m, nil
}

func (m *Model) cycleGrab(dir int) {
	if len(m.grabs) == 0 {
		return
	}
	m.selected = (m.selected + dir + len(m.grabs)) % len(m.grabs)
	m.trail = m.trail[:0]
	m.retarget()
}

// retarget snaps the target onto the active grab.
func (m *Model) retarget() {
	if g, ok := m.Grab(); ok {
		m.target = g.Position(m.mech)
	}
}

// nudge moves the target by factor steps along dir and drags toward it.
func (m *Model) nudge(dir geom.Point, factor float64) {
	m.target = m.target.Add(dir.Mul(m.step * factor))
	m.drag()
}

func (m *Model) drag() {
	g, ok := m.Grab()
	if !ok {
		return
	}
	switch {
	case m.rigid:
		solver.Translate(m.mech, g, m.target)
		m.result = &solver.Result{
			Error:     solver.TotalError(m.mech),
			Valid:     m.mech.IsFinite(),
			Converged: solver.TotalError(m.mech) < m.solver.Config().Tolerance,
		}
	case m.animate:
		m.result = m.solver.Animate(m.mech, g, m.target)
	default:
		m.result = m.solver.Drag(m.mech, g, m.target)
	}
	m.record()
}

// settle re-runs the propagation from the active grab where it stands.
func (m *Model) settle() {
	g, ok := m.Grab()
	if !ok {
		return
	}
	m.result = m.solver.Propagate(m.mech, g.Element)
	m.record()
}

func (m *Model) toggleGround() {
	g, ok := m.Grab()
	if !ok {
		return
	}
	if g.Element.IsRod() {
		m.mech.ToggleRodGround(g.Element.RodID(), g.K == 1)
	} else {
		j := m.mech.Joint(g.Element.JointID())
		m.mech.SetGround(j.ID, !j.Ground)
	}
	m.commit()
}

// record appends the outcome of a drag to the error history and the undo
// history.
func (m *Model) record() {
	if g, ok := m.Grab(); ok {
		m.trail = append(m.trail, g.Position(m.mech))
		if len(m.trail) > trailCapacity {
			m.trail = m.trail[1:]
		}
	}
	m.errHistory = append(m.errHistory, m.result.Error)
	if len(m.errHistory) > historyCapacity {
		m.errHistory = m.errHistory[1:]
	}
	m.commit()
}

func (m *Model) snapshot() Snapshot {
	return Snapshot{Mech: m.mech.Clone(), Target: m.target, Result: m.result}
}

// commit drops any redo entries and pushes the current state.
func (m *Model) commit() {
	m.history = append(m.history[:m.cursor+1], m.snapshot())
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
	m.cursor = len(m.history) - 1
}

// scrub walks the undo history.
func (m *Model) scrub(dir int) {
	next := m.cursor + dir
	if next < 0 || next >= len(m.history) {
		return
	}
	m.cursor = next
	snap := m.history[m.cursor]
	m.mech = snap.Mech.Clone()
	m.target = snap.Target
	m.result = snap.Result
	m.trail = m.trail[:0]
}

// reset restores the mechanism the view was opened with.
func (m *Model) reset() {
	m.mech = m.initial.Clone()
	m.result = nil
	m.trail = m.trail[:0]
	m.errHistory = m.errHistory[:0]
	m.retarget()
	m.history = []Snapshot{m.snapshot()}
	m.cursor = 0
}

func (m *Model) resize(w, h int) {
	if w < 10 || h < 5 {
		return
	}
	m.width, m.height = w, h
	m.canvas = NewCanvas(w, h)
	m.fit()
}

// fit frames the whole mechanism.
func (m *Model) fit() {
	lo, hi := m.mech.Bounds()
	m.vp = FitViewport(lo, hi, m.canvas.PixelWidth(), m.canvas.PixelHeight(), canvasMargin)
}

func (m *Model) draw() {
	m.canvas.Clear()
	DrawMechanism(m.canvas, m.vp, m.mech)
	DrawTrail(m.canvas, m.vp, m.trail)
	if g, ok := m.Grab(); ok {
		x, y := m.vp.ToScreen(g.Position(m.mech))
		m.canvas.DrawCircle(x, y, 4)
		DrawMarker(m.canvas, m.vp, m.target)
	}
}

// View renders the canvas next to the status panel.
func (m Model) View() string {
	m.draw()
	canvasView := lipgloss.NewStyle().Foreground(m.theme.Linkage).Padding(1, 2).Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Foreground(m.theme.Title).Render(strings.ToUpper(m.name)) + "\n")
	s.WriteString(m.statusLine() + "\n\n")

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	if g, ok := m.Grab(); ok {
		selStyle := lipgloss.NewStyle().Foreground(m.theme.Selected).Bold(true)
		s.WriteString(labelStyle.Render("Grab") + selStyle.Render(g.String()) + "\n")
		row("Position", g.Position(m.mech).String())
	}
	row("Target", m.target.String())
	row("Mode", m.mode())
	row("Elements", fmt.Sprintf("%d rods, %d joints", len(m.mech.Rods), len(m.mech.Joints)))
	row("History", fmt.Sprintf("%d/%d", m.cursor+1, len(m.history)))
	if m.status != "" {
		row("Note", m.status)
	}

	if m.result != nil {
		s.WriteString("\n")
		row("Error", fmt.Sprintf("%.6g", m.result.Error))
		maxSweeps := m.solver.Config().MaxIterations
		if m.animate {
			maxSweeps *= m.solver.Config().AnimateSteps
		}
		row("Sweeps", fmt.Sprintf("%d ", m.result.Iterations)+ProgressBar(float64(m.result.Iterations)/float64(maxSweeps), 16))
		if len(m.result.Trace) > 0 {
			row("Trace", SparklineChart(m.result.Trace, 24))
		}
	}
	if len(m.errHistory) > 1 {
		chart := asciigraph.Plot(logScale(m.errHistory),
			asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("log10 error per drag"))
		s.WriteString("\n" + chart + "\n")
	}

	s.WriteString(keyHintStyle.Render(Separator(36) +
		"\n←↑↓→ drag  tab grab  a animate\nm rigid  g ground  r reset  q quit\n[ ] undo/redo  +/- zoom  ? help"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelStyle.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

func (m Model) statusLine() string {
	switch {
	case m.recording:
		return statusBroken.Render("● REC")
	case m.result == nil:
		return statusConverged.Render("READY")
	case !m.result.Valid:
		return statusBroken.Render("INVALID GEOMETRY")
	case m.result.Converged:
		return statusConverged.Render("CONVERGED")
	default:
		return statusStuck.Render("NOT CONVERGED")
	}
}

func (m Model) mode() string {
	switch {
	case m.rigid:
		return "rigid move"
	case m.animate:
		return "animate"
	}
	return "drag"
}

func logScale(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = math.Log10(math.Max(v, 1e-12))
	}
	return out
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Arrows/HJKL - Drag target (shift x5)║
║  Tab         - Next grab point       ║
║  Space       - Relax from grab       ║
║  A           - Toggle animate        ║
║  M           - Toggle rigid move     ║
║  G           - Toggle ground         ║
║  [ ]         - Undo / redo           ║
║  + - F       - Zoom in, out, fit     ║
║  T           - Cycle themes          ║
║  V           - Toggle GIF recording  ║
║  R           - Reset                 ║
║  Q           - Quit                  ║
╚══════════════════════════════════════╝
`

// captureFrame rasterizes the braille canvas into a two-color GIF frame.
func (m *Model) captureFrame() {
	const dot = 3
	imgW, imgH := m.canvas.PixelWidth()*dot, m.canvas.PixelHeight()*dot
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), color.Palette{color.Black, color.White})
	for y := 0; y < m.canvas.PixelHeight(); y++ {
		for x := 0; x < m.canvas.PixelWidth(); x++ {
			if !m.canvas.IsSet(x, y) {
				continue
			}
			for py := 0; py < dot; py++ {
				for px := 0; px < dot; px++ {
					img.SetColorIndex(x*dot+px, y*dot+py, 1)
				}
			}
		}
	}
	m.frames = append(m.frames, img)
}

func (m *Model) stopRecording() {
	if err := saveGIF(recordingPath, m.frames); err != nil {
		m.status = err.Error()
	} else {
		m.status = fmt.Sprintf("saved %d frames to %s", len(m.frames), recordingPath)
	}
	m.recording = false
	m.frames = nil
}

func saveGIF(path string, frames []*image.Paletted) error {
	if len(frames) == 0 {
		return fmt.Errorf("viz: no frames recorded")
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 10)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}

// Run starts the interactive view on the alternate screen.
func Run(name string, m *kin.Mechanism, s *solver.Solver, g *solver.Grab) error {
	model := NewModel(name, m, s)
	if g != nil {
		model.Select(*g)
	}
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
