package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Jungo-Phi/Slidep/internal/scene"
	"github.com/Jungo-Phi/Slidep/internal/solver"
)

var (
	menuTitle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuActive   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuActDesc  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuIdle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuIdleDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	menuKey      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

const (
	stateMenu = iota
	stateLive
)

// App lists the built-in scenes and opens the drag view on the chosen one.
type App struct {
	state         int
	cursor        int
	scenes        []string
	solver        *solver.Solver
	err           error
	width, height int
	live          Model
}

func NewApp(s *solver.Solver) App {
	return App{
		state:  stateMenu,
		scenes: scene.ListPresets(),
		solver: s,
	}
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		a.width, a.height = ws.Width, ws.Height
	}
	if a.state == stateLive {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
			a.state = stateMenu
			return a, nil
		}
		next, cmd := a.live.Update(msg)
		a.live = next.(Model)
		return a, cmd
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.scenes)-1 {
			a.cursor++
		}
	case "enter", " ":
		return a.open()
	}
	return a, nil
}

func (a App) open() (App, tea.Cmd) {
	if len(a.scenes) == 0 {
		return a, nil
	}
	name := a.scenes[a.cursor]
	sc, err := scene.Preset(name)
	if err == nil {
		m, buildErr := sc.Build()
		if buildErr == nil {
			a.live = NewModel(name, m, a.solver)
			if a.width > 0 {
				next, _ := a.live.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
				a.live = next.(Model)
			}
			a.state, a.err = stateLive, nil
			return a, a.live.Init()
		}
		err = buildErr
	}
	a.err = err
	return a, nil
}

func (a App) View() string {
	if a.state == stateLive {
		return a.live.View()
	}

	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("SLIDEP") + "\n    " + menuSub.Render("planar linkage relaxation") +
		"\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range a.scenes {
		desc := ""
		if sc, ok := scene.Presets[name]; ok {
			desc = sc.Description
		}
		if len(desc) > 40 {
			desc = desc[:37] + "..."
		}
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"),
				menuActive.Render(fmt.Sprintf("%-14s", name)), menuActDesc.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuIdle.Render(fmt.Sprintf("  %-14s", name)), menuIdleDesc.Render(desc)))
		}
	}
	if a.err != nil {
		b.WriteString("\n    " + statusBroken.Render(a.err.Error()) + "\n")
	}
	b.WriteString("\n    " + menuKey.Render("j/k") + menuIdle.Render(" navigate  ") +
		menuKey.Render("enter") + menuIdle.Render(" open  ") +
		menuKey.Render("esc") + menuIdle.Render(" back  ") +
		menuKey.Render("q") + menuIdle.Render(" quit") + "\n")
	return b.String()
}

// RunInteractive starts the scene menu on the alternate screen.
func RunInteractive(s *solver.Solver) error {
	_, err := tea.NewProgram(NewApp(s), tea.WithAltScreen()).Run()
	return err
}
