package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the canvas and the selection.
type Theme struct {
	Name     string
	Linkage  lipgloss.Color
	Selected lipgloss.Color
	Title    lipgloss.Color
	Muted    lipgloss.Color
}

var (
	ThemeBlueprint = Theme{
		Name:     "blueprint",
		Linkage:  lipgloss.Color("#00ccff"),
		Selected: lipgloss.Color("#ffff00"),
		Title:    lipgloss.Color("#00ffff"),
		Muted:    lipgloss.Color("#446688"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Linkage:  lipgloss.Color("#00ff00"),
		Selected: lipgloss.Color("#88ff88"),
		Title:    lipgloss.Color("#00cc00"),
		Muted:    lipgloss.Color("#005500"),
	}

	ThemeMinimal = Theme{
		Name:     "minimal",
		Linkage:  lipgloss.Color("#ffffff"),
		Selected: lipgloss.Color("#0088ff"),
		Title:    lipgloss.Color("#cccccc"),
		Muted:    lipgloss.Color("#888888"),
	}

	ThemeSunset = Theme{
		Name:     "sunset",
		Linkage:  lipgloss.Color("#feca57"),
		Selected: lipgloss.Color("#ff9ff3"),
		Title:    lipgloss.Color("#ff6b6b"),
		Muted:    lipgloss.Color("#8b6b8c"),
	}

	Themes = []Theme{
		ThemeBlueprint,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, or the blueprint theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeBlueprint
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
