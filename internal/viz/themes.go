package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Theme is the color scheme for styled output and chart series.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Series  []asciigraph.AnsiColor
}

var (
	ThemeOrchard = Theme{
		Name:    "orchard",
		Primary: lipgloss.Color("#ff5f87"),
		Accent:  lipgloss.Color("#87d75f"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#808080"),
		Success: lipgloss.Color("#5fd75f"),
		Warning: lipgloss.Color("#ffaf00"),
		Error:   lipgloss.Color("#ff0000"),
		Series: []asciigraph.AnsiColor{
			asciigraph.Crimson, asciigraph.Coral, asciigraph.Gold,
			asciigraph.Green, asciigraph.SkyBlue, asciigraph.Purple,
		},
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Primary: lipgloss.Color("#0077be"),
		Accent:  lipgloss.Color("#ffd700"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Success: lipgloss.Color("#00ff88"),
		Warning: lipgloss.Color("#ffcc00"),
		Error:   lipgloss.Color("#ff4444"),
		Series: []asciigraph.AnsiColor{
			asciigraph.Navy, asciigraph.Blue, asciigraph.Teal,
			asciigraph.Cyan, asciigraph.SkyBlue, asciigraph.SeaGreen,
		},
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Success: lipgloss.Color("#00ff00"),
		Warning: lipgloss.Color("#ffaa00"),
		Error:   lipgloss.Color("#ff0000"),
		Series:  []asciigraph.AnsiColor{asciigraph.Default},
	}

	CurrentTheme = ThemeOrchard

	Themes = []Theme{
		ThemeOrchard,
		ThemeOcean,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeOrchard
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
}

// SeriesColor cycles through the theme's chart colors.
func (t Theme) SeriesColor(i int) asciigraph.AnsiColor {
	if len(t.Series) == 0 {
		return asciigraph.Default
	}
	return t.Series[i%len(t.Series)]
}
