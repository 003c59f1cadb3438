package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the chrome of the live view. Bodies always use their own
// tint.
type Theme struct {
	Name   string
	Title  lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Accent lipgloss.Color
	Warn   lipgloss.Color
	Border lipgloss.Color
	// Path inks orbit polylines when dimmed paths are enabled.
	Path lipgloss.Color
}

var Themes = []Theme{
	{
		Name:   "night",
		Title:  lipgloss.Color("#00ffff"),
		Text:   lipgloss.Color("#e0e0ff"),
		Muted:  lipgloss.Color("#666688"),
		Accent: lipgloss.Color("#ff00ff"),
		Warn:   lipgloss.Color("#ffaa00"),
		Border: lipgloss.Color("#444466"),
		Path:   lipgloss.Color("#333355"),
	},
	{
		Name:   "retro",
		Title:  lipgloss.Color("#88ff88"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Accent: lipgloss.Color("#ccffcc"),
		Warn:   lipgloss.Color("#ffff00"),
		Border: lipgloss.Color("#00aa00"),
		Path:   lipgloss.Color("#004400"),
	},
	{
		Name:   "minimal",
		Title:  lipgloss.Color("#ffffff"),
		Text:   lipgloss.Color("#cccccc"),
		Muted:  lipgloss.Color("#888888"),
		Accent: lipgloss.Color("#0088ff"),
		Warn:   lipgloss.Color("#ffaa00"),
		Border: lipgloss.Color("#555555"),
		Path:   lipgloss.Color("#444444"),
	},
	{
		Name:   "sunset",
		Title:  lipgloss.Color("#ff6b6b"),
		Text:   lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#8b6b8c"),
		Accent: lipgloss.Color("#feca57"),
		Warn:   lipgloss.Color("#ff4757"),
		Border: lipgloss.Color("#5a3b5c"),
		Path:   lipgloss.Color("#4a2b4c"),
	},
}

// ThemeIndex returns the position of the named theme, or 0.
func ThemeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
