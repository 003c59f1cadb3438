package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	canvas  lipgloss.Style
	panel   lipgloss.Style
	header  lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	active  lipgloss.Style
	running lipgloss.Style
	paused  lipgloss.Style
	warn    lipgloss.Style
	graph   lipgloss.Style
	help    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		canvas: lipgloss.NewStyle().Padding(0, 1),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Border).
			Padding(0, 2).
			Width(50),
		header:  lipgloss.NewStyle().Foreground(t.Title).Bold(true),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		active:  lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		running: lipgloss.NewStyle().Foreground(t.Title).Bold(true),
		paused:  lipgloss.NewStyle().Foreground(t.Warn).Bold(true),
		warn:    lipgloss.NewStyle().Foreground(t.Warn),
		graph:   lipgloss.NewStyle().Foreground(t.Accent),
		help:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true).MarginTop(1),
	}
}

// PhaseDial renders where phase sits within one revolution as a bar of
// width cells.
func PhaseDial(phase float64, width int) string {
	if width < 1 {
		return ""
	}
	frac := math.Mod(phase, 2*math.Pi) / (2 * math.Pi)
	if frac < 0 {
		frac++
	}
	pos := int(frac * float64(width))
	if pos >= width {
		pos = width - 1
	}
	return strings.Repeat("─", pos) + "●" + strings.Repeat("─", width-pos-1)
}

// Swatch is a one-cell block in the body's tint.
func Swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("■")
}
