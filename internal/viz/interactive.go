package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-kit/log"

	"github.com/san-kum/orrery/internal/config"
)

var presetInfo = map[string]string{
	"binary":   "two suns, eight planets",
	"single":   "one sun, four planets",
	"circular": "circular orbits",
}

// Picker lists the built-in presets and opens the chosen one live.
type Picker struct {
	presets []string
	cursor  int
	live    *Model
	err     error
	logger  log.Logger
}

func NewPicker(logger log.Logger) Picker {
	return Picker{presets: config.ListPresets(), logger: logger}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.live != nil {
		next, cmd := p.live.Update(msg)
		live := next.(Model)
		p.live = &live
		return p, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.presets)-1 {
			p.cursor++
		}
	case "enter", " ":
		return p.start()
	}
	return p, nil
}

func (p Picker) start() (tea.Model, tea.Cmd) {
	cfg := config.GetPreset(p.presets[p.cursor])
	sys, err := cfg.Build(p.logger)
	if err != nil {
		p.err = err
		return p, nil
	}
	live := NewModel(sys, cfg.Name, float64(cfg.FPS))
	p.live = &live
	return p, live.Init()
}

func (p Picker) View() string {
	if p.live != nil {
		return p.live.View()
	}

	title := lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	sub := lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	cur := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	desc := lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))

	var b strings.Builder
	b.WriteString("\n    " + title.Render("ORRERY") + "\n    " + sub.Render("orbital kinematics") + "\n\n")
	for i, name := range p.presets {
		if i == p.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", title.Render("▸"), cur.Render(fmt.Sprintf("%-10s", name)), desc.Render(presetInfo[name])))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", sub.Render(fmt.Sprintf("%-10s", name)), sub.Render(presetInfo[name])))
		}
	}
	if p.err != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Render(p.err.Error()) + "\n")
	}
	b.WriteString("\n    " + sub.Render("j/k navigate  enter open  q quit") + "\n")
	return b.String()
}

func RunPicker(logger log.Logger) error {
	_, err := tea.NewProgram(NewPicker(logger), tea.WithAltScreen()).Run()
	return err
}
