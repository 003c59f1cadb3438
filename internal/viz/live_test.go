package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/orrery/internal/config"
)

func newLive(t *testing.T) Model {
	t.Helper()
	sys, err := config.GetPreset("single").Build(nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return NewModel(sys, "single", 60)
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestLiveTickSteps(t *testing.T) {
	m := newLive(t)
	m = update(m, TickMsg{})
	m = update(m, TickMsg{})
	if m.sys.Tick() != 2 {
		t.Errorf("expected 2 ticks, got %d", m.sys.Tick())
	}
	if len(m.history[m.planets[0]]) != 3 {
		t.Errorf("expected 3 history samples, got %d", len(m.history[m.planets[0]]))
	}
}

func TestLivePauseAndReset(t *testing.T) {
	m := newLive(t)
	m = update(m, key(" "))
	if m.running {
		t.Fatal("space should pause")
	}
	m = update(m, TickMsg{})
	if m.sys.Tick() != 0 {
		t.Errorf("paused model stepped to tick %d", m.sys.Tick())
	}

	m = update(m, key(" "))
	m = update(m, TickMsg{})
	m = update(m, key("r"))
	if m.sys.Tick() != 0 || len(m.history[m.planets[0]]) != 1 {
		t.Errorf("reset left tick %d and %d samples", m.sys.Tick(), len(m.history[m.planets[0]]))
	}
}

func TestLiveSelectionAndTheme(t *testing.T) {
	m := newLive(t)
	for i := 0; i < 5; i++ {
		m = update(m, key("tab"))
	}
	if m.selected != 1 {
		t.Errorf("expected selection to wrap to 1, got %d", m.selected)
	}

	m = update(m, key("t"))
	if m.theme != 1 {
		t.Errorf("expected theme 1, got %d", m.theme)
	}
	m.SetTheme("minimal")
	if Themes[m.theme].Name != "minimal" {
		t.Errorf("SetTheme picked %s", Themes[m.theme].Name)
	}

	zoom := m.camera.Zoom
	m = update(m, key("+"))
	if m.camera.Zoom <= zoom {
		t.Error("+ should zoom in")
	}
}

func TestLiveView(t *testing.T) {
	m := newLive(t)
	for i := 0; i < 5; i++ {
		m = update(m, TickMsg{})
	}
	out := m.View()
	for _, want := range []string{"SINGLE", "Blue", "Purple", "Tick", "Blue distance"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestPhaseDial(t *testing.T) {
	if got := PhaseDial(0, 4); got != "●───" {
		t.Errorf("phase 0: got %q", got)
	}
	if got := PhaseDial(-0.1, 4); got != "───●" {
		t.Errorf("negative phase: got %q", got)
	}
	if PhaseDial(1, 0) != "" {
		t.Error("zero width should render nothing")
	}
}

func TestPickerOpensPreset(t *testing.T) {
	p := NewPicker(nil)
	if len(p.presets) != 3 {
		t.Fatalf("expected 3 presets, got %d", len(p.presets))
	}
	next, _ := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	p = next.(Picker)
	next, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p = next.(Picker)
	if p.live == nil || cmd == nil {
		t.Fatal("enter should open the live view")
	}
	if p.live.name != p.presets[1] {
		t.Errorf("opened %s, want %s", p.live.name, p.presets[1])
	}
	if !strings.Contains(p.View(), "RUNNING") {
		t.Error("picker should delegate to the live view")
	}
}

func TestLiveCanvasDrawsBodies(t *testing.T) {
	m := newLive(t)
	cv := m.Canvas()
	sw, sh := cv.SubWidth(), cv.SubHeight()

	for _, b := range m.sys.Snapshot().Bodies {
		x, y, _, ok := m.camera.Project(b.Position(), sw, sh)
		if !ok {
			t.Errorf("%s projected off screen", b.Name)
			continue
		}
		if !cv.IsSet(x, y) {
			t.Errorf("%s not drawn at (%d,%d)", b.Name, x, y)
		}
	}
}
