package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/system"
)

const (
	canvasWidth     = 80
	canvasHeight    = 30
	historyCapacity = 300
)

type TickMsg time.Time

// Model steps a system once per tick and draws it on a braille canvas
// beside a panel of per-planet readouts.
type Model struct {
	sys      *system.System
	name     string
	dt       float64
	interval time.Duration

	bodies  []system.Body
	planets []system.BodyID
	paths   map[system.BodyID][]r3.Vec

	canvas   *Canvas
	camera   *Camera
	running  bool
	selected int
	theme    int
	styles   styles
	history  map[system.BodyID][]float64
	clamps   int
}

// NewModel builds a live view over sys. fps sets the tick rate; each tick
// advances the system by the frame-relative dt for that rate.
func NewModel(sys *system.System, name string, fps float64) Model {
	if !(fps > 0) {
		fps = 60
	}
	m := Model{
		sys:      sys,
		name:     name,
		dt:       60 / fps,
		interval: time.Duration(float64(time.Second) / fps),
		bodies:   sys.Bodies(),
		planets:  sys.Planets(),
		paths:    sys.Paths(),
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		camera:   NewCamera(),
		running:  true,
		history:  make(map[system.BodyID][]float64),
	}
	m.styles = newStyles(Themes[m.theme])

	var pts []r3.Vec
	for _, p := range m.paths {
		pts = append(pts, p...)
	}
	for _, b := range m.bodies {
		if b.Kind == system.KindStar {
			pts = append(pts, b.Position)
		}
	}
	m.camera.Fit(pts)
	m.record()
	return m
}

// SetTheme selects a theme by name.
func (m *Model) SetTheme(name string) {
	m.theme = ThemeIndex(name)
	m.styles = newStyles(Themes[m.theme])
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			if len(m.planets) > 0 {
				m.selected = (m.selected + 1) % len(m.planets)
			}
		case "shift+tab":
			if len(m.planets) > 0 {
				m.selected = (m.selected + len(m.planets) - 1) % len(m.planets)
			}
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
			m.styles = newStyles(Themes[m.theme])
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "0":
			m.camera.ResetView()
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	rep := m.sys.Step(m.dt)
	m.clamps += len(rep.Clamped)
	m.record()
}

func (m *Model) record() {
	snap := m.sys.Snapshot()
	for _, b := range snap.Bodies {
		if b.Kind != system.KindPlanet {
			continue
		}
		h := append(m.history[b.ID], b.Distance)
		if len(h) > historyCapacity {
			h = h[1:]
		}
		m.history[b.ID] = h
	}
}

func (m *Model) reset() {
	m.sys.Reset()
	m.history = make(map[system.BodyID][]float64)
	m.clamps = 0
	m.record()
}

func (m *Model) draw(snap system.Snapshot) {
	m.canvas.Clear()
	sw, sh := m.canvas.SubWidth(), m.canvas.SubHeight()

	for _, id := range m.planets {
		ink := Themes[m.theme].Path
		if m.isSelected(id) {
			ink = lipgloss.Color(m.bodies[id].Tint.String())
		}
		DrawPolyline(m.canvas, m.camera, m.paths[id], true, ink)
	}

	for _, b := range snap.Bodies {
		x, y, _, ok := m.camera.Project(b.Position(), sw, sh)
		if !ok {
			continue
		}
		body := m.bodies[b.ID]
		r := 1
		if body.Kind == system.KindStar {
			r = 2 + int(body.Scale)
		}
		m.canvas.FillDisc(x, y, r, lipgloss.Color(body.Tint.String()))
	}
}

// Canvas draws the current state and returns the raster.
func (m Model) Canvas() *Canvas {
	m.draw(m.sys.Snapshot())
	return m.canvas
}

func (m Model) isSelected(id system.BodyID) bool {
	return len(m.planets) > 0 && m.planets[m.selected] == id
}

func (m Model) View() string {
	snap := m.sys.Snapshot()
	m.draw(snap)
	st := m.styles

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.name)) + "\n")
	if m.running {
		s.WriteString(st.running.Render("RUNNING"))
	} else {
		s.WriteString(st.paused.Render("PAUSED"))
	}
	s.WriteString("\n\n")
	s.WriteString(st.label.Render("Tick") + st.value.Render(fmt.Sprintf("%d", snap.Tick)) + "\n")
	s.WriteString(st.label.Render("Time") + st.value.Render(fmt.Sprintf("%.1f", snap.Time)) + "\n")
	s.WriteString(st.label.Render("Bodies") + st.value.Render(fmt.Sprintf("%d stars, %d planets", m.sys.NumStars(), m.sys.NumPlanets())) + "\n")
	if m.clamps > 0 {
		s.WriteString(st.label.Render("Clamped") + st.warn.Render(fmt.Sprintf("%d", m.clamps)) + "\n")
	}
	s.WriteString("\n")

	for _, id := range m.planets {
		b := snap.Bodies[id]
		line := fmt.Sprintf("%-8s %7.2f %s", b.Name, b.Distance, PhaseDial(b.Phase, 10))
		if m.isSelected(id) {
			s.WriteString(Swatch(m.bodies[id].Tint.String()) + " " + st.active.Render("> "+line) + "\n")
		} else {
			s.WriteString(Swatch(m.bodies[id].Tint.String()) + "   " + st.value.Render(line) + "\n")
		}
	}

	if len(m.planets) > 0 {
		id := m.planets[m.selected]
		if h := m.history[id]; len(h) > 1 {
			el := m.selectedElements()
			chart := asciigraph.Plot(h,
				asciigraph.Height(5),
				asciigraph.Width(26),
				asciigraph.Precision(1),
				asciigraph.LowerBound(el.Periapsis()),
				asciigraph.UpperBound(el.Apoapsis()),
				asciigraph.Caption(m.bodies[id].Name+" distance"))
			s.WriteString("\n" + st.graph.Render(chart) + "\n")
		}
	}

	s.WriteString(st.help.Render("space:pause r:reset tab:select t:theme\nx/X y/Y:rotate +/-:zoom 0:view q:quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		st.canvas.Render(m.canvas.String()),
		st.panel.Render(s.String()))
}

func (m Model) selectedElements() orbit.Elements {
	o, _ := m.bodies[m.planets[m.selected]].Orbit()
	return o.Elements
}

// Run opens the live view in the alternate screen until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
