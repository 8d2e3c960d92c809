package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	width  = 80
	height = 24
	fps    = 30
)

type TickMsg time.Time

// pointSource scenes are framed by fitting the camera to their points.
type pointSource interface {
	Points() []r3.Vec
}

// Model replays a scene. It never steps a simulation itself.
type Model struct {
	scene    Scene
	camera   *Camera
	theme    int
	frame    int
	speed    int
	running  bool
	showHelp bool
}

func NewModel(scene Scene) Model {
	cam := NewCamera()
	if fit, ok := scene.(pointSource); ok {
		cam.Fit(fit.Points())
	}
	return Model{
		scene:   scene,
		camera:  cam,
		speed:   1,
		running: true,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Frame is the index currently shown.
func (m Model) Frame() int { return m.frame }

func (m Model) Running() bool { return m.running }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			if m.running && m.frame == m.last() {
				m.frame = 0
			}
		case "r":
			m.frame = 0
		case "[":
			m.running = false
			m.seek(-1)
		case "]":
			m.running = false
			m.seek(1)
		case ".", ">":
			m.speed = min(m.speed*2, 64)
		case ",", "<":
			m.speed = max(m.speed/2, 1)
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
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
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.seek(m.speed)
			if m.frame == m.last() {
				m.running = false
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) last() int { return m.scene.Len() - 1 }

func (m *Model) seek(delta int) {
	m.frame = max(0, min(m.frame+delta, m.last()))
}

func (m Model) View() string {
	theme := Themes[m.theme]
	canvasView := canvasStyle.Render(m.scene.Render(m.frame, m.camera, theme, width, height))

	var s strings.Builder
	header := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).MarginBottom(1)
	s.WriteString(header.Render(strings.ToUpper(m.scene.Name())) + "\n")

	status := "PLAYING"
	if !m.running {
		status = "PAUSED"
	}
	fmt.Fprintf(&s, "%s x%d\n", status, m.speed)
	progress := 0.0
	if m.last() > 0 {
		progress = float64(m.frame) / float64(m.last())
	}
	s.WriteString(ProgressBar(progress, 30) + "\n\n")

	caption, series := m.scene.Series()
	if m.frame > 0 {
		chart := asciigraph.Plot(series[:m.frame+1], asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption(caption))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d/%d", m.frame, m.last())) + "\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.4gs", m.scene.Time(m.frame))) + "\n")
	for _, kv := range m.scene.Stats(m.frame) {
		s.WriteString(labelStyle.Render(kv[0]) + valueStyle.Render(kv[1]) + "\n")
	}
	s.WriteString(labelStyle.Render("Theme") + valueStyle.Render(theme.Name) + "\n")

	if m.showHelp {
		s.WriteString(helpStyle.Render("SPACE pause   R restart   Q quit\n[ ] step      < > speed\nX Y rotate    + - zoom\nT theme       ? help"))
	} else {
		s.WriteString(helpStyle.Render("? help"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

// Run replays scene in the terminal until the user quits.
func Run(scene Scene) error {
	if scene.Len() == 0 {
		return fmt.Errorf("scene %s has no frames", scene.Name())
	}
	_, err := tea.NewProgram(NewModel(scene), tea.WithAltScreen()).Run()
	return err
}
