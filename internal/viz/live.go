package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/projshift/internal/config"
	"github.com/san-kum/projshift/internal/projection"
	"github.com/san-kum/projshift/internal/sim"
	"github.com/san-kum/projshift/internal/transition"
)

const (
	canvasWidth     = 60
	canvasHeight    = 20
	historyCapacity = 240
	durationStep    = 0.25
	maxDuration     = 10.0
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(44)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// TickMsg drives one viewer frame. Gen ties it to the viewer that armed it.
type TickMsg struct {
	Gen int
	At  time.Time
}

// ButtonLabel is the trigger caption for a camera currently in mode.
func ButtonLabel(mode projection.Mode) string {
	if mode == projection.Orthographic {
		return "Orthographic -> Perspective"
	}
	return "Perspective -> Orthographic"
}

// Model is the terminal viewer. It owns the camera and its transitioner and
// forwards wall-clock frame deltas into Tick.
type Model struct {
	name     string
	cam      *projection.Camera
	tr       *transition.Transitioner
	clock    sim.Clock
	interval time.Duration
	gen      int

	canvas *Canvas
	scene  *Scene
	view   projection.Matrix

	duration   float64
	curveNames []string
	curveIdx   int

	last     transition.Frame
	eased    []float64
	showHelp bool
}

// NewModel builds a viewer for cfg. name is shown in the header.
func NewModel(cfg *config.Config, name string) (Model, error) {
	tr, cam, err := cfg.NewTransitioner()
	if err != nil {
		return Model{}, err
	}
	return newModel(cfg, name, cam, tr, sim.NewWallClock()), nil
}

func newModel(cfg *config.Config, name string, cam *projection.Camera, tr *transition.Transitioner, clock sim.Clock) Model {
	curve := cfg.Curve
	if curve == "" {
		curve = transition.DefaultCurveName
	}
	names := transition.CurveNames()
	idx := 0
	for i, n := range names {
		if n == curve {
			idx = i
		}
	}
	fps := cfg.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	return Model{
		name:       name,
		cam:        cam,
		tr:         tr,
		clock:      clock,
		interval:   time.Second / time.Duration(fps),
		canvas:     NewCanvas(canvasWidth, canvasHeight),
		scene:      NewDemoScene(),
		view:       DefaultView(),
		duration:   cfg.Duration,
		curveNames: names,
		curveIdx:   idx,
		eased:      make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg{Gen: gen, At: t} })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "t", "enter", " ":
			m.trigger()
		case "c":
			m.tr.Cancel()
		case "+", "=":
			m.duration = min(m.duration+durationStep, maxDuration)
		case "-", "_":
			m.duration = max(m.duration-durationStep, 0)
		case "n":
			m.cycleCurve()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		// The clock runs even while idle so the first tick after a trigger
		// does not see the whole idle period as one delta.
		dt := m.clock.Next()
		if f, ok := m.tr.Tick(dt); ok {
			m.record(f)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) trigger() {
	if m.tr.Running() {
		return
	}
	m.eased = m.eased[:0]
	m.tr.StartTransition(m.duration)
}

// cycleCurve moves to the next named curve. Ignored mid-transition.
func (m *Model) cycleCurve() {
	if m.tr.Running() || len(m.curveNames) == 0 {
		return
	}
	m.curveIdx = (m.curveIdx + 1) % len(m.curveNames)
	if c, err := transition.LookupCurve(m.curveNames[m.curveIdx]); err == nil {
		m.tr.SetCurve(c)
	}
}

func (m *Model) record(f transition.Frame) {
	m.last = f
	m.eased = append(m.eased, f.Eased)
	if len(m.eased) > historyCapacity {
		m.eased = m.eased[1:]
	}
}

func (m Model) curveName() string {
	if len(m.curveNames) == 0 {
		return transition.DefaultCurveName
	}
	return m.curveNames[m.curveIdx]
}

func (m Model) View() string {
	Render(m.canvas, m.scene, m.view, m.cam.ProjectionMatrix())
	canvasView := canvasStyle.Render(WireStyle.Render(m.canvas.String()))

	var s strings.Builder
	s.WriteString(Title.Render(strings.ToUpper(m.name)) + "\n\n")

	state := m.tr.State()
	if m.tr.Running() {
		s.WriteString(ButtonBusy.Render(ButtonLabel(state.StartMode)) + "\n")
		s.WriteString(StatusRunning.Render("TRANSITIONING") + "\n\n")
	} else {
		s.WriteString(Button.Render(ButtonLabel(m.cam.Mode())) + "\n")
		s.WriteString(StatusIdle.Render(strings.ToUpper(m.cam.Mode().String())) + "\n\n")
	}

	s.WriteString(ProgressBar(state.Elapsed, 30) + "\n\n")

	if len(m.eased) > 1 {
		chart := asciigraph.Plot(m.eased, asciigraph.Height(4), asciigraph.Width(30),
			asciigraph.LowerBound(0), asciigraph.UpperBound(1), asciigraph.Caption("Eased"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	} else {
		s.WriteString(Sparkline(m.eased, 30) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Mode", m.cam.Mode().String())
	row("Duration", fmt.Sprintf("%.2fs", m.duration))
	row("Curve", m.curveName())
	row("Elapsed", fmt.Sprintf("%.3f", state.Elapsed))
	row("Eased", fmt.Sprintf("%.3f", m.last.Eased))
	row("Custom", fmt.Sprintf("%v", m.cam.IsCustom()))

	s.WriteString(helpStyle.Render("─────────────────────\nT/Enter:Switch C:Cancel\n+/-:Duration N:Curve\n?:Help Q:Quit"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  T/Enter  - Start transition         ║
║  C        - Cancel (jump to target)  ║
║  + / -    - Change duration          ║
║  N        - Cycle easing curve       ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// RunLive runs the viewer full screen until the user quits.
func RunLive(cfg *config.Config, name string) error {
	m, err := NewModel(cfg, name)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
