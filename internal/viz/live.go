package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/drysim/internal/metrics"
	"github.com/san-kum/drysim/internal/radial"
)

const (
	frameRate       = 30
	historyCapacity = 600
	maxStepsPerTick = 4096
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// LiveModel steps a solver a few steps per frame and draws the field.
type LiveModel struct {
	name         string
	params       radial.Params
	solver       *radial.Solver
	moisture     *metrics.MoistureRemaining
	bounds       *metrics.Bounds
	recorder     *metrics.Recorder
	running      bool
	stepsPerTick int
	showDisk     bool
	showHelp     bool
	remaining    []float64
	opts         ProfileOptions
}

func NewLiveModel(name string, p radial.Params) (LiveModel, error) {
	m := LiveModel{
		name:         name,
		params:       p,
		running:      true,
		stepsPerTick: 12,
		opts:         ProfileOptions{Width: 56, Height: 14},
	}
	if err := m.reset(); err != nil {
		return LiveModel{}, err
	}
	return m, nil
}

func (m *LiveModel) reset() error {
	s, err := radial.New(m.params)
	if err != nil {
		return err
	}
	grid := s.Grid()
	m.moisture = metrics.NewMoistureRemaining(grid, m.params.Initial)
	m.bounds = metrics.NewBounds(m.params.Initial)
	m.recorder = metrics.NewRecorder(m.moisture, m.bounds)
	s.AddObserver(m.recorder)
	m.solver = s
	m.remaining = m.remaining[:0]
	return nil
}

func (m LiveModel) Init() tea.Cmd { return tick() }

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			if err := m.reset(); err == nil {
				m.running = true
			}
		case "+", "=":
			m.stepsPerTick = min(m.stepsPerTick*2, maxStepsPerTick)
		case "-", "_":
			m.stepsPerTick = max(m.stepsPerTick/2, 1)
		case "d":
			m.showDisk = !m.showDisk
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *LiveModel) advance() {
	for i := 0; i < m.stepsPerTick; i++ {
		if !m.solver.Step() {
			m.running = false
			break
		}
	}
	m.remaining = append(m.remaining, m.moisture.Value()*100)
	if len(m.remaining) > historyCapacity {
		m.remaining = m.remaining[1:]
	}
}

// Solver exposes the stepped solver, e.g. to persist the result on exit.
func (m LiveModel) Solver() *radial.Solver { return m.solver }

func (m LiveModel) Name() string { return m.name }

// Metrics returns the current value of every metric of the session.
func (m LiveModel) Metrics() map[string]float64 { return m.recorder.Values() }

func (m LiveModel) status() string {
	switch {
	case m.solver.Done():
		return AccentStyle().Render("DONE")
	case m.running:
		return AccentStyle().Render("RUNNING")
	default:
		return WarningStyle().Render("PAUSED")
	}
}

func (m LiveModel) View() string {
	s := m.solver
	f := s.Field()
	elapsedH := s.Elapsed() / radial.SecondsPerHour

	var left string
	if m.showDisk {
		c := NewCanvas(m.opts.Width/2, m.opts.Height+2)
		if err := c.DrawDisk(s.Grid(), f); err != nil {
			left = ErrorStyle().Render(err.Error())
		} else {
			left = c.String()
		}
	} else {
		left = FieldPlot(f, m.opts, fmt.Sprintf("Concentration (%%) at %.2fh", elapsedH))
	}

	var b strings.Builder
	b.WriteString(TitleStyle().Render(strings.ToUpper(m.name)) + "  " + m.status() + "\n\n")
	b.WriteString(KeyValue("Time", fmt.Sprintf("%.2f h", elapsedH)) + "\n")
	b.WriteString(KeyValue("Step", fmt.Sprintf("%d/%d", s.Completed(), s.TotalSteps())) + "\n")
	b.WriteString(KeyValue("Steps/frame", fmt.Sprintf("%d", m.stepsPerTick)) + "\n")
	b.WriteString(KeyValue("Center", fmt.Sprintf("%.2f%%", f[0]*100)) + "\n")
	b.WriteString(KeyValue("Remaining", fmt.Sprintf("%.2f%%", m.moisture.Value()*100)) + "\n")

	lambda := radial.StabilityNumber(m.params)
	stab := fmt.Sprintf("%.4g", lambda)
	if lambda > radial.StabilityLimit {
		stab = ErrorStyle().Render(stab + " unstable")
	}
	b.WriteString(KeyValue("D·dt/dr²", stab) + "\n")
	b.WriteString(KeyValue("In bounds", fmt.Sprintf("%.1f%%", m.bounds.Value()*100)) + "\n")

	hours := s.Snapshots().Hours()
	captured := make([]string, len(hours))
	for i, h := range hours {
		captured[i] = fmt.Sprintf("%d", h)
	}
	b.WriteString(KeyValue("Checkpoints", strings.Join(captured, " ")) + "\n\n")

	b.WriteString(Sparkline(m.remaining, 30) + "\n")
	frac := 0.0
	if s.TotalSteps() > 0 {
		frac = float64(s.Completed()) / float64(s.TotalSteps())
	}
	b.WriteString(ProgressBar(frac, 30) + "\n")
	b.WriteString(HelpStyle().Render("\nSP:Pause R:Reset Q:Quit\n+/-:Speed D:Disk T:Theme ?:Help"))

	view := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Padding(1, 2).Render(left),
		PanelStyle().Width(44).Render(b.String()),
	)
	if m.showHelp {
		return helpOverlay + "\n\n" + view
	}
	return view
}

const helpOverlay = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Reset to initial field   ║
║  Q        - Quit                     ║
║  + / -    - Double/halve speed       ║
║  D        - Toggle cross-section     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`
