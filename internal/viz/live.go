package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/liquid/internal/dynamo"
	"github.com/san-kum/liquid/internal/physics"
)

const (
	canvasWidth     = 48
	canvasHeight    = 20
	historyCapacity = 600
	maxBatch        = 1 << 16
)

// Stepper is the part of a thermalization run the live view drives.
type Stepper interface {
	Step() (dynamo.Record, bool)
	Done() bool
	Cycles() int
	System() *physics.System
}

type TickMsg time.Time

// Model steps a run in batches on every tick and renders the box,
// the counters and a short energy history.
type Model struct {
	run      Stepper
	title    string
	batch    int
	running  bool
	showHelp bool
	last     dynamo.Record
	energy   []float64
	canvas   *Canvas
	camera   *Camera
	interval time.Duration
}

func NewModel(run Stepper, title string, batch int) Model {
	if batch < 1 {
		batch = 1
	}
	return Model{
		run:      run,
		title:    title,
		batch:    batch,
		running:  true,
		energy:   make([]float64, 0, historyCapacity),
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		camera:   NewCamera(),
		interval: time.Second / 30,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "+", "=":
			m.batch = min(m.batch*2, maxBatch)
		case "-", "_":
			m.batch = max(m.batch/2, 1)
		case "s":
			m.advance(1)
		case "x":
			m.camera.RotateX(0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "z":
			m.camera.RotateZ(0.1)
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.advance(m.batch)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) advance(n int) {
	stepped := false
	for range n {
		rec, ok := m.run.Step()
		if !ok {
			break
		}
		m.last = rec
		stepped = true
	}
	if m.run.Done() {
		m.running = false
	}
	if !stepped {
		return
	}
	if len(m.energy) == historyCapacity {
		copy(m.energy, m.energy[1:])
		m.energy = m.energy[:historyCapacity-1]
	}
	m.energy = append(m.energy, m.last.Energy)
}

// Last is the most recent record, zero before the first step.
func (m Model) Last() dynamo.Record { return m.last }

func (m Model) Running() bool { return m.running }

func (m Model) Batch() int { return m.batch }

func (m Model) View() string {
	sys := m.run.System()
	m.canvas.Clear()
	RenderBox(m.canvas, sys.Config, sys.BoxLength, m.camera)
	left := Panel.Render(m.canvas.String())

	status := StatusRunning.Render("RUNNING")
	switch {
	case m.run.Done():
		status = StatusDone.Render("DONE")
	case !m.running:
		status = StatusPaused.Render("PAUSED")
	}

	progress := 1.0
	if c := m.run.Cycles(); c > 0 {
		progress = float64(m.last.Step) / float64(c)
	}

	var s strings.Builder
	s.WriteString(Title.Render(m.title) + "  " + status + "\n\n")
	s.WriteString(Metric("particles", "%d", sys.N) + "\n")
	s.WriteString(Metric("box", "%.4f", sys.BoxLength) + "\n")
	s.WriteString(Metric("step", "%d / %d", m.last.Step, m.run.Cycles()) + "\n")
	s.WriteString(Metric("energy", "%.4f", m.last.Energy) + "\n")
	s.WriteString(Metric("drmax", "%.5f", m.last.MaxDisplacement) + "\n")
	s.WriteString(Metric("ratio", "%.4f", m.last.Ratio) + "\n")
	s.WriteString(Metric("batch", "%d", m.batch) + "\n\n")
	s.WriteString(ProgressBar(progress, 30) + fmt.Sprintf(" %3.0f%%\n\n", progress*100))
	s.WriteString(SparklineChart(m.energy, 30) + "\n")
	s.WriteString(Separator(30) + "\n")
	s.WriteString(KeyHint.Render("space pause  s step  +/- batch\nx/y/z rotate  t theme  q quit"))

	view := lipgloss.JoinHorizontal(lipgloss.Top, left, Panel.Render(s.String()))
	if m.showHelp {
		return view + "\n\n" + m.help()
	}
	return view
}

func (m Model) help() string {
	lines := []string{
		"space  pause or resume",
		"s      single cycle",
		"+ / -  double or halve cycles per frame",
		"x y z  rotate the box",
		"t      cycle themes (" + strings.Join(ThemeNames(), ", ") + ")",
		"q      quit",
	}
	return Panel.Render(Title.Render("keys") + "\n" + strings.Join(lines, "\n"))
}
