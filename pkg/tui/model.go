// Package tui renders a materialized trace as an interactive terminal
// player: pseudocode with the active line highlighted, the node and
// edge classifications of the current step, the queue and distance
// tables, and the step's explanation in either tier.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Aryan-jain07/path-weaver/pkg/engine"
	"github.com/Aryan-jain07/path-weaver/pkg/graph"
	"github.com/Aryan-jain07/path-weaver/pkg/playback"
	"github.com/Aryan-jain07/path-weaver/pkg/trace"
)

type tickMsg time.Time

// Model is the bubbletea model of the player. All playback state lives
// in the controller; the model only holds display concerns.
type Model struct {
	ctrl  *playback.Controller
	graph *graph.Graph
	tr    *trace.Trace
	code  []string
	reach int // nodes reachable from the source

	progress progress.Model
	plain    bool // explanation tier toggle
	width    int
	height   int
	quitting bool
}

// Option adjusts the player before it starts.
type Option func(*Model)

// WithSpeed sets the initial playback multiplier, snapped to the
// nearest selectable level.
func WithSpeed(mult float64) Option {
	return func(m *Model) { m.ctrl.SetSpeed(mult) }
}

// NewModel builds the player positioned on the first step, paused.
func NewModel(g *graph.Graph, tr *trace.Trace, opts ...Option) Model {
	prog := progress.New(progress.WithGradient("#874BFD", "#00CCFF"))
	prog.Width = 40
	m := Model{
		ctrl:     playback.NewController(tr),
		graph:    g,
		tr:       tr,
		code:     engine.Pseudocode(engine.Algorithm(tr.Algorithm)),
		reach:    len(g.Reachable(tr.Source)),
		progress: prog,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Run starts the player and blocks until the user quits.
func Run(g *graph.Graph, tr *trace.Trace, opts ...Option) error {
	_, err := tea.NewProgram(NewModel(g, tr, opts...), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.ctrl.Interval(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if w := msg.Width / 3; w > 10 {
			m.progress.Width = w
		}
		return m, nil

	case tickMsg:
		if m.ctrl.Advance() {
			return m, m.tick()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case " ":
			m.ctrl.TogglePlay()
			if m.ctrl.Playing() {
				return m, m.tick()
			}
		case "right", "l", "n":
			m.ctrl.Pause()
			m.ctrl.StepForward()
		case "left", "h", "p":
			m.ctrl.Pause()
			m.ctrl.StepBack()
		case "g", "home":
			m.ctrl.Rewind()
		case "G", "end":
			m.ctrl.End()
		case "e":
			m.plain = !m.plain
		case "+", "=":
			m.ctrl.SpeedUp()
		case "-":
			m.ctrl.SlowDown()
		}
	}
	return m, nil
}
