// Package tui implements the interactive demo: one pane per scenario, each
// switching its own status region.
package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/pagestatus/cmd/pagestatus/internal/config"
	"github.com/go-drift/pagestatus/cmd/pagestatus/internal/scene"
	"github.com/go-drift/pagestatus/cmd/pagestatus/internal/templates"
	"github.com/go-drift/pagestatus/pkg/graphics"
)

// Options configure the demo.
type Options struct {
	// Size is the root size of every pane's view tree.
	Size graphics.Size
	// Tick advances every pane when non-zero.
	Tick time.Duration
	// Logger receives transition logs. It must not write to the terminal.
	Logger *slog.Logger
}

type tickMsg time.Time

// copiedMsg reports the outcome of a clipboard copy.
type copiedMsg struct {
	pane string
	err  error
}

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// Model is the demo state. Scenes are built on the goroutine calling New,
// which must be the one running the program.
type Model struct {
	panes    []*scene.Scene
	focus    int
	tick     time.Duration
	width    int
	height   int
	showDump bool
	dumpView viewport.Model
	message  string
	err      error
}

// New builds one pane per scenario.
func New(scenarios []*config.Scenario, opts Options) (*Model, error) {
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios to show")
	}
	m := &Model{
		tick:     opts.Tick,
		dumpView: viewport.New(80, 20),
	}
	for _, sc := range scenarios {
		s, err := scene.Build(sc, scene.Options{Size: opts.Size, Logger: opts.Logger})
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
		m.panes = append(m.panes, s)
	}
	return m, nil
}

// Run starts the demo with the embedded scenarios.
func Run(opts Options) error {
	var scenarios []*config.Scenario
	for _, name := range templates.DemoScenarios {
		sc, err := config.LoadScenarioFS(templates.FS, templates.ScenarioPath(name))
		if err != nil {
			return err
		}
		scenarios = append(scenarios, sc)
	}

	m, err := New(scenarios, opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// Init starts the ticker, if any.
func (m *Model) Init() tea.Cmd {
	return m.nextTick()
}

func (m *Model) nextTick() tea.Cmd {
	if m.tick <= 0 {
		return nil
	}
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update handles keys, window sizes and ticks.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.dumpView.Width = max(msg.Width-4, 10)
		m.dumpView.Height = max(msg.Height-6, 3)

	case tickMsg:
		for i := range m.panes {
			m.advance(i)
		}
		return m, m.nextTick()

	case copiedMsg:
		m.err, m.message = nil, ""
		if msg.err != nil {
			m.err = fmt.Errorf("copy to clipboard: %w", msg.err)
		} else {
			m.message = fmt.Sprintf("%s: tree copied to clipboard", msg.pane)
		}
	}
	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "tab", "right", "l":
		m.focus = (m.focus + 1) % len(m.panes)
		m.refreshDump()
	case "shift+tab", "left", "h":
		m.focus = (m.focus + len(m.panes) - 1) % len(m.panes)
		m.refreshDump()
	case "n", " ":
		m.advance(m.focus)
	case "a":
		for i := range m.panes {
			m.advance(i)
		}
	case "v":
		m.toggle(m.focus)
	case "d":
		m.showDump = !m.showDump
		m.refreshDump()
	case "y":
		return m.copyDump()
	case "esc":
		m.showDump = false
	default:
		if m.showDump {
			var cmd tea.Cmd
			m.dumpView, cmd = m.dumpView.Update(msg)
			return cmd
		}
	}
	return nil
}

func (m *Model) advance(i int) {
	s := m.panes[i]
	name, err := s.Next()
	m.report(s, err, "%s: %s", s.Name, name)
}

func (m *Model) toggle(i int) {
	s := m.panes[i]
	err := s.ToggleVisible()
	state := "shown"
	if !s.Transformer.Visible() {
		state = "hidden"
	}
	m.report(s, err, "%s: statuses %s", s.Name, state)
}

func (m *Model) report(s *scene.Scene, err error, format string, args ...any) {
	m.err = err
	m.message = ""
	if err == nil {
		m.message = fmt.Sprintf(format, args...)
	}
	if s == m.panes[m.focus] {
		m.refreshDump()
	}
}

// copyDump captures the focused tree now and copies it off the UI loop.
func (m *Model) copyDump() tea.Cmd {
	s := m.panes[m.focus]
	dump := s.Dump()
	return func() tea.Msg {
		return copiedMsg{pane: s.Name, err: writeClipboard(dump)}
	}
}

func (m *Model) refreshDump() {
	if m.showDump {
		m.dumpView.SetContent(m.panes[m.focus].Dump())
	}
}

// Focused returns the scene of the focused pane.
func (m *Model) Focused() *scene.Scene {
	return m.panes[m.focus]
}
