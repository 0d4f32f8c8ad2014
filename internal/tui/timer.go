// Package tui implements the live terminal view of the running task.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/ttimetracker/internal/output"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/tasklog"
)

// Snapshot is the state shown by the view.
type Snapshot struct {
	Current *tasklog.Record
	Last    *tasklog.Record
	Today   []tasklog.Record
}

// Actions are the mutations the view can trigger. Nil actions are hidden.
type Actions struct {
	Load   func() (Snapshot, error)
	Stop   func() error
	Resume func() error
}

// ReloadMsg is sent by the file watcher to trigger a refresh.
type ReloadMsg struct{}

// TickMsg is sent periodically to refresh the elapsed time.
type TickMsg struct{}

type errMsg struct{ err error }

type keyMap struct {
	Quit   key.Binding
	Reload key.Binding
	Stop   key.Binding
	Resume key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Stop:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Resume: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "resume")),
	}
}

// Timer is the top-level bubbletea model.
type Timer struct {
	actions Actions
	keys    keyMap
	snap    Snapshot
	tick    time.Duration
	width   int
	err     error
	now     func() time.Time // clock for elapsed display; defaults to time.Now
}

// NewTimer creates the model and performs the first load.
func NewTimer(actions Actions, tick time.Duration) *Timer {
	m := &Timer{actions: actions, keys: defaultKeys(), tick: tick, now: time.Now}
	m.reload()
	return m
}

// SetNow overrides the clock function used for elapsed display (for testing).
func (m *Timer) SetNow(fn func() time.Time) {
	m.now = fn
}

// Init implements tea.Model.
func (m *Timer) Init() tea.Cmd {
	return m.tickCmd()
}

// Update implements tea.Model.
func (m *Timer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case ReloadMsg:
		m.reload()
		return m, nil
	case TickMsg:
		return m, m.tickCmd()
	case errMsg:
		m.err = msg.err
		return m, nil
	}
	return m, nil
}

func (m *Timer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Reload):
		m.reload()
	case key.Matches(msg, m.keys.Stop) && m.actions.Stop != nil && m.snap.Current != nil:
		m.run(m.actions.Stop)
	case key.Matches(msg, m.keys.Resume) && m.actions.Resume != nil && m.snap.Current == nil && m.snap.Last != nil:
		m.run(m.actions.Resume)
	}
	return m, nil
}

func (m *Timer) run(action func() error) {
	if err := action(); err != nil {
		m.err = err
		return
	}
	m.reload()
}

func (m *Timer) reload() {
	if m.actions.Load == nil {
		return
	}
	snap, err := m.actions.Load()
	if err != nil {
		m.err = err
		return
	}
	m.snap = snap
	m.err = nil
}

func (m *Timer) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(time.Time) tea.Msg { return TickMsg{} })
}

// View implements tea.Model.
func (m *Timer) View() string {
	now := m.now()
	var b strings.Builder

	b.WriteString(titleStyle.Render("tt") + "  " + dimStyle.Render(now.Format("Mon 2006-01-02 15:04:05")) + "\n\n")

	if cur := m.snap.Current; cur != nil {
		elapsed := now.Sub(cur.Start)
		body := runningStyle.Render(cur.Description) + "\n" +
			dimStyle.Render("since "+cur.Start.Format("15:04")) + "  " +
			elapsedStyle.Render(output.FormatElapsed(elapsed))
		b.WriteString(m.card(activeCardStyle, body))
	} else {
		b.WriteString(m.card(cardStyle, dimStyle.Render("nothing running")))
	}
	b.WriteString("\n")

	if last := m.snap.Last; last != nil {
		b.WriteString(fmt.Sprintf("last: %s (%s)\n", last.Description, tasklog.FormatMinutes(last.Duration)))
	}

	total := 0
	for _, r := range m.snap.Today {
		if r.Running {
			continue
		}
		total += r.Duration
	}
	if cur := m.snap.Current; cur != nil {
		total += cur.Elapsed(now)
	}
	b.WriteString(fmt.Sprintf("today: %s across %d tasks\n", tasklog.FormatMinutes(total), len(m.snap.Today)))

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("error: "+m.err.Error()) + "\n")
	}

	b.WriteString("\n" + statusBarStyle.Render(m.helpLine()))
	return b.String()
}

func (m *Timer) card(style lipgloss.Style, body string) string {
	if m.width > 4 { //nolint:mnd // border plus padding
		style = style.Width(m.width - 4) //nolint:mnd // border plus padding
	}
	return style.Render(body)
}

func (m *Timer) helpLine() string {
	bindings := []key.Binding{m.keys.Quit, m.keys.Reload}
	if m.actions.Stop != nil && m.snap.Current != nil {
		bindings = append(bindings, m.keys.Stop)
	}
	if m.actions.Resume != nil && m.snap.Current == nil && m.snap.Last != nil {
		bindings = append(bindings, m.keys.Resume)
	}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}

// --- Styles ---

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	activeCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1)

	runningStyle = lipgloss.NewStyle().Bold(true)
	elapsedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)
