package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/ttimetracker/internal/tasklog"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

var (
	testNow   = time.Date(2012, 5, 16, 15, 8, 0, 0, time.Local)
	testStart = time.Date(2012, 5, 16, 14, 32, 0, 0, time.Local)
)

func running() *tasklog.Record {
	now := testNow
	return &tasklog.Record{Start: testStart, Finish: &now, Description: "homework", Running: true}
}

func TestTimer_ViewRunning(t *testing.T) {
	finish := time.Date(2012, 5, 16, 9, 30, 0, 0, time.Local)
	done := tasklog.Record{
		Start:       time.Date(2012, 5, 16, 9, 0, 0, 0, time.Local),
		Finish:      &finish,
		Description: "standup",
		Duration:    30,
	}
	m := NewTimer(Actions{Load: func() (Snapshot, error) {
		return Snapshot{Current: running(), Today: []tasklog.Record{done}}, nil
	}}, time.Second)
	m.SetNow(func() time.Time { return testNow })

	view := m.View()
	assert.Contains(t, view, "homework")
	assert.Contains(t, view, "since 14:32")
	assert.Contains(t, view, "0h 36m")
	assert.Contains(t, view, "today: 1:06 across 1 tasks")
	assert.NotContains(t, view, "s stop")
}

func TestTimer_StopAndResume(t *testing.T) {
	snap := Snapshot{Current: running()}
	var stopped, resumed int
	m := NewTimer(Actions{
		Load: func() (Snapshot, error) { return snap, nil },
		Stop: func() error {
			stopped++
			snap = Snapshot{Last: &tasklog.Record{Description: "homework", Duration: 36}}
			return nil
		},
		Resume: func() error {
			resumed++
			snap = Snapshot{Current: running()}
			return nil
		},
	}, time.Second)
	m.SetNow(func() time.Time { return testNow })
	assert.Contains(t, m.View(), "s stop")

	// Resume is ignored while a task is running.
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("u")})
	assert.Equal(t, 0, resumed)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	assert.Equal(t, 1, stopped)
	view := m.View()
	assert.Contains(t, view, "nothing running")
	assert.Contains(t, view, "last: homework (0:36)")
	assert.Contains(t, view, "u resume")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("u")})
	assert.Equal(t, 1, resumed)
	assert.Contains(t, m.View(), "since 14:32")
}

func TestTimer_ReloadAndErrors(t *testing.T) {
	calls := 0
	fail := false
	m := NewTimer(Actions{Load: func() (Snapshot, error) {
		calls++
		if fail {
			return Snapshot{}, errors.New("disk gone")
		}
		return Snapshot{}, nil
	}}, time.Second)
	require.Equal(t, 1, calls)

	m.Update(ReloadMsg{})
	assert.Equal(t, 2, calls)

	fail = true
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Equal(t, 3, calls)
	assert.Contains(t, m.View(), "error: disk gone")

	fail = false
	m.Update(ReloadMsg{})
	assert.NotContains(t, m.View(), "error:")
}

func TestTimer_Quit(t *testing.T) {
	m := NewTimer(Actions{}, time.Second)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = m.Update(TickMsg{})
	assert.NotNil(t, cmd)
}
