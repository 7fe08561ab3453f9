package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andy/countdown/internal/domain"
	"github.com/andy/countdown/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// tickCountdown schedules the next tick for the given arming generation
func tickCountdown(gen int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// CountdownModel shows the countdown, its progress bar and the edit overlay
type CountdownModel struct {
	svc  service.CountdownService
	keys KeyMap

	// gen increments on every arm and disarm; ticks from older
	// generations are ignored
	gen int

	running progress.Model
	stopped progress.Model
	help    help.Model

	err error
}

// NewCountdownModel creates the countdown screen
func NewCountdownModel(svc service.CountdownService) *CountdownModel {
	return &CountdownModel{
		svc:     svc,
		keys:    DefaultKeyMap,
		running: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		stopped: progress.New(progress.WithSolidFill(string(mutedColor)), progress.WithoutPercentage()),
		help:    help.New(),
	}
}

// IsCapturingInput returns true while the edit buffer is open so digits and
// navigation keys reach the buffer
func (m *CountdownModel) IsCapturingInput() bool {
	return m.svc.Display().Source == domain.FromBuffer
}

// Init arms the ticker if the countdown is already running
func (m *CountdownModel) Init() tea.Cmd {
	return m.rearm()
}

// rearm starts a new tick generation when the service is armed, and
// invalidates outstanding ticks either way
func (m *CountdownModel) rearm() tea.Cmd {
	m.gen++
	if !m.svc.Armed() {
		return nil
	}
	return tickCountdown(m.gen, m.svc.TickInterval())
}

// SetWidth sizes the progress bar
func (m *CountdownModel) SetWidth(w int) {
	if w < 10 {
		w = 10
	}
	m.running.Width = w
	m.stopped.Width = w
	m.help.Width = w
}

// Update handles key events and ticks
func (m *CountdownModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	switch msg := msg.(type) {
	case tickMsg:
		if msg.gen != m.gen || !m.svc.Armed() {
			return m, nil
		}
		m.svc.Tick(ctx)
		if !m.svc.Armed() {
			// stopped at zero
			m.gen++
			return m, nil
		}
		return m, tickCountdown(m.gen, m.svc.TickInterval())

	case tea.KeyMsg:
		m.err = nil
		if m.svc.Display().Source == domain.FromBuffer {
			return m, m.updateEditing(ctx, msg)
		}

		switch {
		case key.Matches(msg, m.keys.Toggle):
			m.svc.Toggle(ctx)
			return m, m.rearm()
		case key.Matches(msg, m.keys.Reset):
			m.svc.Reset(ctx)
			return m, m.rearm()
		case key.Matches(msg, m.keys.Edit):
			m.svc.BeginEdit(ctx)
			return m, m.rearm()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	return m, nil
}

// updateEditing handles keys while the edit buffer is open. Any key that
// is not edit input acts like leaving the field.
func (m *CountdownModel) updateEditing(ctx context.Context, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Digit):
		m.setErr(m.svc.TypeDigit(ctx, msg.Runes[0]))
		return nil
	case key.Matches(msg, m.keys.Backspace):
		m.setErr(m.svc.Backspace(ctx))
		return nil
	case key.Matches(msg, m.keys.Commit):
		m.svc.CommitEdit(ctx)
		return m.rearm()
	case key.Matches(msg, m.keys.Toggle):
		// Start commits the edit first
		m.svc.Start(ctx)
		return m.rearm()
	case key.Matches(msg, m.keys.Reset):
		m.svc.Reset(ctx)
		return m.rearm()
	}
	return nil
}

func (m *CountdownModel) setErr(err error) {
	if err != nil && !errors.Is(err, service.ErrNotEditing) {
		m.err = err
	}
}

// View renders the countdown screen
func (m *CountdownModel) View() string {
	d := m.svc.Display()

	var state string
	switch {
	case d.Source == domain.FromBuffer:
		state = timerEditingStyle.Render("EDITING")
	case d.Running:
		state = timerRunningStyle.Render("RUNNING")
	default:
		state = timerStoppedStyle.Render("STOPPED")
	}

	var value string
	switch {
	case d.Source == domain.FromBuffer:
		value = editingStyle.Render(d.Text() + "▏")
	case d.Overdue():
		value = overdueStyle.Render(d.Text())
	default:
		value = displayStyle.Render(d.Text())
	}

	bar := m.stopped.ViewAs(d.Progress)
	if d.Running {
		bar = m.running.ViewAs(d.Progress)
	}

	b := titleStyle.Render("Countdown") + "  " + state + "\n\n"
	b += value + "\n\n"
	b += bar + "\n"
	if d.Overdue() {
		b += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Time is up (%s over)", domain.FormatSeconds(-d.Remaining, false))) + "\n"
	}
	if m.err != nil {
		b += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %s", m.err.Error())) + "\n"
	}
	b += "\n" + m.help.View(countdownHelp{keys: m.keys, editing: d.Source == domain.FromBuffer})
	return b
}
