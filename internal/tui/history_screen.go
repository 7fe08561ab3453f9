package tui

import (
	"context"
	"fmt"

	"github.com/andy/countdown/internal/domain"
	"github.com/andy/countdown/internal/repository"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const historyLimit = 20

// eventsLoadedMsg is sent when journal events are loaded
type eventsLoadedMsg struct {
	events []*domain.Event
	err    error
}

func loadEventsCmd(repo repository.EventRepository) tea.Cmd {
	return func() tea.Msg {
		events, err := repo.List(context.Background(), nil, historyLimit)
		return eventsLoadedMsg{events: events, err: err}
	}
}

// HistoryModel lists the most recent journal events
type HistoryModel struct {
	repo    repository.EventRepository
	events  []*domain.Event
	loaded  bool
	enabled bool
	err     error
}

// NewHistoryModel creates the history screen. enabled is false when the
// journal is switched off in the config.
func NewHistoryModel(repo repository.EventRepository, enabled bool) *HistoryModel {
	return &HistoryModel{repo: repo, enabled: enabled}
}

func (m *HistoryModel) Init() tea.Cmd {
	return loadEventsCmd(m.repo)
}

func (m *HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		return m, loadEventsCmd(m.repo)

	case eventsLoadedMsg:
		m.loaded = true
		m.err = msg.err
		m.events = msg.events
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Refresh):
			return m, loadEventsCmd(m.repo)
		case key.Matches(msg, DefaultKeyMap.Back):
			return m, func() tea.Msg { return SwitchScreenMsg{Screen: ScreenCountdown} }
		}
	}
	return m, nil
}

func (m *HistoryModel) View() string {
	b := titleStyle.Render("Recent events") + "\n\n"

	switch {
	case !m.enabled:
		return b + subtitleStyle.Render("History is disabled (history.enabled: false).") + "\n"
	case m.err != nil:
		return b + lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %s", m.err.Error())) + "\n"
	case !m.loaded:
		return b + "Loading events...\n"
	case len(m.events) == 0:
		return b + "No events recorded yet.\n"
	}

	header := fmt.Sprintf("%-19s  %-8s  %-15s  %s", "WHEN", "SESSION", "EVENT", "REMAINING")
	b += subtitleStyle.Render(header) + "\n"
	for _, e := range m.events {
		b += fmt.Sprintf("%-19s  %-8s  %-15s  %s\n",
			e.OccurredAt.Local().Format("2006-01-02 15:04:05"),
			e.ShortSession(),
			e.Kind,
			domain.FormatSeconds(e.RemainingSeconds, false),
		)
	}
	b += "\n" + subtitleStyle.Render("ctrl+r refresh  esc back")
	return b
}
