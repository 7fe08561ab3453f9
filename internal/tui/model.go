package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/countdown/internal/app"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen represents the current active screen
type Screen int

const (
	ScreenCountdown Screen = iota
	ScreenHistory
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenCountdown:
		return "Timer"
	case ScreenHistory:
		return "History"
	default:
		return "Unknown"
	}
}

// Model is the root Bubble Tea model
type Model struct {
	app           *app.App
	currentScreen Screen
	width         int
	height        int

	countdown *CountdownModel
	history   tea.Model // lazy initialized
}

// New creates a new root model. With timer.autostart the countdown is
// already running when the program starts; Init arms the first tick.
func New(a *app.App) Model {
	if a.Config.Timer.Autostart {
		a.CountdownService.Start(context.Background())
	}
	return Model{
		app:           a,
		currentScreen: ScreenCountdown,
		countdown:     NewCountdownModel(a.CountdownService),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.countdown.Init()
}

// initScreen lazy-initializes a screen on first visit,
// and sends a RefreshDataMsg on subsequent visits so screens reload data.
func (m *Model) initScreen(screen Screen) tea.Cmd {
	switch screen {
	case ScreenHistory:
		if m.history == nil {
			m.history = NewHistoryModel(m.app.EventRepo, m.app.Config.History.Enabled)
			return m.history.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	}
	return nil
}

// InputCapturer is implemented by screens that capture keyboard input.
// When active, global navigation keys are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

// activeScreenCapturingInput returns true if the current screen is capturing text input
func (m *Model) activeScreenCapturingInput() bool {
	var screen tea.Model
	switch m.currentScreen {
	case ScreenCountdown:
		screen = m.countdown
	case ScreenHistory:
		screen = m.history
	}
	if ic, ok := screen.(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.countdown.SetWidth(m.innerWidth() - 4)
		return m, nil

	case tickMsg:
		// ticks keep flowing to the countdown while another screen is shown
		_, cmd := m.countdown.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}

		if !m.activeScreenCapturingInput() {
			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				return m, m.quit()

			case key.Matches(msg, DefaultKeyMap.Countdown):
				m.currentScreen = ScreenCountdown
				return m, nil

			case key.Matches(msg, DefaultKeyMap.History):
				m.currentScreen = ScreenHistory
				return m, m.initScreen(ScreenHistory)
			}
		}

	case SwitchScreenMsg:
		m.currentScreen = msg.Screen
		return m, m.initScreen(msg.Screen)
	}

	// Route message to current screen
	var cmd tea.Cmd
	switch m.currentScreen {
	case ScreenCountdown:
		_, cmd = m.countdown.Update(msg)
	case ScreenHistory:
		if m.history != nil {
			m.history, cmd = m.history.Update(msg)
		}
	}

	return m, cmd
}

// quit stops a running countdown so the journal records it, then exits
func (m Model) quit() tea.Cmd {
	ctx := context.Background()
	m.app.CountdownService.CommitEdit(ctx)
	m.app.CountdownService.Stop(ctx)
	return tea.Quit
}

func (m Model) innerWidth() int {
	w := m.width - 6 // account for border (2) + padding (4)
	if w < 20 {
		w = 20
	}
	return w
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := headerStyle.Render(fmt.Sprintf("countdown - %s", m.currentScreen.String()))
	footer := footerStyle.Render("[T]imer  [H]istory  [Q]uit")

	var content string
	switch m.currentScreen {
	case ScreenCountdown:
		content = m.countdown.View()
	case ScreenHistory:
		if m.history != nil {
			content = m.history.View()
		} else {
			content = "Loading..."
		}
	}

	innerWidth := m.innerWidth()
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s\n\n%s\n%s", header, divider, content, divider, footer)

	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
