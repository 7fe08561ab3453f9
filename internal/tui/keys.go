package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit key.Binding
	Help key.Binding
	Back key.Binding

	// Navigation
	Countdown key.Binding
	History   key.Binding

	// Countdown actions
	Toggle    key.Binding
	Reset     key.Binding
	Edit      key.Binding
	Commit    key.Binding
	Backspace key.Binding
	Digit     key.Binding
	Refresh   key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Countdown: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "timer")),
	History:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
	Toggle:    key.NewBinding(key.WithKeys(" ", "s"), key.WithHelp("space", "start/stop")),
	Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Edit:      key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
	Commit:    key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "done")),
	Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete")),
	Digit: key.NewBinding(
		key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("0-9", "type"),
	),
	Refresh: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh")),
}

// countdownHelp adapts the key map to bubbles/help for the countdown screen
type countdownHelp struct {
	keys    KeyMap
	editing bool
}

func (h countdownHelp) ShortHelp() []key.Binding {
	if h.editing {
		return []key.Binding{h.keys.Digit, h.keys.Backspace, h.keys.Commit, h.keys.Toggle, h.keys.Reset}
	}
	return []key.Binding{h.keys.Toggle, h.keys.Reset, h.keys.Edit, h.keys.History, h.keys.Help, h.keys.Quit}
}

func (h countdownHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.keys.Toggle, h.keys.Reset},
		{h.keys.Edit, h.keys.Digit, h.keys.Backspace, h.keys.Commit},
		{h.keys.History, h.keys.Help, h.keys.Quit},
	}
}
