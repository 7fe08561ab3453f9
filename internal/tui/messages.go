package tui

// SwitchScreenMsg requests a screen change
type SwitchScreenMsg struct {
	Screen Screen
}

// RefreshDataMsg requests data refresh
type RefreshDataMsg struct{}

// tickMsg is one countdown tick. gen ties it to the arming that scheduled
// it so ticks scheduled before a stop are dropped.
type tickMsg struct {
	gen int
}
