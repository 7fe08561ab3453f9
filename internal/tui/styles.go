package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor = lipgloss.Color("39")  // Blue
	accentColor  = lipgloss.Color("205") // Pink
	mutedColor   = lipgloss.Color("241") // Gray
	successColor = lipgloss.Color("76")  // Green
	warningColor = lipgloss.Color("214") // Orange
	errorColor   = lipgloss.Color("196") // Red

	// Base styles
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	subtitleStyle = lipgloss.NewStyle().Foreground(mutedColor)

	// Layout
	borderColor    = lipgloss.Color("63") // Soft purple
	appBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(1, 2)

	// Header/Footer
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true) // Bright yellow

	// Countdown display
	displayStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(mutedColor)
	editingStyle = displayStyle.
			Foreground(mutedColor).
			Border(lipgloss.ThickBorder(), false, false, true, false).
			BorderForeground(primaryColor)
	overdueStyle = displayStyle.Foreground(errorColor)

	timerRunningStyle = lipgloss.NewStyle().Bold(true).Foreground(successColor)
	timerStoppedStyle = lipgloss.NewStyle().Bold(true).Foreground(warningColor)
	timerEditingStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
)
