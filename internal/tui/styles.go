package tui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle styles the download title line.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// ErrorStyle marks fatal messages.
	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)
