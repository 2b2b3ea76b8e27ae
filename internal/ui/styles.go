package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	PrimaryColor   = lipgloss.Color("#E95420") // Ubuntu orange
	SecondaryColor = lipgloss.Color("#04B575") // Green
	ErrorColor     = lipgloss.Color("#FF0000") // Red
	WarningColor   = lipgloss.Color("#FFCC00") // Yellow
	SubtleColor    = lipgloss.Color("#626262") // Gray
	TextColor      = lipgloss.Color("#FFFFFF") // White

	// Text Styles
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			MarginBottom(1)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	// Pager frame
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 1)

	// List Styles
	ItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)
)
