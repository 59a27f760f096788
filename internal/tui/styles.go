package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("39")  // blue
	colorWarn   = lipgloss.Color("203") // red
	colorOK     = lipgloss.Color("114") // green
	colorDim    = lipgloss.Color("241")

	headerStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	studentStyle = lipgloss.NewStyle().
			Foreground(colorOK).
			Bold(true)

	coteacherStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	urgentStyle = lipgloss.NewStyle().
			Foreground(colorWarn).
			Bold(true)

	metricCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 2)

	adviceStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorOK).
			Padding(0, 1)

	barStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	errStyle = lipgloss.NewStyle().
			Foreground(colorWarn)
)
