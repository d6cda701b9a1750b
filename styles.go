package quantumsim

import "github.com/charmbracelet/lipgloss"

// Layout constants for the timeline renderer.
const (
	minCellW     = 5 // minimum width of a timeline column
	labelVisualW = 7 // visual width of the qubit label area
)

// Lipgloss styles for the rendered timeline.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))

	gateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#73daca"))

	dampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bb9af7"))

	measureStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#e0af68"))

	qubitLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff"))

	annotationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f7768e"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))
)
