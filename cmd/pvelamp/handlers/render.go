package handlers

import "github.com/charmbracelet/lipgloss"

// Styled output for the doctor report and the success summary. Rendering
// falls back to plain text when stdout is not a terminal.
var (
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#f9fafb"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#22c55e"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ef4444"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6b7280"))

	valueStyle = lipgloss.NewStyle().
			Bold(true)
)

// styled applies style only on an interactive terminal.
func styled(style lipgloss.Style, s string) string {
	if !isInteractiveTTY() {
		return s
	}
	return style.Render(s)
}
