package tui

import "github.com/charmbracelet/lipgloss"

var (
	// HeaderStyle styles the column header row.
	HeaderStyle = lipgloss.NewStyle().Bold(true)

	// FailedStyle marks failure tallies in the footer.
	FailedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	statusStyles = map[string]lipgloss.Style{
		// Terminal states
		"installed": lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"created":   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"verified":  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"kept":      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),

		// Active states
		"installing": lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"creating":   lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"removing":   lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"verifying":  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),

		// Skipped / warning
		"skipped": lipgloss.NewStyle().Foreground(lipgloss.Color("3")),

		// Error
		"failed": lipgloss.NewStyle().Foreground(lipgloss.Color("1")),

		// Pending
		"pending": lipgloss.NewStyle().Faint(true),
	}
)

// StatusStyle returns the lipgloss style for the given status string.
func StatusStyle(status string) lipgloss.Style {
	if s, ok := statusStyles[status]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
