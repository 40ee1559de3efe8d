package styles

import "github.com/charmbracelet/lipgloss"

// PanelStyle returns the bordered style of a dashboard panel. The active
// panel is highlighted.
func PanelStyle(active bool) lipgloss.Style {
	border := T().Border
	if active {
		border = T().BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border)
}
