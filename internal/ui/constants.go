// Package ui provides shared UI constants.
package ui

// Layout constants for the dashboard.
const (
	// BorderHeight is the vertical space consumed by a standard panel border.
	BorderHeight = 2

	// BorderWidth is the horizontal space consumed by a standard panel border.
	BorderWidth = 2

	// HeaderHeight is the title line above the panels.
	HeaderHeight = 1

	// FooterHeight is the key hint line below the panels.
	FooterHeight = 1

	// MinProgressBarWidth is the minimum width for a usable progress bar.
	MinProgressBarWidth = 5

	// ProgressWidth is the width given to a player's progress column.
	ProgressWidth = 24

	// NameWidth is the width of player name columns.
	NameWidth = 10
)
