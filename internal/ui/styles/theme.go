// Package styles holds the dashboard color palette and shared styles.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the dashboard.
type Theme struct {
	// Brand/accent colors
	Primary   lipgloss.Color // Purple - title, active player
	Secondary lipgloss.Color // Gold/orange - gradient end, paused

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color // Primary text (bright)
	FgMuted  lipgloss.Color // Secondary text (dimmed)
	FgSubtle lipgloss.Color // Tertiary text (very dim)

	// Borders
	Border      lipgloss.Color
	BorderFocus lipgloss.Color
	BgCursor    lipgloss.Color

	// Status colors
	Success lipgloss.Color // Green - watching
	Error   lipgloss.Color // Red - stopped
	Warning lipgloss.Color // Yellow/orange - paused

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base     lipgloss.Style // Default text
	Muted    lipgloss.Style // Dimmed text
	Subtle   lipgloss.Style // Very dim text
	Title    lipgloss.Style // Bold, bright
	Watching lipgloss.Style // Player currently playing
	Paused   lipgloss.Style
	Stopped  lipgloss.Style
	Filled   lipgloss.Style // Progress bar, elapsed part
	Empty    lipgloss.Style // Progress bar, remaining part
	Cursor   lipgloss.Style // Selected event
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#a78bfa"),
	BgCursor:    lipgloss.Color("#303030"),

	Success: lipgloss.Color("#42b883"),
	Error:   lipgloss.Color("#ff5555"),
	Warning: lipgloss.Color("#f1a208"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:     base,
		Muted:    lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle:   lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:    base.Bold(true),
		Watching: lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		Paused:   lipgloss.NewStyle().Foreground(t.Warning),
		Stopped:  lipgloss.NewStyle().Foreground(t.Error),
		Filled:   lipgloss.NewStyle().Foreground(t.Primary),
		Empty:    lipgloss.NewStyle().Foreground(t.FgSubtle),
		Cursor:   lipgloss.NewStyle().Background(t.BgCursor),
	}
}

// Title renders the application name with the brand gradient.
func (t *Theme) Title(text string) string {
	return ApplyBoldGradient(text, t.Primary, t.Secondary)
}
