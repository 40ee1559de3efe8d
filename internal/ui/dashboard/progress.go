package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/scrobblr/internal/player"
	"github.com/llehouerou/scrobblr/internal/ui"
	"github.com/llehouerou/scrobblr/internal/ui/styles"
)

var (
	filledBlock = "▓"
	emptyBlock  = "░"
)

// stateIcon returns the glyph shown in front of a player's media.
func stateIcon(s player.State) string {
	switch s {
	case player.Playing:
		return "▶"
	case player.Paused:
		return "⏸"
	default:
		return "■"
	}
}

// stateStyle returns the style of a player state.
func stateStyle(s player.State) lipgloss.Style {
	st := styles.T().S()
	switch s {
	case player.Playing:
		return st.Watching
	case player.Paused:
		return st.Paused
	default:
		return st.Stopped
	}
}

// renderProgress renders a block-style progress bar followed by the
// percentage. Format: ▓▓▓▓▓░░░░░  42%
func renderProgress(percent float64, width int) string {
	label := fmt.Sprintf("%3.0f%%", percent)
	barWidth := width - lipgloss.Width(label) - 1
	if barWidth < ui.MinProgressBarWidth {
		// Too narrow for bar, just show the percentage
		return label
	}

	ratio := min(max(percent/100, 0), 1)
	filled := min(int(float64(barWidth)*ratio), barWidth)

	st := styles.T().S()
	bar := st.Filled.Render(strings.Repeat(filledBlock, filled)) +
		st.Empty.Render(strings.Repeat(emptyBlock, barWidth-filled))
	return bar + " " + label
}
