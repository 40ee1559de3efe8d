package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/scrobblr/internal/keymap"
	"github.com/llehouerou/scrobblr/internal/scrobble"
	"github.com/llehouerou/scrobblr/internal/ui"
	"github.com/llehouerou/scrobblr/internal/ui/render"
	"github.com/llehouerou/scrobblr/internal/ui/styles"
)

const (
	agoWidth  = 16
	timeWidth = 8
	verbWidth = 6
)

// View renders the dashboard.
func (m Model) View() string {
	inner := max(m.width-ui.BorderWidth, 20)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderPlayers(inner),
		m.renderEvents(inner, m.logRows()),
		m.renderFooter(inner),
	)
}

func (m Model) renderHeader() string {
	st := styles.T().S()

	var status string
	switch {
	case m.closed:
		status = st.Stopped.Render("stream closed")
	case m.active():
		status = m.spinner.View() + " " + st.Watching.Render("watching")
	default:
		status = st.Muted.Render("idle")
	}

	count := st.Subtle.Render(fmt.Sprintf("%s events", humanize.Comma(int64(len(m.log)))))
	return render.Row(" "+styles.T().Title("scrobblr"), status+"  "+count+" ", m.width)
}

func (m Model) renderPlayers(inner int) string {
	st := styles.T().S()

	lines := make([]string, 0, len(m.players))
	if len(m.players) == 0 {
		lines = append(lines, st.Muted.Render("no players monitored"))
	}

	mediaWidth := max(inner-ui.NameWidth-2-ui.ProgressWidth-1-agoWidth, 10)
	for _, r := range m.players {
		name := st.Title.Render(render.TruncateAndPad(r.name, ui.NameWidth))
		if r.status == nil {
			lines = append(lines, name+st.Subtle.Render("- waiting"))
			continue
		}

		style := stateStyle(r.status.State)
		what := render.TruncateAndPad(r.status.Media.String(), mediaWidth)
		progress := lipgloss.NewStyle().Width(ui.ProgressWidth).Render(renderProgress(r.status.Progress, ui.ProgressWidth-1))
		ago := st.Muted.Render(render.TruncateAndPad(humanize.RelTime(r.updated, m.now(), "ago", "from now"), agoWidth))

		lines = append(lines, name+style.Render(stateIcon(r.status.State))+" "+style.Render(what)+" "+progress+ago)
	}

	return styles.PanelStyle(m.active()).Width(inner).Render(strings.Join(lines, "\n"))
}

func (m Model) renderEvents(inner, height int) string {
	st := styles.T().S()

	lines := []string{st.Title.Render("Recent events")}
	if len(m.log) == 0 {
		lines = append(lines, st.Muted.Render("nothing yet"))
	}

	mediaWidth := max(inner-timeWidth-1-ui.NameWidth-verbWidth-1-5, 10)
	start, end := m.cursor.VisibleRange(len(m.log), height)
	for i := start; i < end; i++ {
		line := renderEvent(m.log[i], mediaWidth)
		if i == m.cursor.Pos() && i > 0 {
			line = st.Cursor.Render(line)
		}
		lines = append(lines, line)
	}

	return styles.PanelStyle(false).Width(inner).Render(strings.Join(lines, "\n"))
}

func renderEvent(ev scrobble.Event, mediaWidth int) string {
	st := styles.T().S()

	at := st.Subtle.Render(render.Pad(ev.Status.UpdatedAt.Format("15:04:05"), timeWidth)) + " "
	name := render.TruncateAndPad(ev.Player, ui.NameWidth)
	verb := verbStyle(ev.Verb).Render(render.Pad(string(ev.Verb), verbWidth)) + " "
	what := render.TruncateAndPad(ev.Status.Media.String(), mediaWidth)
	pct := st.Muted.Render(fmt.Sprintf("%4.0f%%", ev.Status.Progress))
	return at + name + verb + what + pct
}

func verbStyle(v scrobble.Verb) lipgloss.Style {
	st := styles.T().S()
	switch v {
	case scrobble.VerbStart:
		return st.Watching
	case scrobble.VerbPause:
		return st.Paused
	default:
		return st.Stopped
	}
}

func (m Model) renderFooter(inner int) string {
	st := styles.T().S()

	if !m.showHelp {
		return st.Subtle.Render(fmt.Sprintf(" %s quit · %s help",
			m.firstKey(keymap.ActionQuit), m.firstKey(keymap.ActionHelp)))
	}

	var lines []string
	for _, ctx := range []string{"global", "events"} {
		for _, b := range keymap.ByContext(ctx) {
			keys := strings.Join(b.Keys, "/")
			lines = append(lines, " "+st.Base.Render(render.Pad(keys, 12))+st.Muted.Render(render.Truncate(b.Description, inner-13)))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) firstKey(a keymap.Action) string {
	keys := m.keys.KeysFor(a)
	if len(keys) == 0 {
		return "?"
	}
	return keys[0]
}
