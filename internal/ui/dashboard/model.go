// Package dashboard is the terminal view of what every monitored player is
// showing and of the recent scrobble events.
package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/scrobblr/internal/keymap"
	"github.com/llehouerou/scrobblr/internal/player"
	"github.com/llehouerou/scrobblr/internal/scrobble"
	"github.com/llehouerou/scrobblr/internal/ui"
	"github.com/llehouerou/scrobblr/internal/ui/cursor"
)

// maxEvents bounds the in-memory event log.
const maxEvents = 200

// scrollMargin keeps entries visible around the selected event.
const scrollMargin = 2

// refreshInterval is how often relative times are re-rendered.
const refreshInterval = time.Second

// EventMsg carries one dispatched event into the model.
type EventMsg struct {
	Event scrobble.Event
}

// ClosedMsg reports that the event stream ended.
type ClosedMsg struct{}

type tickMsg time.Time

// playerRow is the latest known status of one player.
type playerRow struct {
	name    string
	status  *scrobble.Status // nil until the first event
	verb    scrobble.Verb
	updated time.Time
}

// Options configures a dashboard.
type Options struct {
	// Players are shown in this order even before they report anything.
	Players []string
	// History seeds the event log, newest first.
	History []scrobble.Event
	// Events and Done are usually a dispatch subscription's channels.
	Events <-chan scrobble.Event
	Done   <-chan struct{}
}

// Model is the bubbletea model of the dashboard.
type Model struct {
	events <-chan scrobble.Event
	done   <-chan struct{}
	keys   *keymap.Resolver
	now    func() time.Time

	spinner  spinner.Model
	players  []*playerRow
	log      []scrobble.Event // newest first
	cursor   cursor.Cursor
	showHelp bool
	closed   bool

	width, height int
}

// New creates a dashboard model.
func New(opts Options) Model {
	m := Model{
		events:  opts.Events,
		done:    opts.Done,
		keys:    keymap.Default(),
		now:     time.Now,
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		cursor:  cursor.New(scrollMargin),
		width:   80,
		height:  24,
	}
	for _, name := range opts.Players {
		m.row(name)
	}
	for i := len(opts.History) - 1; i >= 0; i-- {
		m.apply(opts.History[i])
	}
	return m
}

// Init starts listening for events.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitForEvent(), tick(), m.spinner.Tick)
}

func (m Model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events, done := m.events, m.done
	return func() tea.Msg {
		select {
		case ev := <-events:
			return EventMsg{Event: ev}
		case <-done:
			return ClosedMsg{}
		}
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// row returns the row of a player, appending it when unseen.
func (m *Model) row(name string) *playerRow {
	for _, r := range m.players {
		if r.name == name {
			return r
		}
	}
	r := &playerRow{name: name}
	m.players = append(m.players, r)
	return r
}

// apply records ev in the player rows and on top of the log.
func (m *Model) apply(ev scrobble.Event) {
	r := m.row(ev.Player)
	status := ev.Status
	if ev.Verb == scrobble.VerbStop {
		status.State = player.Stopped
	}
	r.status = &status
	r.verb = ev.Verb
	r.updated = ev.Status.UpdatedAt
	if r.updated.IsZero() {
		r.updated = m.now()
	}

	m.log = append([]scrobble.Event{ev}, m.log...)
	if len(m.log) > maxEvents {
		m.log = m.log[:maxEvents]
	}
	if pos := m.cursor.Pos(); pos > 0 {
		// Keep the selected event selected.
		m.cursor.Jump(pos+1, len(m.log), m.logRows())
	}
	m.cursor.ClampToBounds(len(m.log))
}

// logRows is the number of event log entries that fit on screen.
func (m Model) logRows() int {
	players := max(len(m.players), 1) + ui.BorderHeight
	footer := 1
	if m.showHelp {
		footer = len(keymap.ByContext("global")) + len(keymap.ByContext("events"))
	}
	// The events panel has a border and a title line.
	return max(m.height-ui.HeaderHeight-players-footer-ui.BorderHeight-1, 1)
}

// active reports whether any player is currently playing or paused.
func (m Model) active() bool {
	for _, r := range m.players {
		if r.status != nil && r.status.State.IsActive() {
			return true
		}
	}
	return false
}
