package scrobble

import "github.com/llehouerou/scrobblr/internal/player"

// DefaultSkipInterval is the progress jump, in percent, reported as a seek.
const DefaultSkipInterval = 5.0

// Decider compares consecutive Status values and decides which events
// describe the change.
type Decider struct {
	skipInterval float64
}

// NewDecider creates a decider reporting forward progress jumps larger
// than skipInterval percent.
func NewDecider(skipInterval float64) *Decider {
	return &Decider{skipInterval: skipInterval}
}

// SkipInterval returns the configured progress jump threshold.
func (d *Decider) SkipInterval() float64 {
	return d.skipInterval
}

// Decide returns the events for the transition prev -> cur, in order.
// Either argument may be nil. At most two events are returned: a stop for
// prev followed by an event for cur.
func (d *Decider) Decide(playerName string, prev, cur *Status) []Event {
	if prev == nil && cur == nil {
		return nil
	}

	var events []Event

	if d.endsPrevious(prev, cur) {
		events = append(events, newEvent(playerName, VerbStop, prev))
	}

	if d.reportsCurrent(prev, cur) {
		events = append(events, newEvent(playerName, VerbFor(cur.State), cur))
	}

	return events
}

// endsPrevious reports whether prev's playback ended without the player
// saying so: it went away, or the media changed underneath it.
func (d *Decider) endsPrevious(prev, cur *Status) bool {
	if prev == nil || prev.State == player.Stopped {
		return false
	}
	return cur == nil || !prev.Media.Equal(cur.Media)
}

// reportsCurrent reports whether cur is a first observation or differs
// from prev in state, media, or by a forward jump past the skip interval.
func (d *Decider) reportsCurrent(prev, cur *Status) bool {
	if cur == nil {
		return false
	}
	if prev == nil {
		return true
	}
	return prev.State != cur.State ||
		!prev.Media.Equal(cur.Media) ||
		cur.Progress-prev.Progress > d.skipInterval
}
