// Package scrobble turns successive player snapshots into start, pause and
// stop events.
package scrobble

import (
	"time"

	"github.com/google/uuid"

	"github.com/llehouerou/scrobblr/internal/media"
	"github.com/llehouerou/scrobblr/internal/player"
)

// Status is the normalized view of one snapshot: what is playing and how
// far along it is. A nil *Status means nothing trackable.
type Status struct {
	State     player.State
	Progress  float64 // percent of the (per-episode) duration, 0-100
	Media     media.Info
	UpdatedAt time.Time

	// Path is the file the status was derived from. It is informational
	// and takes no part in change detection.
	Path string
}

// Verb is the action reported for an event.
type Verb string

const (
	VerbStop  Verb = "stop"
	VerbPause Verb = "pause"
	VerbStart Verb = "start"
)

// verbs is indexed by player.State.
var verbs = [...]Verb{
	player.Stopped: VerbStop,
	player.Paused:  VerbPause,
	player.Playing: VerbStart,
}

// VerbFor returns the verb reported for a player state.
func VerbFor(s player.State) Verb {
	if !s.Valid() {
		return VerbStop
	}
	return verbs[s]
}

// Event is one scrobble placed on the outbound queue.
type Event struct {
	ID     uuid.UUID
	Player string
	Verb   Verb
	Status Status
}

func newEvent(playerName string, verb Verb, s *Status) Event {
	return Event{
		ID:     uuid.New(),
		Player: playerName,
		Verb:   verb,
		Status: *s,
	}
}
