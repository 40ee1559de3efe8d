// internal/player/state.go
package player

// State is the playback state reported by a player.
//
// The numeric values are stable: they index the scrobble verbs
// (stop, pause, start).
type State int

const (
	Stopped State = iota
	Paused
	Playing
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Paused:
		return "Paused"
	case Playing:
		return "Playing"
	default:
		return "Unknown"
	}
}

// IsActive returns true if something is loaded (Playing or Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}

// Valid returns true for the three known states.
func (s State) Valid() bool {
	return s >= Stopped && s <= Playing
}
