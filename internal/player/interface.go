// internal/player/interface.go
package player

import (
	"context"
	"errors"
)

// ErrUnavailable is returned by a Source when the player cannot be reached.
var ErrUnavailable = errors.New("player unavailable")

// Status is one raw snapshot of a player.
//
// Position and Duration are in seconds. A nil *Status means nothing is
// loaded in the player.
type Status struct {
	State    State
	Path     string
	Position float64
	Duration float64
}

// Source yields snapshots of a single player.
type Source interface {
	// Name identifies the player in logs and events.
	Name() string
	// Poll returns the current snapshot, nil if nothing is playing, or an
	// error if the player could not be reached.
	Poll(ctx context.Context) (*Status, error)
}

// Verify implementations at compile time.
var (
	_ Source = (*MPV)(nil)
	_ Source = (*VLC)(nil)
	_ Source = (*Mock)(nil)
)
