//go:build linux

package mpris

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/scrobblr/internal/player"
)

// Source polls one MPRIS player (org.mpris.MediaPlayer2.<name>) over the
// D-Bus session bus.
type Source struct {
	name string
	conn *dbus.Conn
}

// Verify Source implements player.Source at compile time.
var _ player.Source = (*Source)(nil)

// New creates a source for the MPRIS player with the given bus name suffix,
// e.g. "vlc" or "celluloid".
func New(name string) (*Source, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	return &Source{name: name, conn: conn}, nil
}

func (s *Source) Name() string { return "mpris:" + s.name }

// Poll reads PlaybackStatus, Metadata and Position from the player.
// A player that is not running (bus name not owned) yields a nil status.
func (s *Source) Poll(ctx context.Context) (*player.Status, error) {
	busName := busPrefix + s.name

	var owned bool
	err := s.conn.BusObject().
		CallWithContext(ctx, "org.freedesktop.DBus.NameHasOwner", 0, busName).
		Store(&owned)
	if err != nil {
		return nil, fmt.Errorf("%w: name lookup: %w", player.ErrUnavailable, err)
	}
	if !owned {
		return nil, nil
	}

	obj := s.conn.Object(busName, objectPath)

	var statusStr string
	if err := getProperty(ctx, obj, "PlaybackStatus", &statusStr); err != nil {
		return nil, err
	}
	state, ok := mapPlaybackStatus(types.PlaybackStatus(statusStr))
	if !ok {
		return nil, fmt.Errorf("unknown playback status %q", statusStr)
	}

	var meta map[string]dbus.Variant
	if err := getProperty(ctx, obj, "Metadata", &meta); err != nil {
		return nil, err
	}
	path, length := trackFromMetadata(meta)
	if path == "" {
		return nil, nil
	}

	var position int64
	if err := getProperty(ctx, obj, "Position", &position); err != nil {
		// Some players do not implement Position while stopped.
		position = 0
	}

	return &player.Status{
		State:    state,
		Path:     path,
		Position: microseconds(position).Seconds(),
		Duration: length.Seconds(),
	}, nil
}

func getProperty(ctx context.Context, obj dbus.BusObject, name string, dst any) error {
	var v dbus.Variant
	err := obj.CallWithContext(ctx, "org.freedesktop.DBus.Properties.Get", 0, playerIface, name).Store(&v)
	if err != nil {
		return fmt.Errorf("get %s: %w", name, err)
	}
	if err := dbus.Store([]any{v.Value()}, dst); err != nil {
		return fmt.Errorf("get %s: %w", name, err)
	}
	return nil
}
