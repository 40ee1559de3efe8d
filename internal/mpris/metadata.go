package mpris

import (
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/scrobblr/internal/player"
)

const (
	busPrefix   = "org.mpris.MediaPlayer2."
	objectPath  = "/org/mpris/MediaPlayer2"
	playerIface = "org.mpris.MediaPlayer2.Player"
)

// mapPlaybackStatus converts an MPRIS PlaybackStatus to a player state.
func mapPlaybackStatus(status types.PlaybackStatus) (player.State, bool) {
	switch status {
	case types.PlaybackStatusPlaying:
		return player.Playing, true
	case types.PlaybackStatusPaused:
		return player.Paused, true
	case types.PlaybackStatusStopped:
		return player.Stopped, true
	}
	return player.Stopped, false
}

// trackFromMetadata extracts the local file path and track length from an
// MPRIS metadata map. Non-file URLs yield an empty path.
func trackFromMetadata(meta map[string]dbus.Variant) (path string, length time.Duration) {
	if v, ok := meta["xesam:url"]; ok {
		if s, ok := v.Value().(string); ok {
			path = player.FileURIToPath(s)
		}
	}
	if v, ok := meta["mpris:length"]; ok {
		length = microseconds(v.Value())
	}
	return path, length
}

// microseconds reads an MPRIS time value. MPRIS declares int64 but players
// in the wild also send uint64 or 32-bit integers.
func microseconds(v any) time.Duration {
	var us int64
	switch n := v.(type) {
	case int64:
		us = n
	case uint64:
		us = int64(n) //nolint:gosec // lengths never reach 2^63 µs
	case int32:
		us = int64(n)
	case uint32:
		us = int64(n)
	case float64:
		us = int64(n)
	default:
		return 0
	}
	return time.Duration(types.Microseconds(us)) * time.Microsecond
}
