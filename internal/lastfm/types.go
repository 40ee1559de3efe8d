package lastfm

import (
	"fmt"
	"time"

	"github.com/shkh/lastfm-go/lastfm"

	"github.com/llehouerou/scrobblr/internal/media"
)

// ScrobbleTrack is what Last.fm receives for one watched video.
type ScrobbleTrack struct {
	Artist    string
	Track     string
	Album     string
	Timestamp time.Time // when playback started
}

func (t ScrobbleTrack) params() lastfm.P {
	p := lastfm.P{"artist": t.Artist, "track": t.Track}
	if t.Album != "" {
		p["album"] = t.Album
	}
	return p
}

// ScrobbleState tracks the scrobbling status of what one player is showing.
type ScrobbleState struct {
	Media     media.Info // What is being watched (for dedup)
	StartedAt time.Time  // When playback started
	Scrobbled bool       // Whether this playback has been scrobbled
	Ended     bool       // Whether a stop closed this playback
}

// TrackFor maps a movie or episode onto Last.fm's artist/track/album
// model: the show or movie title is the artist, the episode code (or the
// movie title) the track, and the season the album.
func TrackFor(mi media.Info) ScrobbleTrack {
	if mi.Type == media.TypeEpisode {
		return ScrobbleTrack{
			Artist: mi.Title,
			Track:  mi.EpisodeCode(),
			Album:  seasonAlbum(mi.Season),
		}
	}
	t := ScrobbleTrack{Artist: mi.Title, Track: mi.Title}
	if mi.Year > 0 {
		t.Album = mi.String()
	}
	return t
}

func seasonAlbum(season int) string {
	if season <= 0 {
		return ""
	}
	return fmt.Sprintf("Season %d", season)
}
