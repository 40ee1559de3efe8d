package lastfm

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/llehouerou/scrobblr/internal/scrobble"
)

// DefaultMinProgress is the progress, in percent, a stop must reach to be
// scrobbled.
const DefaultMinProgress = 80

// Scrobbler is the subset of Client the sink needs.
type Scrobbler interface {
	IsAuthenticated() bool
	UpdateNowPlaying(track ScrobbleTrack) error
	Scrobble(track ScrobbleTrack) error
}

// Sink forwards events to Last.fm: starts update "now playing" and stops
// past the minimum progress become scrobbles. Pauses are ignored.
type Sink struct {
	client      Scrobbler
	minProgress float64
	logger      hclog.Logger

	mu      sync.Mutex
	players map[string]*ScrobbleState
}

// NewSink creates a Last.fm sink. A non-positive minProgress uses
// DefaultMinProgress.
func NewSink(client Scrobbler, minProgress float64, logger hclog.Logger) *Sink {
	if minProgress <= 0 {
		minProgress = DefaultMinProgress
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Sink{
		client:      client,
		minProgress: minProgress,
		logger:      logger,
		players:     make(map[string]*ScrobbleState),
	}
}

func (s *Sink) Name() string { return "lastfm" }

// Handle submits ev to Last.fm. Without a session every event is skipped.
func (s *Sink) Handle(_ context.Context, ev scrobble.Event) error {
	if !s.client.IsAuthenticated() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stateFor(ev)
	track := TrackFor(ev.Status.Media)
	track.Timestamp = st.StartedAt

	switch ev.Verb {
	case scrobble.VerbStart:
		if err := s.client.UpdateNowPlaying(track); err != nil {
			return fmt.Errorf("now playing %s: %w", ev.Status.Media, err)
		}
	case scrobble.VerbStop:
		st.Ended = true
		if st.Scrobbled {
			return nil
		}
		if ev.Status.Progress < s.minProgress {
			s.logger.Debug("not scrobbled, too little watched",
				"media", ev.Status.Media.String(), "progress", ev.Status.Progress)
			return nil
		}
		if err := s.client.Scrobble(track); err != nil {
			return fmt.Errorf("scrobble %s: %w", ev.Status.Media, err)
		}
		st.Scrobbled = true
		s.logger.Info("scrobbled", "media", ev.Status.Media.String(), "player", ev.Player)
	}
	return nil
}

// stateFor returns the tracking state of ev's player, starting afresh when
// the media changed or when playback resumes after a stop.
func (s *Sink) stateFor(ev scrobble.Event) *ScrobbleState {
	st, ok := s.players[ev.Player]
	if ok && st.Media.Equal(ev.Status.Media) && (!st.Ended || ev.Verb == scrobble.VerbStop) {
		return st
	}
	started := ev.Status.UpdatedAt
	if started.IsZero() {
		started = time.Now()
	}
	st = &ScrobbleState{Media: ev.Status.Media, StartedAt: started}
	s.players[ev.Player] = st
	return st
}
