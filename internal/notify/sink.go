package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"

	"github.com/llehouerou/scrobblr/internal/scrobble"
)

const notificationTimeout = 5 * time.Second

// Sink shows a desktop notification when playback starts or stops and
// withdraws it on pause. Each player keeps a single notification that later
// events replace.
type Sink struct {
	notifier Notifier
	fs       afero.Fs

	mu   sync.Mutex
	last map[string]uint32
}

// NewSink creates a notification sink. Posters are looked up on fs; a nil
// fs uses the OS filesystem.
func NewSink(n Notifier, fs afero.Fs) *Sink {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Sink{notifier: n, fs: fs, last: make(map[string]uint32)}
}

func (s *Sink) Name() string { return "notify" }

func (s *Sink) Handle(_ context.Context, ev scrobble.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notification(ev)
	if !ok {
		id := s.last[ev.Player]
		delete(s.last, ev.Player)
		if err := s.notifier.Dismiss(id); err != nil {
			return fmt.Errorf("notify %s: %w", ev.Verb, err)
		}
		return nil
	}

	n.ReplacesID = s.last[ev.Player]
	id, err := s.notifier.Notify(n)
	if err != nil {
		return fmt.Errorf("notify %s: %w", ev.Verb, err)
	}
	s.last[ev.Player] = id
	return nil
}

func (s *Sink) notification(ev scrobble.Event) (Notification, bool) {
	n := Notification{
		Summary: ev.Status.Media.String(),
		Timeout: notificationTimeout,
		Urgency: UrgencyLow,
	}
	if ev.Status.Path != "" {
		n.Icon = FindPoster(s.fs, ev.Status.Path)
	}

	switch ev.Verb {
	case scrobble.VerbStart:
		n.Body = fmt.Sprintf("Watching on %s", ev.Player)
		if ev.Status.Progress >= 1 {
			n.Body += fmt.Sprintf(" from %s%%", humanize.FtoaWithDigits(ev.Status.Progress, 0))
		}
	case scrobble.VerbStop:
		n.Body = fmt.Sprintf("Stopped on %s at %s%%", ev.Player, humanize.FtoaWithDigits(ev.Status.Progress, 0))
	default:
		return Notification{}, false
	}
	return n, true
}
