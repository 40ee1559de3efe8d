package scrobble

import (
	"sync"
	"time"

	"github.com/llehouerou/scrobblr/internal/media"
)

var fixedNow = time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)

// mapResolver resolves paths from a fixed table.
type mapResolver map[string]media.Info

func (r mapResolver) Resolve(path string) (*media.Info, error) {
	info, ok := r[path]
	if !ok {
		return nil, nil
	}
	return &info, nil
}

func newTestNormalizer(r Resolver) *Normalizer {
	n := NewNormalizer(r, nil)
	n.now = func() time.Time { return fixedNow }
	return n
}

// recordingQueue collects enqueued events.
type recordingQueue struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (q *recordingQueue) Put(ev Event) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.events = append(q.events, ev)
	return nil
}

func (q *recordingQueue) Events() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Event(nil), q.events...)
}

func verbsOf(events []Event) []Verb {
	out := make([]Verb, len(events))
	for i, ev := range events {
		out[i] = ev.Verb
	}
	return out
}

var (
	showE1 = media.Info{Type: media.TypeEpisode, Title: "Show", Season: 1, Episode: 1}
	showE2 = media.Info{Type: media.TypeEpisode, Title: "Show", Season: 1, Episode: 2}
	movie  = media.Info{Type: media.TypeMovie, Title: "Heat", Year: 1995}
)
