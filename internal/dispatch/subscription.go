package dispatch

import "github.com/llehouerou/scrobblr/internal/scrobble"

const eventBufferSize = 16

// Subscription provides the event channel for a subscriber.
type Subscription struct {
	Events <-chan scrobble.Event
	Done   <-chan struct{}

	eventCh chan scrobble.Event
	doneCh  chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		eventCh: make(chan scrobble.Event, eventBufferSize),
		doneCh:  make(chan struct{}),
	}
	s.Events = s.eventCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// send delivers an event (non-blocking).
func (s *Subscription) send(ev scrobble.Event) {
	select {
	case s.eventCh <- ev:
	default:
		// Drop if buffer full
	}
}
