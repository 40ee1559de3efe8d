// Package dispatch delivers queued scrobble events to sinks and
// subscribers.
package dispatch

import (
	"context"
	"errors"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/llehouerou/scrobblr/internal/queue"
	"github.com/llehouerou/scrobblr/internal/scrobble"
)

// Source is the consuming side of the outbound queue.
type Source interface {
	Get(ctx context.Context) (scrobble.Event, error)
}

// Dispatcher is the single consumer of the outbound queue.
type Dispatcher struct {
	source Source
	sinks  []Sink
	logger hclog.Logger

	mu   sync.Mutex
	subs []*Subscription
	done bool
}

// New creates a dispatcher delivering to sinks in order.
func New(source Source, logger hclog.Logger, sinks ...Sink) *Dispatcher {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Dispatcher{source: source, sinks: sinks, logger: logger}
}

// Subscribe returns a subscription receiving every dispatched event.
// Its Done channel is closed when Run returns.
func (d *Dispatcher) Subscribe() *Subscription {
	d.mu.Lock()
	defer d.mu.Unlock()
	sub := newSubscription()
	if d.done {
		sub.close()
		return sub
	}
	d.subs = append(d.subs, sub)
	return sub
}

// Run delivers events until the queue is closed and drained, or ctx is
// canceled. A failing sink is logged and does not stop delivery.
func (d *Dispatcher) Run(ctx context.Context) error {
	defer d.closeSubscriptions()

	for {
		ev, err := d.source.Get(ctx)
		if errors.Is(err, queue.ErrClosed) {
			return nil
		}
		if err != nil {
			return err
		}
		d.Deliver(ctx, ev)
	}
}

// Deliver hands one event to every sink, then to subscribers.
func (d *Dispatcher) Deliver(ctx context.Context, ev scrobble.Event) {
	for _, s := range d.sinks {
		if err := s.Handle(ctx, ev); err != nil {
			d.logger.Warn("sink failed", "sink", s.Name(), "verb", ev.Verb, "error", err)
		}
	}

	d.mu.Lock()
	for _, sub := range d.subs {
		sub.send(ev)
	}
	d.mu.Unlock()
}

func (d *Dispatcher) closeSubscriptions() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, sub := range d.subs {
		sub.close()
	}
	d.subs = nil
	d.done = true
}
