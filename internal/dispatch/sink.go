package dispatch

import (
	"context"

	"github.com/hashicorp/go-hclog"

	"github.com/llehouerou/scrobblr/internal/scrobble"
)

// Sink receives every dispatched event.
type Sink interface {
	Name() string
	Handle(ctx context.Context, ev scrobble.Event) error
}

type funcSink struct {
	name string
	fn   func(context.Context, scrobble.Event) error
}

func (s funcSink) Name() string { return s.name }

func (s funcSink) Handle(ctx context.Context, ev scrobble.Event) error {
	return s.fn(ctx, ev)
}

// SinkFunc adapts a function to a named Sink.
func SinkFunc(name string, fn func(context.Context, scrobble.Event) error) Sink {
	return funcSink{name: name, fn: fn}
}

// LogSink returns a sink that logs each event.
func LogSink(logger hclog.Logger) Sink {
	return SinkFunc("log", func(_ context.Context, ev scrobble.Event) error {
		logger.Info("dispatched",
			"player", ev.Player,
			"verb", ev.Verb,
			"media", ev.Status.Media.String(),
			"progress", ev.Status.Progress,
			"id", ev.ID,
		)
		return nil
	})
}
