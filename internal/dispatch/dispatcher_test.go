package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/synctest"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/scrobblr/internal/media"
	"github.com/llehouerou/scrobblr/internal/player"
	"github.com/llehouerou/scrobblr/internal/queue"
	"github.com/llehouerou/scrobblr/internal/scrobble"
)

type recorder struct {
	mu   sync.Mutex
	seen []scrobble.Verb
}

func (r *recorder) handle(_ context.Context, ev scrobble.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, ev.Verb)
	return nil
}

func (r *recorder) verbs() []scrobble.Verb {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]scrobble.Verb(nil), r.seen...)
}

func event(verb scrobble.Verb) scrobble.Event {
	return scrobble.Event{
		Player: "mpv",
		Verb:   verb,
		Status: scrobble.Status{
			State:    player.Playing,
			Progress: 10,
			Media:    media.Info{Type: media.TypeMovie, Title: "Heat", Year: 1995},
		},
	}
}

func TestRun_DeliversInOrderUntilClosed(t *testing.T) {
	q := queue.New[scrobble.Event]()
	rec := &recorder{}
	d := New(q, nil, SinkFunc("rec", rec.handle))

	require.NoError(t, q.Put(event(scrobble.VerbStart)))
	require.NoError(t, q.Put(event(scrobble.VerbPause)))
	require.NoError(t, q.Put(event(scrobble.VerbStop)))
	q.Close()

	require.NoError(t, d.Run(context.Background()))
	assert.Equal(t, []scrobble.Verb{scrobble.VerbStart, scrobble.VerbPause, scrobble.VerbStop}, rec.verbs())
}

func TestRun_FailingSinkDoesNotStopDelivery(t *testing.T) {
	q := queue.New[scrobble.Event]()
	rec := &recorder{}
	failing := SinkFunc("broken", func(context.Context, scrobble.Event) error {
		return errors.New("remote down")
	})
	d := New(q, nil, failing, SinkFunc("rec", rec.handle))

	require.NoError(t, q.Put(event(scrobble.VerbStart)))
	require.NoError(t, q.Put(event(scrobble.VerbStop)))
	q.Close()

	require.NoError(t, d.Run(context.Background()))
	assert.Equal(t, []scrobble.Verb{scrobble.VerbStart, scrobble.VerbStop}, rec.verbs())
}

func TestRun_ReturnsContextError(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		q := queue.New[scrobble.Event]()
		d := New(q, nil)
		ctx, cancel := context.WithCancel(t.Context())

		done := make(chan error, 1)
		go func() { done <- d.Run(ctx) }()
		synctest.Wait()

		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)
	})
}

func TestSubscribe_ReceivesEventsAndDone(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		q := queue.New[scrobble.Event]()
		d := New(q, nil, LogSink(hclog.NewNullLogger()))
		sub := d.Subscribe()

		done := make(chan error, 1)
		go func() { done <- d.Run(t.Context()) }()

		require.NoError(t, q.Put(event(scrobble.VerbStart)))
		ev := <-sub.Events
		assert.Equal(t, scrobble.VerbStart, ev.Verb)

		q.Close()
		require.NoError(t, <-done)
		<-sub.Done

		late := d.Subscribe()
		<-late.Done
	})
}

func TestSubscription_NonBlocking_DropsWhenFull(t *testing.T) {
	sub := newSubscription()

	for range eventBufferSize + 5 {
		sub.send(event(scrobble.VerbStart))
	}

	assert.Len(t, sub.Events, eventBufferSize)
}
