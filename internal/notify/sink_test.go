package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/scrobblr/internal/media"
	"github.com/llehouerou/scrobblr/internal/player"
	"github.com/llehouerou/scrobblr/internal/scrobble"
)

// recordingNotifier records notifications and hands out sequential IDs.
type recordingNotifier struct {
	sent      []Notification
	dismissed []uint32
	nextID    uint32
	err       error
}

func (r *recordingNotifier) Notify(n Notification) (uint32, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.sent = append(r.sent, n)
	if n.ReplacesID != 0 {
		return n.ReplacesID, nil
	}
	r.nextID++
	return r.nextID, nil
}

func (r *recordingNotifier) Dismiss(id uint32) error {
	r.dismissed = append(r.dismissed, id)
	return r.err
}

func testEvent(playerName string, verb scrobble.Verb, progress float64) scrobble.Event {
	return scrobble.Event{
		Player: playerName,
		Verb:   verb,
		Status: scrobble.Status{
			State:    player.Playing,
			Progress: progress,
			Media:    media.Info{Type: media.TypeEpisode, Title: "Show", Season: 1, Episode: 2},
			Path:     "/tv/Show/Season 1/Show.S01E02.mkv",
		},
	}
}

func TestSink_StartAndStop(t *testing.T) {
	rec := &recordingNotifier{}
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/tv/Show/poster.jpg", []byte{1}, 0o600))
	s := NewSink(rec, fs)

	require.NoError(t, s.Handle(context.Background(), testEvent("mpv", scrobble.VerbStart, 0.4)))
	require.NoError(t, s.Handle(context.Background(), testEvent("mpv", scrobble.VerbStop, 91.2)))

	require.Len(t, rec.sent, 2)
	assert.Equal(t, "Show S01E02", rec.sent[0].Summary)
	assert.Equal(t, "Watching on mpv", rec.sent[0].Body)
	assert.Equal(t, "/tv/Show/poster.jpg", rec.sent[0].Icon)
	assert.Equal(t, 5*time.Second, rec.sent[0].Timeout)
	assert.Zero(t, rec.sent[0].ReplacesID)

	assert.Equal(t, "Stopped on mpv at 91%", rec.sent[1].Body)
	assert.Equal(t, uint32(1), rec.sent[1].ReplacesID, "stop replaces the start notification")
}

func TestSink_ResumeShowsProgress(t *testing.T) {
	rec := &recordingNotifier{}
	s := NewSink(rec, afero.NewMemMapFs())

	require.NoError(t, s.Handle(context.Background(), testEvent("vlc", scrobble.VerbStart, 42.6)))

	require.Len(t, rec.sent, 1)
	assert.Equal(t, "Watching on vlc from 42%", rec.sent[0].Body)
	assert.Empty(t, rec.sent[0].Icon)
}

func TestSink_PauseDismisses(t *testing.T) {
	rec := &recordingNotifier{}
	s := NewSink(rec, afero.NewMemMapFs())

	require.NoError(t, s.Handle(context.Background(), testEvent("mpv", scrobble.VerbStart, 0)))
	require.NoError(t, s.Handle(context.Background(), testEvent("mpv", scrobble.VerbPause, 50)))
	require.NoError(t, s.Handle(context.Background(), testEvent("mpv", scrobble.VerbStart, 50)))

	require.Len(t, rec.sent, 2)
	assert.Equal(t, []uint32{1}, rec.dismissed)
	assert.Zero(t, rec.sent[1].ReplacesID, "resume opens a new notification")
}

func TestSink_PlayersKeepSeparateNotifications(t *testing.T) {
	rec := &recordingNotifier{}
	s := NewSink(rec, afero.NewMemMapFs())

	require.NoError(t, s.Handle(context.Background(), testEvent("mpv", scrobble.VerbStart, 0)))
	require.NoError(t, s.Handle(context.Background(), testEvent("vlc", scrobble.VerbStart, 0)))

	require.Len(t, rec.sent, 2)
	assert.Zero(t, rec.sent[1].ReplacesID)
}

func TestSink_NotifierError(t *testing.T) {
	rec := &recordingNotifier{err: errors.New("no server")}
	s := NewSink(rec, afero.NewMemMapFs())

	err := s.Handle(context.Background(), testEvent("mpv", scrobble.VerbStart, 0))

	assert.ErrorContains(t, err, "no server")
}
