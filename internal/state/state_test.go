package state

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/scrobblr/internal/media"
	"github.com/llehouerou/scrobblr/internal/player"
	"github.com/llehouerou/scrobblr/internal/scrobble"
)

// setupTestManager opens an in-memory database with the schema initialized.
func setupTestManager(t *testing.T) *Manager {
	t.Helper()

	m, err := OpenPath(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func TestInitSchema_Idempotent(t *testing.T) {
	m := setupTestManager(t)

	require.NoError(t, initSchema(m.DB()))

	var version int
	require.NoError(t, m.DB().QueryRow(`SELECT MAX(version) FROM schema_version`).Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestMediaCache_Miss(t *testing.T) {
	m := setupTestManager(t)

	info, found, err := m.GetCachedMedia("/v/nothing.mkv")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, info)
}

func TestMediaCache_RoundTrip(t *testing.T) {
	m := setupTestManager(t)

	tests := []struct {
		path string
		info *media.Info
	}{
		{"/m/heat.mkv", &media.Info{Type: media.TypeMovie, Title: "Heat", Year: 1995}},
		{"/tv/show.s01e02.mkv", &media.Info{Type: media.TypeEpisode, Title: "Show", Season: 1, Episode: 2}},
		{"/tv/show.s01e03e04.mkv", &media.Info{Type: media.TypeEpisode, Title: "Show", Season: 1, Episodes: []int{3, 4}}},
		{"/v/holiday.mkv", nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			require.NoError(t, m.PutCachedMedia(tt.path, tt.info))

			got, found, err := m.GetCachedMedia(tt.path)

			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, tt.info, got)
		})
	}
}

func TestMediaCache_Overwrite(t *testing.T) {
	m := setupTestManager(t)
	heat := &media.Info{Type: media.TypeMovie, Title: "Heat", Year: 1995}

	require.NoError(t, m.PutCachedMedia("/m/heat.mkv", heat))
	require.NoError(t, m.PutCachedMedia("/m/heat.mkv", nil))

	got, found, err := m.GetCachedMedia("/m/heat.mkv")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Nil(t, got)

	require.NoError(t, m.PutCachedMedia("/m/heat.mkv", heat))
	got, _, err = m.GetCachedMedia("/m/heat.mkv")
	require.NoError(t, err)
	assert.Equal(t, heat, got)
}

func TestPruneMediaCache(t *testing.T) {
	m := setupTestManager(t)
	require.NoError(t, m.PutCachedMedia("/m/new.mkv", nil))
	_, err := m.DB().Exec(`
		INSERT INTO media_cache (path, known, cached_at) VALUES (?, 0, ?)
	`, "/m/old.mkv", time.Now().Add(-48*time.Hour).Unix())
	require.NoError(t, err)

	removed, err := m.PruneMediaCache(24 * time.Hour)

	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	_, found, _ := m.GetCachedMedia("/m/old.mkv")
	assert.False(t, found)
	_, found, _ = m.GetCachedMedia("/m/new.mkv")
	assert.True(t, found)

	require.NoError(t, m.ClearMediaCache())
	_, found, _ = m.GetCachedMedia("/m/new.mkv")
	assert.False(t, found)
}

func newEvent(verb scrobble.Verb, episode int) scrobble.Event {
	return scrobble.Event{
		ID:     uuid.New(),
		Player: "mpv",
		Verb:   verb,
		Status: scrobble.Status{
			State:     player.Playing,
			Progress:  42.5,
			Media:     media.Info{Type: media.TypeEpisode, Title: "Show", Season: 1, Episode: episode},
			UpdatedAt: time.Unix(1700000000, 0),
		},
	}
}

func TestJournal_RecordAndList(t *testing.T) {
	m := setupTestManager(t)
	ctx := context.Background()

	first := newEvent(scrobble.VerbStart, 1)
	second := newEvent(scrobble.VerbStop, 1)
	require.NoError(t, m.RecordScrobble(ctx, first))
	require.NoError(t, m.RecordScrobble(ctx, second))

	got, err := m.RecentScrobbles(10)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID, "newest first")
	assert.Equal(t, first.ID, got[1].ID)
	assert.Equal(t, "mpv", got[1].Player)
	assert.Equal(t, scrobble.VerbStart, got[1].Verb)
	assert.Equal(t, player.Playing, got[1].State)
	assert.InDelta(t, 42.5, got[1].Progress, 1e-9)
	assert.True(t, got[1].Media.Equal(first.Status.Media))
	assert.Equal(t, int64(1700000000), got[1].ObservedAt.Unix())
}

func TestScrobble_Event(t *testing.T) {
	m := setupTestManager(t)
	ev := newEvent(scrobble.VerbStop, 4)
	require.NoError(t, m.RecordScrobble(context.Background(), ev))

	got, err := m.RecentScrobbles(1)
	require.NoError(t, err)
	require.Len(t, got, 1)

	back := got[0].Event()
	assert.Equal(t, ev.ID, back.ID)
	assert.Equal(t, ev.Player, back.Player)
	assert.Equal(t, ev.Verb, back.Verb)
	assert.Equal(t, ev.Status.State, back.Status.State)
	assert.True(t, back.Status.Media.Equal(ev.Status.Media))
	assert.True(t, back.Status.UpdatedAt.Equal(ev.Status.UpdatedAt))
}

func TestJournal_DuplicateIgnored(t *testing.T) {
	m := setupTestManager(t)
	ev := newEvent(scrobble.VerbStart, 1)

	require.NoError(t, m.RecordScrobble(context.Background(), ev))
	require.NoError(t, m.RecordScrobble(context.Background(), ev))

	got, err := m.RecentScrobbles(10)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestJournal_Limit(t *testing.T) {
	m := setupTestManager(t)
	for i := range 5 {
		require.NoError(t, m.RecordScrobble(context.Background(), newEvent(scrobble.VerbStart, i+1)))
	}

	got, err := m.RecentScrobbles(3)

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 5, got[0].Media.Episode)
}

func TestLastfmSession(t *testing.T) {
	m := setupTestManager(t)

	sess, err := m.GetLastfmSession()
	require.NoError(t, err)
	assert.Nil(t, sess)

	require.NoError(t, m.SaveLastfmSession("alice", "key1"))
	require.NoError(t, m.SaveLastfmSession("alice", "key2"))

	sess, err = m.GetLastfmSession()
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "alice", sess.Username)
	assert.Equal(t, "key2", sess.SessionKey)

	require.NoError(t, m.DeleteLastfmSession())
	require.NoError(t, m.DeleteLastfmSession())
	sess, err = m.GetLastfmSession()
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestLastfmSession_Incomplete(t *testing.T) {
	for _, s := range []Interface{setupTestManager(t), NewMock()} {
		require.ErrorIs(t, s.SaveLastfmSession("", "key"), ErrIncompleteSession)
		require.ErrorIs(t, s.SaveLastfmSession("alice", ""), ErrIncompleteSession)

		sess, err := s.GetLastfmSession()
		require.NoError(t, err)
		assert.Nil(t, sess)
	}
}

func TestMock_RecentScrobbles(t *testing.T) {
	m := NewMock()
	for i := range 3 {
		require.NoError(t, m.RecordScrobble(context.Background(), newEvent(scrobble.VerbStart, i+1)))
	}

	got, err := m.RecentScrobbles(2)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].Media.Episode)
	assert.Equal(t, 2, got[1].Media.Episode)
}
