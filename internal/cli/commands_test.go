package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/scrobblr/internal/config"
	"github.com/llehouerou/scrobblr/internal/media"
	"github.com/llehouerou/scrobblr/internal/player"
	"github.com/llehouerou/scrobblr/internal/scrobble"
	"github.com/llehouerou/scrobblr/internal/state"
)

// testEnv runs commands against a scratch database and config file.
type testEnv struct {
	dir    string
	db     string
	config string
}

func newTestEnv(t *testing.T, configTOML string) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	env := &testEnv{
		dir:    dir,
		db:     filepath.Join(dir, "test.db"),
		config: filepath.Join(dir, "test.toml"),
	}
	require.NoError(t, os.WriteFile(env.config, []byte(configTOML), 0o600))
	return env
}

func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--db", e.db, "--config", e.config}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (e *testEnv) manager(t *testing.T) *state.Manager {
	t.Helper()
	mgr, err := state.OpenPath(e.db)
	require.NoError(t, err)
	t.Cleanup(func() { mgr.Close() })
	return mgr
}

func TestHistory_Empty(t *testing.T) {
	env := newTestEnv(t, "")

	out, err := env.run(t, "history")

	require.NoError(t, err)
	assert.Contains(t, out, "No scrobbles yet.")
}

func TestHistory_ListsEvents(t *testing.T) {
	env := newTestEnv(t, "")
	mgr := env.manager(t)
	for i, verb := range []scrobble.Verb{scrobble.VerbStart, scrobble.VerbStop} {
		require.NoError(t, mgr.RecordScrobble(context.Background(), scrobble.Event{
			ID:     uuid.New(),
			Player: "mpv",
			Verb:   verb,
			Status: scrobble.Status{
				State:     player.Playing,
				Progress:  float64(40 + i*50),
				Media:     media.Info{Type: media.TypeEpisode, Title: "Dark", Season: 1, Episode: 2},
				UpdatedAt: time.Now(),
			},
		}))
	}

	out, err := env.run(t, "history", "-n", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "MEDIA")
	assert.Contains(t, out, "Dark S01E02")
	assert.Contains(t, out, "90%")
	assert.NotContains(t, out, "40%", "only the newest event is listed")
}

func TestResolve(t *testing.T) {
	env := newTestEnv(t, "[resolver]\nuse_tags = false\nwhitelist = [\"/v\", \"/m\"]\n")

	out, err := env.run(t, "resolve", "/v/Dark.S01E02.mkv", "/m/Heat (1995).mkv", "/v/notes.txt", "/tmp/Dark.S01E03.mkv")

	require.NoError(t, err)
	assert.Contains(t, out, "/v/Dark.S01E02.mkv: Dark S01E02 (episode)")
	assert.Contains(t, out, "/m/Heat (1995).mkv: Heat (1995) (movie)")
	assert.Contains(t, out, "/tmp/Dark.S01E03.mkv: outside whitelist")
}

func TestResolve_RequiresPath(t *testing.T) {
	env := newTestEnv(t, "")

	_, err := env.run(t, "resolve")

	require.Error(t, err)
}

func TestLastfm_StatusAndUnlink(t *testing.T) {
	env := newTestEnv(t, "[lastfm]\napi_key = \"key\"\napi_secret = \"secret\"\nmin_progress = 70\n")

	out, err := env.run(t, "lastfm", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "not linked")

	mgr := env.manager(t)
	require.NoError(t, mgr.SaveLastfmSession("alice", "session-key"))

	out, err = env.run(t, "lastfm", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "linked as alice")
	assert.Contains(t, out, "70%")

	out, err = env.run(t, "lastfm", "unlink")
	require.NoError(t, err)
	assert.Contains(t, out, "unlinked")

	session, err := mgr.GetLastfmSession()
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestCache_ClearAndPrune(t *testing.T) {
	env := newTestEnv(t, "")
	mgr := env.manager(t)
	require.NoError(t, mgr.PutCachedMedia("/m/Heat (1995).mkv", &media.Info{Type: media.TypeMovie, Title: "Heat", Year: 1995}))

	out, err := env.run(t, "cache", "prune", "--days", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Pruned 0 cached entries.")

	out, err = env.run(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Media cache cleared.")

	_, found, err := mgr.GetCachedMedia("/m/Heat (1995).mkv")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestConfigPath(t *testing.T) {
	env := newTestEnv(t, "")

	out, err := env.run(t, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPath()+"\n", out)

	out, err = env.run(t, "config", "path", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ "+env.config)
	assert.Contains(t, out, "config.toml")
}

func TestBadConfig(t *testing.T) {
	env := newTestEnv(t, "[players]\nmonitored = [\"winamp\"]\n")

	_, err := env.run(t, "resolve", "/v/x.mkv")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to load configuration")
}
