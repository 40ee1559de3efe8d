// internal/state/mock.go
package state

import (
	"context"
	"database/sql"
	"slices"
	"sync"
	"time"

	"github.com/llehouerou/scrobblr/internal/media"
	"github.com/llehouerou/scrobblr/internal/scrobble"
)

// Mock is a test double for Manager.
type Mock struct {
	mu        sync.Mutex
	media     map[string]*media.Info
	scrobbles []Scrobble
	session   *LastfmSession
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{media: make(map[string]*media.Info)}
}

func (m *Mock) DB() *sql.DB { return nil }

func (m *Mock) GetCachedMedia(path string) (*media.Info, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	info, ok := m.media[path]
	return info, ok, nil
}

func (m *Mock) PutCachedMedia(path string, info *media.Info) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.media[path] = info
	return nil
}

func (m *Mock) PruneMediaCache(_ time.Duration) (int64, error) {
	return 0, nil
}

func (m *Mock) ClearMediaCache() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.media)
	return nil
}

func (m *Mock) RecordScrobble(_ context.Context, ev scrobble.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scrobbles = append(m.scrobbles, Scrobble{
		ID:         ev.ID,
		Player:     ev.Player,
		Verb:       ev.Verb,
		State:      ev.Status.State,
		Progress:   ev.Status.Progress,
		Media:      ev.Status.Media,
		ObservedAt: ev.Status.UpdatedAt,
		RecordedAt: time.Now(),
	})
	return nil
}

func (m *Mock) RecentScrobbles(n int) ([]Scrobble, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := slices.Clone(m.scrobbles)
	slices.Reverse(out)
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (m *Mock) GetLastfmSession() (*LastfmSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session, nil
}

func (m *Mock) SaveLastfmSession(username, sessionKey string) error {
	if username == "" || sessionKey == "" {
		return ErrIncompleteSession
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = &LastfmSession{Username: username, SessionKey: sessionKey, LinkedAt: time.Now()}
	return nil
}

func (m *Mock) DeleteLastfmSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

func (m *Mock) Close() error { return nil }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
