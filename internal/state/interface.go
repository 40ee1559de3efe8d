// internal/state/interface.go
package state

import (
	"context"
	"database/sql"
	"time"

	"github.com/llehouerou/scrobblr/internal/media"
	"github.com/llehouerou/scrobblr/internal/scrobble"
)

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	DB() *sql.DB
	GetCachedMedia(path string) (*media.Info, bool, error)
	PutCachedMedia(path string, info *media.Info) error
	PruneMediaCache(maxAge time.Duration) (int64, error)
	ClearMediaCache() error
	RecordScrobble(ctx context.Context, ev scrobble.Event) error
	RecentScrobbles(n int) ([]Scrobble, error)
	GetLastfmSession() (*LastfmSession, error)
	SaveLastfmSession(username, sessionKey string) error
	DeleteLastfmSession() error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
