package resolver

import (
	"github.com/hashicorp/go-hclog"

	"github.com/llehouerou/scrobblr/internal/media"
)

// Store persists resolver results. A nil info is a cached negative.
type Store interface {
	GetCachedMedia(path string) (info *media.Info, found bool, err error)
	PutCachedMedia(path string, info *media.Info) error
}

// Cached remembers the results of another resolver, including files it
// did not recognize. Resolver errors are not cached.
type Cached struct {
	next   Resolver
	store  Store
	logger hclog.Logger
}

// NewCached wraps next with store.
func NewCached(next Resolver, store Store, logger hclog.Logger) *Cached {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Cached{next: next, store: store, logger: logger}
}

// Resolve returns the cached result for path, resolving and storing it on
// a miss. A failing store degrades to uncached resolution.
func (c *Cached) Resolve(path string) (*media.Info, error) {
	info, found, err := c.store.GetCachedMedia(path)
	if err != nil {
		c.logger.Warn("read media cache", "path", path, "error", err)
	} else if found {
		return info, nil
	}

	info, err = c.next.Resolve(path)
	if err != nil {
		return nil, err
	}

	if err := c.store.PutCachedMedia(path, info); err != nil {
		c.logger.Warn("write media cache", "path", path, "error", err)
	}
	return info, nil
}
