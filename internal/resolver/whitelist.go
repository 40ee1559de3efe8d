package resolver

import (
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/llehouerou/scrobblr/internal/media"
)

// Whitelist only resolves files under one of its directories. An empty
// whitelist allows everything.
type Whitelist struct {
	next Resolver
	dirs []string
}

// NewWhitelist wraps next with a directory filter.
func NewWhitelist(next Resolver, dirs []string) *Whitelist {
	dirs = lo.Compact(dirs)
	return &Whitelist{
		next: next,
		dirs: lo.Map(dirs, func(d string, _ int) string { return filepath.Clean(d) }),
	}
}

// Allowed reports whether path is inside a whitelisted directory.
func (w *Whitelist) Allowed(path string) bool {
	if len(w.dirs) == 0 {
		return true
	}
	path = filepath.Clean(path)
	return lo.ContainsBy(w.dirs, func(dir string) bool {
		return path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) ||
			dir == string(filepath.Separator)
	})
}

// Resolve delegates to the wrapped resolver for allowed paths.
func (w *Whitelist) Resolve(path string) (*media.Info, error) {
	if !w.Allowed(path) {
		return nil, nil
	}
	return w.next.Resolve(path)
}
