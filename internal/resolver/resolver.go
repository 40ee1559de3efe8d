// Package resolver identifies the movie or episode behind a video file.
package resolver

import (
	"errors"

	"github.com/llehouerou/scrobblr/internal/media"
)

// Resolver maps a file path to its media identity. A nil info with a nil
// error means the file was not recognized.
type Resolver interface {
	Resolve(path string) (*media.Info, error)
}

// Chain tries each resolver in order and returns the first match.
type Chain []Resolver

// Resolve returns the first non-nil result. Errors from earlier resolvers
// are only reported when no resolver matched.
func (c Chain) Resolve(path string) (*media.Info, error) {
	var errs []error
	for _, r := range c {
		info, err := r.Resolve(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if info != nil {
			return info, nil
		}
	}
	return nil, errors.Join(errs...)
}
