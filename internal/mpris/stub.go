//go:build !linux

package mpris

import (
	"context"
	"errors"

	"github.com/llehouerou/scrobblr/internal/player"
)

// ErrUnsupported is returned on platforms without a D-Bus session bus.
var ErrUnsupported = errors.New("mpris is only supported on linux")

// Source is unavailable on non-Linux platforms.
type Source struct{}

// New always fails on non-Linux platforms.
func New(_ string) (*Source, error) {
	return nil, ErrUnsupported
}

func (s *Source) Name() string { return "mpris" }

func (s *Source) Poll(_ context.Context) (*player.Status, error) {
	return nil, ErrUnsupported
}
