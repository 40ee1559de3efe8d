package scrobble

import (
	"math"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/llehouerou/scrobblr/internal/media"
	"github.com/llehouerou/scrobblr/internal/player"
)

// Resolver maps a file path to its media identity.
// A nil info with a nil error means the file is not recognized.
type Resolver interface {
	Resolve(path string) (*media.Info, error)
}

// Normalizer converts raw snapshots into Status values.
type Normalizer struct {
	resolver Resolver
	now      func() time.Time
	logger   hclog.Logger
}

// NewNormalizer creates a normalizer resolving paths with r.
func NewNormalizer(r Resolver, logger hclog.Logger) *Normalizer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Normalizer{resolver: r, now: time.Now, logger: logger}
}

// Normalize returns the Status for a snapshot, or nil when nothing
// trackable is playing: no snapshot, no path, no usable duration, or
// media the resolver does not recognize. It never fails.
func (n *Normalizer) Normalize(snap *player.Status) *Status {
	if snap == nil || !snap.State.Valid() || snap.Path == "" || !(snap.Duration > 0) {
		return nil
	}

	info, err := n.resolver.Resolve(snap.Path)
	if err != nil {
		n.logger.Debug("resolve failed", "path", snap.Path, "error", err)
		return nil
	}
	if info == nil {
		return nil
	}

	mi := *info
	position, duration := snap.Position, snap.Duration

	if mi.IsMultiEpisode() {
		var ok bool
		mi, position, duration, ok = splitEpisodes(mi, position, duration)
		if !ok {
			return nil
		}
	}

	return &Status{
		State:     snap.State,
		Progress:  progress(position, duration),
		Media:     mi,
		UpdatedAt: n.now(),
		Path:      snap.Path,
	}
}

// splitEpisodes treats a file spanning N episodes as N equal segments and
// narrows the info to the segment containing position. Positions past the
// last segment stay on the last episode.
func splitEpisodes(mi media.Info, position, duration float64) (media.Info, float64, float64, bool) {
	n := len(mi.Episodes)
	segment := math.Floor(duration / float64(n))
	if segment <= 0 {
		return mi, 0, 0, false
	}

	idx := int(math.Floor(position / segment))
	idx = max(0, min(idx, n-1))

	return mi.WithEpisode(mi.Episodes[idx]), position - float64(idx)*segment, segment, true
}

// progress returns position as a percentage of duration, rounded to two
// decimals and clamped to [0, 100].
func progress(position, duration float64) float64 {
	p := math.Round(position*100/duration*100) / 100
	return max(0, min(p, 100))
}
