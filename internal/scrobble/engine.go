package scrobble

import "github.com/llehouerou/scrobblr/internal/player"

// Engine runs one poll cycle: normalize the snapshot, then decide against
// the previous status.
type Engine struct {
	normalizer *Normalizer
	decider    *Decider
}

// NewEngine combines a normalizer and a decider.
func NewEngine(n *Normalizer, d *Decider) *Engine {
	return &Engine{normalizer: n, decider: d}
}

// Step returns the status derived from snap, which becomes the next
// previous status whether or not any event was produced, and the events
// for the transition from prev.
func (e *Engine) Step(playerName string, prev *Status, snap *player.Status) (*Status, []Event) {
	cur := e.normalizer.Normalize(snap)
	return cur, e.decider.Decide(playerName, prev, cur)
}
