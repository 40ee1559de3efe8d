package scrobble

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/llehouerou/scrobblr/internal/player"
)

// DefaultPollInterval is used when a monitor is created with no interval.
const DefaultPollInterval = 10 * time.Second

// pollTimeout bounds a single Poll so a hung player cannot stall the loop.
const pollTimeout = 5 * time.Second

// Enqueuer accepts events for delivery. Put must not block.
type Enqueuer interface {
	Put(ev Event) error
}

// Monitor polls one player and enqueues the events its engine produces.
// The previous status is owned by the monitor's goroutine.
type Monitor struct {
	source   player.Source
	engine   *Engine
	queue    Enqueuer
	interval time.Duration
	logger   hclog.Logger

	prev        *Status
	unreachable bool
}

// NewMonitor creates a monitor polling source every interval.
func NewMonitor(source player.Source, engine *Engine, queue Enqueuer, interval time.Duration, logger hclog.Logger) *Monitor {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Monitor{
		source:   source,
		engine:   engine,
		queue:    queue,
		interval: interval,
		logger:   logger,
	}
}

// Name returns the monitored player's name.
func (m *Monitor) Name() string {
	return m.source.Name()
}

// Run polls until ctx is canceled. On shutdown a final empty cycle reports
// a stop for anything still playing.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info("started monitor", "interval", m.interval)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Cycle(ctx)
	for {
		select {
		case <-ctx.Done():
			m.handle(nil)
			m.logger.Info("stopped monitor")
			return nil
		case <-ticker.C:
			m.Cycle(ctx)
		}
	}
}

// Cycle polls the player once and processes the snapshot. An unreachable
// player is processed as an absent snapshot.
func (m *Monitor) Cycle(ctx context.Context) {
	pollCtx, cancel := context.WithTimeout(ctx, pollTimeout)
	snap, err := m.source.Poll(pollCtx)
	cancel()

	switch {
	case err != nil && !m.unreachable:
		m.unreachable = true
		m.logger.Info("unable to connect, ensure the player is running with its remote interface enabled", "error", err)
	case err != nil:
		m.logger.Debug("still unreachable", "error", err)
	case m.unreachable:
		m.unreachable = false
		m.logger.Info("connected")
	}
	if err != nil {
		snap = nil
	}

	m.handle(snap)
}

func (m *Monitor) handle(snap *player.Status) {
	next, events := m.engine.Step(m.source.Name(), m.prev, snap)
	for _, ev := range events {
		if err := m.queue.Put(ev); err != nil {
			m.logger.Error("enqueue scrobble", "verb", ev.Verb, "error", err)
			continue
		}
		m.logger.Info("scrobble",
			"verb", ev.Verb,
			"media", ev.Status.Media.String(),
			"progress", ev.Status.Progress,
		)
	}
	m.prev = next
}
