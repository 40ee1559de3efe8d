package cli

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/scrobblr/internal/config"
	"github.com/llehouerou/scrobblr/internal/dispatch"
	"github.com/llehouerou/scrobblr/internal/lastfm"
	"github.com/llehouerou/scrobblr/internal/mpris"
	"github.com/llehouerou/scrobblr/internal/notify"
	"github.com/llehouerou/scrobblr/internal/player"
	"github.com/llehouerou/scrobblr/internal/queue"
	"github.com/llehouerou/scrobblr/internal/resolver"
	"github.com/llehouerou/scrobblr/internal/scrobble"
	"github.com/llehouerou/scrobblr/internal/state"
)

// ErrNoPlayers is returned when the configuration monitors nothing.
var ErrNoPlayers = errors.New("no players to monitor")

// watched is a player source with its poll interval.
type watched struct {
	source   player.Source
	interval time.Duration
}

// pipeline is the running scrobbler: one monitor per player feeding the
// outbound queue, drained by the dispatcher.
type pipeline struct {
	monitors   []*scrobble.Monitor
	queue      *queue.Queue[scrobble.Event]
	dispatcher *dispatch.Dispatcher
}

func newPipeline(sources []watched, engine *scrobble.Engine, logger hclog.Logger, sinks ...dispatch.Sink) *pipeline {
	q := queue.New[scrobble.Event]()
	return &pipeline{
		monitors: lo.Map(sources, func(w watched, _ int) *scrobble.Monitor {
			return scrobble.NewMonitor(w.source, engine, q, w.interval, logger.Named(w.source.Name()))
		}),
		queue:      q,
		dispatcher: dispatch.New(q, logger.Named("dispatch"), sinks...),
	}
}

// Players returns the monitored player names in configuration order.
func (p *pipeline) Players() []string {
	return lo.Map(p.monitors, func(m *scrobble.Monitor, _ int) string { return m.Name() })
}

// Subscribe exposes dispatched events, e.g. to the dashboard.
func (p *pipeline) Subscribe() *dispatch.Subscription {
	return p.dispatcher.Subscribe()
}

// Run monitors every player until ctx is canceled. The stops emitted by
// the monitors on shutdown are still delivered before Run returns.
func (p *pipeline) Run(ctx context.Context) error {
	var delivery errgroup.Group
	delivery.Go(func() error {
		return p.dispatcher.Run(context.WithoutCancel(ctx))
	})

	monitors, mctx := errgroup.WithContext(ctx)
	for _, m := range p.monitors {
		monitors.Go(func() error { return m.Run(mctx) })
	}
	err := monitors.Wait()

	p.queue.Close()
	return errors.Join(err, delivery.Wait())
}

// buildPipeline wires the configured players, resolver and sinks.
func buildPipeline(cfg *config.Config, mgr *state.Manager, logger hclog.Logger) (*pipeline, error) {
	sources := buildSources(cfg, logger)
	if len(sources) == 0 {
		return nil, ErrNoPlayers
	}

	normalizer := scrobble.NewNormalizer(buildResolver(cfg, mgr, logger), logger.Named("normalizer"))
	engine := scrobble.NewEngine(normalizer, scrobble.NewDecider(cfg.SkipInterval()))

	return newPipeline(sources, engine, logger, buildSinks(cfg, mgr, logger)...), nil
}

func buildSources(cfg *config.Config, logger hclog.Logger) []watched {
	var sources []watched

	if cfg.IsMonitored(config.PlayerMPV) {
		c := cfg.GetMPVConfig()
		sources = append(sources, watched{player.NewMPV(c.IPCPath), seconds(c.PollInterval)})
	}
	if cfg.IsMonitored(config.PlayerVLC) {
		c := cfg.GetVLCConfig()
		sources = append(sources, watched{player.NewVLC(c.URL, c.Password), seconds(c.PollInterval)})
	}
	if cfg.IsMonitored(config.PlayerMPRIS) {
		c := cfg.GetMPRISConfig()
		for _, name := range c.Names {
			src, err := mpris.New(name)
			if err != nil {
				logger.Warn("mpris player unavailable", "player", name, "error", err)
				continue
			}
			sources = append(sources, watched{src, seconds(c.PollInterval)})
		}
	}
	return sources
}

// buildResolver chains tag and file name parsing behind the cache and the
// whitelist. A nil store disables caching.
func buildResolver(cfg *config.Config, store resolver.Store, logger hclog.Logger) resolver.Resolver {
	rc := cfg.GetResolverConfig()

	var chain resolver.Chain
	if *rc.UseTags {
		chain = append(chain, resolver.NewTags(nil))
	}
	chain = append(chain, resolver.NewFilename())

	var r resolver.Resolver = chain
	if *rc.Cache && store != nil {
		r = resolver.NewCached(r, store, logger.Named("resolver"))
	}
	if len(rc.Whitelist) > 0 {
		r = resolver.NewWhitelist(r, rc.Whitelist)
	}
	return r
}

func buildSinks(cfg *config.Config, mgr *state.Manager, logger hclog.Logger) []dispatch.Sink {
	sinks := []dispatch.Sink{
		dispatch.LogSink(logger.Named("events")),
		dispatch.SinkFunc("journal", mgr.RecordScrobble),
	}

	if cfg.NotificationsEnabled() {
		n, err := notify.New()
		if err != nil {
			logger.Warn("desktop notifications unavailable", "error", err)
		} else {
			sinks = append(sinks, notify.NewSink(n, nil))
		}
	}

	if sink := lastfmSink(cfg, mgr, logger); sink != nil {
		sinks = append(sinks, sink)
	}
	return sinks
}

func lastfmSink(cfg *config.Config, mgr *state.Manager, logger hclog.Logger) dispatch.Sink {
	if !cfg.HasLastfmConfig() {
		return nil
	}
	session, err := mgr.GetLastfmSession()
	if err != nil {
		logger.Warn("read Last.fm session", "error", err)
		return nil
	}
	if session == nil {
		logger.Info("Last.fm is configured but not linked, run 'scrobblr lastfm auth'")
		return nil
	}

	lc := cfg.GetLastfmConfig()
	client := lastfm.New(lc.APIKey, lc.APISecret)
	client.SetSessionKey(session.SessionKey)
	logger.Info("scrobbling to Last.fm", "user", session.Username)
	return lastfm.NewSink(client, lc.MinProgress, logger.Named("lastfm"))
}

// pruneCache drops resolver cache entries older than the configured TTL.
func pruneCache(cfg *config.Config, mgr *state.Manager, logger hclog.Logger) {
	rc := cfg.GetResolverConfig()
	if !*rc.Cache {
		return
	}
	n, err := mgr.PruneMediaCache(time.Duration(rc.CacheTTLDays) * 24 * time.Hour)
	if err != nil {
		logger.Warn("prune media cache", "error", err)
		return
	}
	if n > 0 {
		logger.Debug("pruned media cache", "entries", n)
	}
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
