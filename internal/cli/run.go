package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/scrobblr/internal/config"
	"github.com/llehouerou/scrobblr/internal/errmsg"
	"github.com/llehouerou/scrobblr/internal/logging"
	"github.com/llehouerou/scrobblr/internal/scrobble"
	"github.com/llehouerou/scrobblr/internal/state"
	"github.com/llehouerou/scrobblr/internal/ui/dashboard"
)

// historySize is the number of journaled events the dashboard starts with.
const historySize = 50

// daemon holds what the long-running commands share.
type daemon struct {
	cfg      *config.Config
	logger   hclog.Logger
	mgr      *state.Manager
	pipeline *pipeline

	closers []io.Closer
}

// start loads the configuration, opens the logger and the database and
// builds the pipeline. toFile sends logs to a file even when none is
// configured.
func (o *options) start(toFile bool) (*daemon, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	logOpts := logging.FromConfig(cfg.GetLogConfig())
	if toFile && logOpts.File == "" {
		if logOpts.File, err = logging.DefaultFile(); err != nil {
			return nil, errmsg.Wrap(errmsg.OpInitialize, err)
		}
	}
	logger, logCloser, err := logging.New(logOpts)
	if err != nil {
		return nil, errmsg.Wrap(errmsg.OpInitialize, err)
	}
	d := &daemon{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}

	d.mgr, err = o.openState()
	if err != nil {
		d.Close()
		return nil, err
	}
	d.closers = append([]io.Closer{d.mgr}, d.closers...)

	pruneCache(cfg, d.mgr, logger)

	d.pipeline, err = buildPipeline(cfg, d.mgr, logger)
	if err != nil {
		d.Close()
		return nil, errmsg.Wrap(errmsg.OpInitialize, err)
	}
	return d, nil
}

// Close releases the database and the log file.
func (d *daemon) Close() {
	for _, c := range d.closers {
		_ = c.Close()
	}
}

func signalContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Monitor players and scrobble until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := opts.start(false)
			if err != nil {
				return err
			}
			defer d.Close()

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			d.logger.Info("monitoring", "players", d.pipeline.Players())
			return d.pipeline.Run(ctx)
		},
	}
}

func newWatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Monitor players and scrobble with a live dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := opts.start(true)
			if err != nil {
				return err
			}
			defer d.Close()

			recent, err := d.mgr.RecentScrobbles(historySize)
			if err != nil {
				d.logger.Warn(errmsg.Format(errmsg.OpHistoryLoad, err))
			}

			sub := d.pipeline.Subscribe()
			model := dashboard.New(dashboard.Options{
				Players: d.pipeline.Players(),
				History: lo.Map(recent, func(s state.Scrobble, _ int) scrobble.Event { return s.Event() }),
				Events:  sub.Events,
				Done:    sub.Done,
			})

			ctx, stop := signalContext(cmd.Context())
			defer stop()
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			var g errgroup.Group
			g.Go(func() error { return d.pipeline.Run(ctx) })

			_, uiErr := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if errors.Is(uiErr, tea.ErrProgramKilled) {
				uiErr = nil
			}
			cancel()
			return errors.Join(uiErr, g.Wait())
		},
	}
}
