// Package cli implements the scrobblr command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/llehouerou/scrobblr/internal/config"
	"github.com/llehouerou/scrobblr/internal/errmsg"
	"github.com/llehouerou/scrobblr/internal/state"
)

// options are the persistent flags shared by every command.
type options struct {
	configFile string
	logLevel   string
	dbPath     string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "scrobblr",
		Short: "Scrobble what your video players are showing",
		Long: "scrobblr watches mpv, VLC and MPRIS players, works out which movie or\n" +
			"episode is on screen and reports start, pause and stop events to Last.fm,\n" +
			"desktop notifications and a local history.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetOut(os.Stdout)

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "read this config file after the default ones")
	flags.StringVar(&opts.logLevel, "log-level", "", "override the log level (trace, debug, info, warn, error)")
	flags.StringVar(&opts.dbPath, "db", "", "use this database file instead of the default one")

	root.AddCommand(
		newRunCmd(opts),
		newWatchCmd(opts),
		newHistoryCmd(opts),
		newResolveCmd(opts),
		newLastfmCmd(opts),
		newCacheCmd(opts),
		newConfigCmd(opts),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (o *options) extraConfigs() []string {
	if o.configFile == "" {
		return nil
	}
	return []string{o.configFile}
}

func (o *options) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.extraConfigs()...)
	if err != nil {
		return nil, errmsg.Wrap(errmsg.OpConfigLoad, err)
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	return cfg, nil
}

func (o *options) openState() (*state.Manager, error) {
	var (
		mgr *state.Manager
		err error
	)
	if o.dbPath != "" {
		mgr, err = state.OpenPath(o.dbPath)
	} else {
		mgr, err = state.Open()
	}
	if err != nil {
		return nil, errmsg.Wrap(errmsg.OpStateOpen, err)
	}
	return mgr, nil
}
