package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/llehouerou/scrobblr/internal/errmsg"
)

func newCacheCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the cache of identified files",
	}
	cmd.AddCommand(newCacheClearCmd(opts), newCachePruneCmd(opts))
	return cmd
}

func newCacheClearCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget every identified file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, err := opts.openState()
			if err != nil {
				return err
			}
			defer mgr.Close()

			if err := mgr.ClearMediaCache(); err != nil {
				return errmsg.Wrap(errmsg.OpCacheClear, err)
			}
			cmd.Println("Media cache cleared.")
			return nil
		},
	}
}

func newCachePruneCmd(opts *options) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Forget files identified longer ago than the cache TTL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("days") {
				cfg, err := opts.loadConfig()
				if err != nil {
					return err
				}
				days = cfg.GetResolverConfig().CacheTTLDays
			}

			mgr, err := opts.openState()
			if err != nil {
				return err
			}
			defer mgr.Close()

			n, err := mgr.PruneMediaCache(time.Duration(days) * 24 * time.Hour)
			if err != nil {
				return errmsg.Wrap(errmsg.OpCachePrune, err)
			}
			cmd.Printf("Pruned %d cached entries.\n", n)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "maximum age in days (default: resolver.cache_ttl_days)")
	return cmd
}
