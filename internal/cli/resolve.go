package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/llehouerou/scrobblr/internal/errmsg"
	"github.com/llehouerou/scrobblr/internal/resolver"
)

func newResolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <path>...",
		Short: "Show how files would be identified",
		Long: "Identify each file the way a monitored player's file would be,\n" +
			"bypassing the cache.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			rc := cfg.GetResolverConfig()
			whitelist := resolver.NewWhitelist(nil, rc.Whitelist)

			var chain resolver.Chain
			if *rc.UseTags {
				chain = append(chain, resolver.NewTags(nil))
			}
			chain = append(chain, resolver.NewFilename())

			for _, arg := range args {
				path, err := filepath.Abs(arg)
				if err != nil {
					path = arg
				}
				if !whitelist.Allowed(path) {
					cmd.Printf("%s: outside whitelist\n", arg)
					continue
				}

				info, err := chain.Resolve(path)
				switch {
				case err != nil:
					cmd.Println(errmsg.FormatWith(errmsg.OpResolve, arg, err))
				case info == nil:
					cmd.Printf("%s: unknown\n", arg)
				default:
					cmd.Printf("%s: %s (%s)\n", arg, info, info.Type)
				}
			}
			return nil
		},
	}
}
