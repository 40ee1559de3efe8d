package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/llehouerou/scrobblr/internal/config"
)

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}
	cmd.AddCommand(newConfigPathCmd(opts))
	return cmd
}

func newConfigPathCmd(opts *options) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print where the configuration is read from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !all {
				cmd.Println(config.DefaultPath())
				return nil
			}
			for _, path := range config.SearchPaths(opts.extraConfigs()...) {
				mark := "-"
				if _, err := os.Stat(path); err == nil {
					mark = "✓"
				}
				cmd.Printf("%s %s\n", mark, path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "list every searched file, later ones taking precedence")
	return cmd
}
