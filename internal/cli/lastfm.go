package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/scrobblr/internal/config"
	"github.com/llehouerou/scrobblr/internal/errmsg"
	"github.com/llehouerou/scrobblr/internal/lastfm"
)

// ErrLastfmNotConfigured is returned when the API credentials are missing.
var ErrLastfmNotConfigured = errors.New("lastfm.api_key and lastfm.api_secret are not set")

func newLastfmCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lastfm",
		Short: "Manage the Last.fm account scrobbles are sent to",
	}
	cmd.AddCommand(
		newLastfmAuthCmd(opts),
		newLastfmUnlinkCmd(opts),
		newLastfmStatusCmd(opts),
	)
	return cmd
}

func newLastfmAuthCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Link a Last.fm account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if !cfg.HasLastfmConfig() {
				return errmsg.Wrap(errmsg.OpLastfmAuth,
					fmt.Errorf("%w in %s", ErrLastfmNotConfigured, config.DefaultPath()))
			}

			mgr, err := opts.openState()
			if err != nil {
				return err
			}
			defer mgr.Close()

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			lc := cfg.GetLastfmConfig()
			client := lastfm.New(lc.APIKey, lc.APISecret)
			username, err := lastfm.Link(ctx, client, mgr, func(authURL string) {
				cmd.Println("Authorize scrobblr in your browser:")
				cmd.Println(authURL)
				if err := lastfm.OpenBrowser(authURL); err != nil {
					cmd.Println("(open the link manually)")
				}
			})
			if err != nil {
				return errmsg.Wrap(errmsg.OpLastfmAuth, err)
			}

			cmd.Printf("Linked Last.fm account %s.\n", username)
			return nil
		},
	}
}

func newLastfmUnlinkCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "unlink",
		Short: "Forget the linked Last.fm account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, err := opts.openState()
			if err != nil {
				return err
			}
			defer mgr.Close()

			if err := mgr.DeleteLastfmSession(); err != nil {
				return errmsg.Wrap(errmsg.OpLastfmUnlink, err)
			}
			cmd.Println("Last.fm account unlinked.")
			return nil
		},
	}
}

func newLastfmStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a Last.fm account is linked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			mgr, err := opts.openState()
			if err != nil {
				return err
			}
			defer mgr.Close()

			session, err := mgr.GetLastfmSession()
			if err != nil {
				return errmsg.Wrap(errmsg.OpLastfmStatus, err)
			}

			switch {
			case !cfg.HasLastfmConfig():
				cmd.Println("Last.fm: not configured")
			case session == nil:
				cmd.Println("Last.fm: configured, not linked (run 'scrobblr lastfm auth')")
			default:
				cmd.Printf("Last.fm: linked as %s %s\n", session.Username,
					humanize.RelTime(session.LinkedAt, time.Now(), "ago", "from now"))
				cmd.Printf("Stops are scrobbled from %.0f%% watched\n", cfg.GetLastfmConfig().MinProgress)
			}
			return nil
		},
	}
}
