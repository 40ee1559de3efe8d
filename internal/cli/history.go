package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/scrobblr/internal/errmsg"
	"github.com/llehouerou/scrobblr/internal/state"
)

func newHistoryCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the most recent scrobble events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, err := opts.openState()
			if err != nil {
				return err
			}
			defer mgr.Close()

			scrobbles, err := mgr.RecentScrobbles(limit)
			if err != nil {
				return errmsg.Wrap(errmsg.OpHistoryLoad, err)
			}
			if len(scrobbles) == 0 {
				cmd.Println("No scrobbles yet.")
				return nil
			}
			cmd.Println(historyTable(scrobbles, time.Now()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "number", "n", 20, "number of events to show")
	return cmd
}

// historyTable renders scrobbles newest first.
func historyTable(scrobbles []state.Scrobble, now time.Time) string {
	rows := make([][]string, 0, len(scrobbles))
	for _, s := range scrobbles {
		rows = append(rows, []string{
			humanize.RelTime(s.ObservedAt, now, "ago", "from now"),
			s.Player,
			string(s.Verb),
			fmt.Sprintf("%.0f%%", s.Progress),
			s.Media.String(),
		})
	}

	header := lipgloss.NewStyle().Bold(true)
	return table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("WHEN", "PLAYER", "EVENT", "PROGRESS", "MEDIA").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
