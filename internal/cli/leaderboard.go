package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"awareness-training-service/internal/config"
	"awareness-training-service/internal/domain"
	"github.com/spf13/cobra"
)

// NewLeaderboardCmd prints the current leaderboard using the same fallback
// chain the server uses.
func NewLeaderboardCmd(configPath *string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the quiz leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			d, err := buildDeps(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer d.Close()

			rows, source := d.gateway.FetchLeaderboard(cmd.Context(), limit)
			fmt.Fprintf(cmd.OutOrStdout(), "source: %s\n", source)
			return writeLeaderboard(cmd.OutOrStdout(), rows)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "number of rows (0 uses the configured default)")
	return cmd
}

func writeLeaderboard(w io.Writer, rows []domain.LeaderboardRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tNAME\tDEPARTMENT\tSCORE\tPERCENT")
	for _, row := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d/%d\t%d%%\n", row.Rank, row.Name, row.Department, row.Score, row.Total, row.Percentage)
	}
	return tw.Flush()
}
