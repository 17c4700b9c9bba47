package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/projsim/internal/store"
)

func newHistoryCmd(root *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List archived runs, or show one in full",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			st, err := store.Open(cfg.Database)
			if err != nil {
				return err
			}
			defer st.Close()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				r, err := st.GetRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return renderStoredRun(out, r)
			}

			runs, err := st.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return renderHistory(out, runs)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "maximum number of runs to list (0 = all)")
	return cmd
}

func renderHistory(w io.Writer, runs []store.Run) error {
	if len(runs) == 0 {
		yellow.Fprintln(w, "No archived runs.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Run", "Created", "Project", "Draws", "Seed", "Duration P50", "Duration P80", "Cost P50", "Cost P80")
	for _, r := range runs {
		_ = table.Append(
			shortID(r.ID),
			r.CreatedAt.Local().Format(time.DateTime),
			r.Project,
			strconv.Itoa(r.Samples),
			strconv.FormatUint(r.Seed, 10),
			formatDays(r.Duration.P50),
			formatDays(r.Duration.P80),
			formatMoney(r.Cost.P50),
			formatMoney(r.Cost.P80),
		)
	}
	return table.Render()
}

func renderStoredRun(w io.Writer, r store.Run) error {
	printSectionHeader(w, fmt.Sprintf("RUN %s", r.ID),
		fmt.Sprintf("  Project: %s   Created: %s", r.Project, r.CreatedAt.Local().Format(time.DateTime)),
		fmt.Sprintf("  Draws: %d   Seed: %d   Overhead per day: %s   Graph: %s",
			r.Samples, r.Seed, formatMoney(r.Overhead), r.GraphHash))
	return renderDurationCost(w, r.Duration, r.Cost)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
