package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/projsim/internal/config"
	"github.com/utkarsh5026/projsim/project"
)

func newGraphCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Show the task graph and its deterministic critical path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			g, err := cfg.Project.Graph()
			if err != nil {
				return fmt.Errorf("project %q: %w", cfg.Project.Name, err)
			}
			return renderGraph(cmd.OutOrStdout(), cfg.Project, g)
		},
	}
}

func renderGraph(w io.Writer, p config.Project, g *project.Graph) error {
	printSectionHeader(w, fmt.Sprintf("PROJECT %s", p.Name),
		fmt.Sprintf("  Tasks: %d   Overhead per day: %s   Hash: %s",
			g.Len(), formatMoney(p.OverheadPerDay), g.Hash()[:12]))

	table := tablewriter.NewWriter(w)
	table.Header("Level", "Task", "Depends on", "Min", "Mode", "Max", "Mean", "Cost/day")
	for level, ids := range g.Levels() {
		for _, id := range ids {
			t, _ := g.Task(id)
			deps := strings.Join(t.DependsOn, ", ")
			if deps == "" {
				deps = "-"
			}
			_ = table.Append(
				strconv.Itoa(level),
				t.ID,
				deps,
				formatDays(t.Duration.Min()),
				formatDays(t.Duration.Mode()),
				formatDays(t.Duration.Max()),
				formatDays(t.Duration.Mean()),
				formatMoney(t.CostPerDay),
			)
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Terminal tasks: %s\n", strings.Join(g.Terminals(), ", "))
	fmt.Fprint(w, "Critical path:  ")
	bold.Fprintf(w, "%s", strings.Join(g.CriticalPath(), " -> "))
	fmt.Fprintf(w, " (%s days at mean durations)\n", formatDays(g.ExpectedDuration()))
	return nil
}
