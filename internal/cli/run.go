package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/projsim/internal/config"
	"github.com/utkarsh5026/projsim/internal/store"
	"github.com/utkarsh5026/projsim/project"
	"github.com/utkarsh5026/projsim/stats"
)

type runOptions struct {
	samples int
	seed    uint64
	workers int
	save    bool
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate the project and report duration and cost",
		Example: `  # Simulate the built-in reference project
  projsim run

  # Simulate a project file with a fixed seed and archive the run
  projsim run -c project.yaml --seed 42 --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("samples") {
				cfg.Simulation.Samples = opts.samples
			}
			seeded := cfg.Simulation.Seed != 0
			if cmd.Flags().Changed("seed") {
				cfg.Simulation.Seed = opts.seed
				seeded = true
			}
			if cmd.Flags().Changed("workers") {
				cfg.Simulation.Workers = opts.workers
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runSimulation(cmd, root, cfg, seeded, opts.save)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.samples, "samples", "n", 0, "number of simulated draws (default from config, 1,000,000)")
	flags.Uint64Var(&opts.seed, "seed", 0, "run seed; omit for a fresh seed per run")
	flags.IntVarP(&opts.workers, "workers", "w", 0, "simulation workers (0 = one per CPU)")
	flags.BoolVar(&opts.save, "save", false, "archive the run summary")
	return cmd
}

func runSimulation(cmd *cobra.Command, root *rootOptions, cfg *config.Config, seeded, save bool) error {
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	g, err := cfg.Project.Graph()
	if err != nil {
		return fmt.Errorf("project %q: %w", cfg.Project.Name, err)
	}

	simOpts := []project.SimulatorOption{
		project.WithLogger(log),
		project.WithWorkerCount(cfg.Simulation.Workers),
		project.WithChunkSize(cfg.Simulation.ChunkSize),
	}
	if seeded {
		simOpts = append(simOpts, project.WithSeed(cfg.Simulation.Seed))
	}

	var bar *progressbar.ProgressBar
	if !root.quiet {
		total := (g.Len() + 1) * cfg.Simulation.Samples
		bar = newProgressBar(cmd.ErrOrStderr(), total, "Simulating "+cfg.Project.Name)
		simOpts = append(simOpts, project.WithProgress(progressFunc(bar)))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := project.NewSimulator(simOpts...).Run(ctx, g, cfg.Project.OverheadPerDay, cfg.Simulation.Samples)
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(cmd.ErrOrStderr())
	}
	if err != nil {
		return fmt.Errorf("simulation: %w", err)
	}

	duration, err := stats.Summarize(res.Duration)
	if err != nil {
		return err
	}
	cost, err := stats.Summarize(res.Cost)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := renderRun(out, cfg.Project, g, res, duration, cost); err != nil {
		return err
	}

	if !save {
		return nil
	}
	st, err := store.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	saved, err := st.SaveRun(cmd.Context(), store.Run{
		Project:   cfg.Project.Name,
		GraphHash: res.GraphHash,
		Seed:      res.Seed,
		Samples:   res.N,
		Overhead:  res.Overhead,
		Duration:  duration,
		Cost:      cost,
	})
	if err != nil {
		return err
	}
	green.Fprintf(out, "Saved run %s\n", saved.ID)
	return nil
}

func renderRun(
	w io.Writer,
	p config.Project,
	g *project.Graph,
	res *project.Result,
	duration, cost stats.Summary,
) error {
	printSectionHeader(w, fmt.Sprintf("PROJECT %s", p.Name),
		fmt.Sprintf("  Tasks: %d   Draws: %d   Seed: %d   Time: %s",
			g.Len(), res.N, res.Seed, res.Elapsed.Round(time.Millisecond)))

	if err := renderDurationCost(w, duration, cost); err != nil {
		return err
	}

	fmt.Fprintln(w)
	expected := g.ExpectedDuration()
	fmt.Fprintf(w, "Single-point plan (mean durations): %s days\n", formatDays(expected))
	fmt.Fprintf(w, "Simulated mean exceeds it by:       %s days\n", formatDays(duration.Mean-expected))

	if p.Deadline > 0 {
		prob, err := stats.ProbabilityAtMost(res.Duration, p.Deadline)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "P(duration <= %s days): ", formatDays(p.Deadline))
		probabilityColor(prob).Fprintln(w, formatPercent(prob))
	}
	if p.Budget > 0 {
		prob, err := stats.ProbabilityAtMost(res.Cost, p.Budget)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "P(cost <= %s): ", formatMoney(p.Budget))
		probabilityColor(prob).Fprintln(w, formatPercent(prob))
	}
	return nil
}

func newProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "#",
			SaucerHead:    "#",
			SaucerPadding: "-",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// progressFunc adapts bar to the simulator's concurrent callback. Reports can arrive out of
// order, so the bar only moves forward.
func progressFunc(bar *progressbar.ProgressBar) project.ProgressFunc {
	var (
		mu   sync.Mutex
		last int
	)
	return func(done, _ int) {
		mu.Lock()
		defer mu.Unlock()
		if done > last {
			last = done
			_ = bar.Set(done)
		}
	}
}
