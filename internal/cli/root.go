// Package cli implements the projsim command line.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/utkarsh5026/projsim/internal/config"
	"github.com/utkarsh5026/projsim/internal/logger"
)

// Version is the projsim release.
const Version = "0.1.0"

type rootOptions struct {
	configPath string
	dbPath     string
	logLevel   string
	quiet      bool
}

// NewRootCmd builds the projsim command tree. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "projsim",
		Short: "Monte Carlo project duration and cost estimation",
		Long: `projsim estimates the distribution of a project's total duration and cost.

Each task's duration is a triangular distribution (min, most likely, max). Tasks are
linked by precedence constraints and simulated a million times by default; the results
are reported as percentiles and probabilities of meeting a deadline or budget.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "project file (YAML); defaults to the built-in reference project")
	flags.StringVar(&opts.dbPath, "db", "", "run archive path (overrides PROJSIM_DB)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "hide progress output")

	root.AddCommand(
		newRunCmd(opts),
		newSampleCmd(opts),
		newGraphCmd(opts),
		newHistoryCmd(opts),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context) int {
	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorText(err))
		return 1
	}
	return 0
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.dbPath != "" {
		cfg.Database = o.dbPath
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return log, nil
}
