// Package config loads projsim project files.
//
// Settings are resolved in order: built-in defaults, the YAML project file, then PROJSIM_*
// environment variables. Command-line flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/utkarsh5026/projsim/internal/logger"
	"github.com/utkarsh5026/projsim/project"
	"github.com/utkarsh5026/projsim/triangular"
)

// ErrInvalidConfig is returned when a loaded configuration cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete projsim configuration.
type Config struct {
	Project    Project       `yaml:"project"`
	Simulation Simulation    `yaml:"simulation"`
	Log        logger.Config `yaml:"log" envPrefix:"PROJSIM_LOG_"`

	// Database is the path of the SQLite run archive.
	Database string `yaml:"database" env:"PROJSIM_DB"`
}

// Project describes the task graph and its economics.
type Project struct {
	Name string `yaml:"name"`

	// OverheadPerDay is charged for every day of total project duration.
	OverheadPerDay float64 `yaml:"overhead_per_day"`

	// Terminals lists the tasks whose finish ends the project; empty means all sinks.
	Terminals []string `yaml:"terminals,omitempty"`

	// Deadline and Budget are optional targets in days and currency; zero disables them.
	Deadline float64 `yaml:"deadline,omitempty"`
	Budget   float64 `yaml:"budget,omitempty"`

	Tasks []Task `yaml:"tasks"`
}

// Task is the file form of project.Task.
type Task struct {
	ID         string   `yaml:"id"`
	Min        float64  `yaml:"min"`
	Mode       float64  `yaml:"mode"`
	Max        float64  `yaml:"max"`
	CostPerDay float64  `yaml:"cost_per_day"`
	DependsOn  []string `yaml:"depends_on,omitempty"`
}

// Simulation holds run settings.
type Simulation struct {
	Samples int `yaml:"samples" env:"PROJSIM_SAMPLES"`

	// Seed fixes the run seed; zero draws a fresh one per run.
	Seed uint64 `yaml:"seed,omitempty" env:"PROJSIM_SEED"`

	// Workers is the number of simulation workers; zero means one per CPU.
	Workers   int `yaml:"workers" env:"PROJSIM_WORKERS"`
	ChunkSize int `yaml:"chunk_size"`
}

// Default returns the built-in configuration: the four-task reference project.
func Default() *Config {
	return &Config{
		Project:    ReferenceProject(),
		Simulation: Simulation{Samples: 1_000_000},
		Log:        logger.Default(),
		Database:   defaultDatabase(),
	}
}

// ReferenceProject is a small project with two parallel starting tasks feeding a chain of two.
func ReferenceProject() Project {
	return Project{
		Name:           "reference",
		OverheadPerDay: 450,
		Deadline:       160,
		Budget:         100_000,
		Tasks: []Task{
			{ID: "T1", Min: 10, Mode: 20, Max: 40, CostPerDay: 75},
			{ID: "T2", Min: 5, Mode: 10, Max: 30, CostPerDay: 50},
			{ID: "T3", Min: 14, Mode: 28, Max: 60, CostPerDay: 250, DependsOn: []string{"T1", "T2"}},
			{ID: "T4", Min: 40, Mode: 75, Max: 150, CostPerDay: 150, DependsOn: []string{"T3"}},
		},
	}
}

func defaultDatabase() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "projsim.db"
	}
	return filepath.Join(home, ".projsim", "runs.db")
}

// Load reads the YAML file at path over the defaults and applies environment overrides.
// An empty path keeps the reference project. A project section in the file replaces the
// reference project entirely.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	var probe struct {
		Project *yaml.Node `yaml:"project"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.Project != nil {
		c.Project = Project{}
	}
	return yaml.Unmarshal(data, c)
}

// Validate checks settings that do not depend on the task graph. Graph problems are reported
// by Project.Graph.
func (c *Config) Validate() error {
	switch {
	case c.Simulation.Samples <= 0:
		return fmt.Errorf("%w: samples must be positive, got %d", ErrInvalidConfig, c.Simulation.Samples)
	case c.Simulation.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Simulation.Workers)
	case c.Simulation.ChunkSize < 0:
		return fmt.Errorf("%w: chunk size must not be negative, got %d", ErrInvalidConfig, c.Simulation.ChunkSize)
	case len(c.Project.Tasks) == 0:
		return fmt.Errorf("%w: project has no tasks", ErrInvalidConfig)
	case c.Project.Deadline < 0 || c.Project.Budget < 0:
		return fmt.Errorf("%w: deadline and budget must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Graph builds the validated task graph.
func (p Project) Graph() (*project.Graph, error) {
	tasks := make([]project.Task, len(p.Tasks))
	for i, t := range p.Tasks {
		params, err := triangular.New(t.Min, t.Mode, t.Max)
		if err != nil {
			return nil, &project.TaskError{TaskID: t.ID, Err: err}
		}
		tasks[i] = project.Task{
			ID:         t.ID,
			Duration:   params,
			CostPerDay: t.CostPerDay,
			DependsOn:  t.DependsOn,
		}
	}

	var opts []project.GraphOption
	if len(p.Terminals) > 0 {
		opts = append(opts, project.WithTerminals(p.Terminals...))
	}
	return project.NewGraph(tasks, opts...)
}

// Marshal renders cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
