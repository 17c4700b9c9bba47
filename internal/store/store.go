// Package store archives simulation runs in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/utkarsh5026/projsim/stats"
)

// ErrNotFound is returned when a run ID is not in the archive.
var ErrNotFound = errors.New("run not found")

// Run is one archived simulation run.
type Run struct {
	ID        string
	CreatedAt time.Time
	Project   string
	GraphHash string
	Seed      uint64
	Samples   int
	Overhead  float64
	Duration  stats.Summary
	Cost      stats.Summary
}

// Store persists runs in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	created_at  INTEGER NOT NULL,
	project     TEXT NOT NULL,
	graph_hash  TEXT NOT NULL,
	seed        INTEGER NOT NULL,
	samples     INTEGER NOT NULL,
	overhead    REAL NOT NULL,
	` + summaryColumnDefs("duration") + `,
	` + summaryColumnDefs("cost") + `
);
CREATE INDEX IF NOT EXISTS runs_created_at ON runs (created_at DESC);
`

var summaryFields = []string{"mean", "stddev", "min", "max", "p10", "p50", "p80", "p90", "p95"}

func summaryColumnDefs(prefix string) string {
	defs := make([]string, len(summaryFields))
	for i, f := range summaryFields {
		defs[i] = prefix + "_" + f + " REAL NOT NULL"
	}
	return strings.Join(defs, ",\n\t")
}

func summaryColumns(prefix string) string {
	cols := make([]string, len(summaryFields))
	for i, f := range summaryFields {
		cols[i] = prefix + "_" + f
	}
	return strings.Join(cols, ", ")
}

var runColumns = "id, created_at, project, graph_hash, seed, samples, overhead, " +
	summaryColumns("duration") + ", " + summaryColumns("cost")

// Open opens the archive at path, creating the file and schema if needed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	dsn := cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveRun inserts r. A missing ID is generated and a zero CreatedAt is set to now; the stored
// run is returned.
func (s *Store) SaveRun(ctx context.Context, r Run) (Run, error) {
	if err := ctx.Err(); err != nil {
		return Run{}, err
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	r.CreatedAt = r.CreatedAt.UTC().Truncate(time.Millisecond)

	args := []any{
		r.ID,
		r.CreatedAt.UnixMilli(),
		r.Project,
		r.GraphHash,
		int64(r.Seed), // SQLite integers are signed; the bits round-trip.
		r.Samples,
		r.Overhead,
	}
	args = append(args, summaryArgs(r.Duration)...)
	args = append(args, summaryArgs(r.Cost)...)

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(args)), ", ")
	_, err := s.sqlDB.ExecContext(ctx,
		"INSERT INTO runs ("+runColumns+") VALUES ("+placeholders+")", args...)
	if err != nil {
		return Run{}, fmt.Errorf("save run: %w", err)
	}
	return r, nil
}

// ListRuns returns up to limit runs, newest first. A limit <= 0 returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := "SELECT " + runColumns + " FROM runs ORDER BY created_at DESC, id"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// GetRun returns the run with the given ID, or ErrNotFound.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.sqlDB.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE id = ?", id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", id, err)
	}
	return r, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r       Run
		created int64
		seed    int64
	)
	dest := []any{&r.ID, &created, &r.Project, &r.GraphHash, &seed, &r.Samples, &r.Overhead}
	dest = append(dest, summaryDest(&r.Duration)...)
	dest = append(dest, summaryDest(&r.Cost)...)

	if err := sc.Scan(dest...); err != nil {
		return Run{}, err
	}
	r.CreatedAt = time.UnixMilli(created).UTC()
	r.Seed = uint64(seed)
	r.Duration.N = r.Samples
	r.Cost.N = r.Samples
	return r, nil
}

func summaryArgs(s stats.Summary) []any {
	return []any{s.Mean, s.StdDev, s.Min, s.Max, s.P10, s.P50, s.P80, s.P90, s.P95}
}

func summaryDest(s *stats.Summary) []any {
	return []any{&s.Mean, &s.StdDev, &s.Min, &s.Max, &s.P10, &s.P50, &s.P80, &s.P90, &s.P95}
}
