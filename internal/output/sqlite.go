package output

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/jeduden/arastat/internal/metrics"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	texts      INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS results (
	run_id  TEXT NOT NULL REFERENCES runs(id),
	idx     INTEGER NOT NULL,
	source  TEXT NOT NULL,
	metric  TEXT NOT NULL,
	value   REAL,
	display TEXT NOT NULL,
	PRIMARY KEY (run_id, idx, metric)
);
CREATE INDEX IF NOT EXISTS idx_results_metric ON results(metric);
`

// SQLiteSink stores analysis tables in a sqlite database. Every Write is
// recorded as a new run with its own UUID.
type SQLiteSink struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteSink opens (or creates) the database at path.
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening results database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling WAL: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLiteSink{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

// Write stores table as a new run and returns the run id. Metric rows
// use the metric name; annotations are stored as "label:<name>" and
// failed texts as a single "error" row. Unavailable values are NULL.
func (s *SQLiteSink) Write(ctx context.Context, table metrics.Table) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO runs (id, created_at, texts) VALUES (?, ?, ?)",
		runID, s.now().UTC().Format(time.RFC3339), len(table.Rows),
	); err != nil {
		return "", fmt.Errorf("recording run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO results (run_id, idx, source, metric, value, display) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return "", fmt.Errorf("preparing insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	insert := func(row metrics.Row, metric string, value sql.NullFloat64, display string) error {
		if _, err := stmt.ExecContext(ctx, runID, row.Index, row.Source, metric, value, display); err != nil {
			return fmt.Errorf("storing %s for %s: %w", metric, row.Source, err)
		}
		return nil
	}

	for _, row := range table.Rows {
		if row.Err != nil {
			if err := insert(row, "error", sql.NullFloat64{}, row.Err.Error()); err != nil {
				return "", err
			}
			continue
		}
		for _, def := range table.Definitions {
			v := row.Value(def)
			value := sql.NullFloat64{Float64: v.Number, Valid: v.Available}
			if err := insert(row, def.Name, value, metrics.FormatValue(def, v)); err != nil {
				return "", err
			}
		}
		for name, label := range row.Annotations {
			if err := insert(row, "label:"+name, sql.NullFloat64{}, label); err != nil {
				return "", err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}
