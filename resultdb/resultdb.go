// Package resultdb keeps the history of pqbench runs in SQLite so strategy
// timings can be compared across builds and machines.
package resultdb

import (
	"context"
	"database/sql"
	"time"

	"github.com/efficientgo/core/errors"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at INTEGER NOT NULL,
	workload   TEXT    NOT NULL,
	strategy   TEXT    NOT NULL,
	page_size  INTEGER NOT NULL,
	ops        INTEGER NOT NULL,
	max_len    INTEGER NOT NULL,
	elapsed_ns INTEGER NOT NULL,
	digest     TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_workload ON runs (workload, strategy);
`

// Run is one recorded strategy execution of a workload.
type Run struct {
	ID        int64         `json:"id"`
	StartedAt time.Time     `json:"started_at"`
	Workload  string        `json:"workload"`
	Strategy  string        `json:"strategy"`
	PageSize  int           `json:"page_size"`
	Ops       int           `json:"ops"`
	MaxLen    int           `json:"max_len"`
	Elapsed   time.Duration `json:"elapsed_ns"`
	Digest    string        `json:"digest"`
}

// DB is a handle on the run history.
type DB struct {
	db     *sql.DB
	insert *sql.Stmt
}

// Open creates or opens the database at path and ensures the schema exists.
func Open(ctx context.Context, path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "resultdb: open %s", path)
	}
	// One writer keeps SQLite from returning SQLITE_BUSY under errgroup fan-out.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "resultdb: schema")
	}
	insert, err := db.PrepareContext(ctx, `INSERT INTO runs
		(started_at, workload, strategy, page_size, ops, max_len, elapsed_ns, digest)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "resultdb: prepare insert")
	}
	return &DB{db: db, insert: insert}, nil
}

// Record stores r and returns it with its assigned ID.
func (d *DB) Record(ctx context.Context, r Run) (Run, error) {
	res, err := d.insert.ExecContext(ctx,
		r.StartedAt.UnixNano(), r.Workload, r.Strategy, r.PageSize,
		r.Ops, r.MaxLen, int64(r.Elapsed), r.Digest)
	if err != nil {
		return r, errors.Wrapf(err, "resultdb: record %s/%s", r.Workload, r.Strategy)
	}
	r.ID, err = res.LastInsertId()
	return r, err
}

// Runs returns every run of workload, oldest first.
func (d *DB) Runs(ctx context.Context, workload string) ([]Run, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT
		id, started_at, workload, strategy, page_size, ops, max_len, elapsed_ns, digest
		FROM runs WHERE workload = ? ORDER BY id`, workload)
	if err != nil {
		return nil, errors.Wrap(err, "resultdb: query runs")
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r       Run
			started int64
			elapsed int64
		)
		if err := rows.Scan(&r.ID, &started, &r.Workload, &r.Strategy, &r.PageSize,
			&r.Ops, &r.MaxLen, &elapsed, &r.Digest); err != nil {
			return nil, errors.Wrap(err, "resultdb: scan run")
		}
		r.StartedAt = time.Unix(0, started).UTC()
		r.Elapsed = time.Duration(elapsed)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Best returns the fastest recorded run per strategy for workload.
func (d *DB) Best(ctx context.Context, workload string) (map[string]time.Duration, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT strategy, MIN(elapsed_ns)
		FROM runs WHERE workload = ? GROUP BY strategy`, workload)
	if err != nil {
		return nil, errors.Wrap(err, "resultdb: query best")
	}
	defer rows.Close()

	best := make(map[string]time.Duration)
	for rows.Next() {
		var (
			name string
			ns   int64
		)
		if err := rows.Scan(&name, &ns); err != nil {
			return nil, errors.Wrap(err, "resultdb: scan best")
		}
		best[name] = time.Duration(ns)
	}
	return best, rows.Err()
}

func (d *DB) Close() error {
	d.insert.Close()
	return d.db.Close()
}
