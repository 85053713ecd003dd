// Package catalog indexes finished runs in a SQL database so they can be
// listed without walking the run directories.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one indexed run.
type Entry struct {
	ID              string
	Timestamp       time.Time
	Particles       int
	FillFraction    float64
	Seed            int64
	Cycles          int
	Energy          float64
	Ratio           float64
	MaxDisplacement float64
	Dir             string
	Upload          string
}

type Catalog interface {
	Record(ctx context.Context, e Entry) error
	List(ctx context.Context) ([]Entry, error)
	Driver() string
	Close() error
}

// Open selects a backend from dsn: postgres:// and postgresql:// URLs use
// PostgreSQL, anything else is a SQLite path. An empty dsn means runs.db in dataDir.
func Open(ctx context.Context, dsn, dataDir string) (Catalog, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return OpenPostgres(ctx, dsn)
	case dsn == "":
		return OpenSQLite(ctx, filepath.Join(dataDir, "runs.db"))
	default:
		return OpenSQLite(ctx, strings.TrimPrefix(dsn, "sqlite://"))
	}
}

// timeLayout is fixed width so that ORDER BY created_at is chronological.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const schema = `CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	particles INTEGER NOT NULL,
	fill_fraction DOUBLE PRECISION NOT NULL,
	seed BIGINT NOT NULL,
	cycles INTEGER NOT NULL,
	energy DOUBLE PRECISION NOT NULL,
	ratio DOUBLE PRECISION NOT NULL,
	drmax DOUBLE PRECISION NOT NULL,
	dir TEXT NOT NULL,
	upload TEXT NOT NULL DEFAULT ''
)`

const upsert = `INSERT INTO runs (id, created_at, particles, fill_fraction, seed, cycles, energy, ratio, drmax, dir, upload)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	created_at = excluded.created_at,
	particles = excluded.particles,
	fill_fraction = excluded.fill_fraction,
	seed = excluded.seed,
	cycles = excluded.cycles,
	energy = excluded.energy,
	ratio = excluded.ratio,
	drmax = excluded.drmax,
	dir = excluded.dir,
	upload = excluded.upload`

const selectAll = `SELECT id, created_at, particles, fill_fraction, seed, cycles, energy, ratio, drmax, dir, upload
FROM runs ORDER BY created_at`

// sqlCatalog is shared by both backends; they differ in driver and placeholder style.
type sqlCatalog struct {
	db     *sql.DB
	driver string
	rebind func(string) string
}

func newSQLCatalog(ctx context.Context, db *sql.DB, driver string, rebind func(string) string) (*sqlCatalog, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create runs table: %w", err)
	}
	return &sqlCatalog{db: db, driver: driver, rebind: rebind}, nil
}

func (c *sqlCatalog) Driver() string { return c.driver }

func (c *sqlCatalog) Record(ctx context.Context, e Entry) error {
	_, err := c.db.ExecContext(ctx, c.rebind(upsert),
		e.ID, e.Timestamp.UTC().Format(timeLayout), e.Particles, e.FillFraction, e.Seed,
		e.Cycles, e.Energy, e.Ratio, e.MaxDisplacement, e.Dir, e.Upload)
	if err != nil {
		return fmt.Errorf("record run %s: %w", e.ID, err)
	}
	return nil
}

func (c *sqlCatalog) List(ctx context.Context) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx, selectAll)
	if err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &created, &e.Particles, &e.FillFraction, &e.Seed, &e.Cycles,
			&e.Energy, &e.Ratio, &e.MaxDisplacement, &e.Dir, &e.Upload); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if e.Timestamp, err = time.Parse(timeLayout, created); err != nil {
			return nil, fmt.Errorf("run %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (c *sqlCatalog) Close() error { return c.db.Close() }

// dollarPlaceholders rewrites ? placeholders to $1, $2, ...
func dollarPlaceholders(query string) string {
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func identity(query string) string { return query }
