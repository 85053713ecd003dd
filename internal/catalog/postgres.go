package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

const postgresDriver = "pgx"

// sqlOpen is replaced in tests.
var sqlOpen = sql.Open

// OpenPostgres connects to a PostgreSQL run index.
func OpenPostgres(ctx context.Context, dsn string) (Catalog, error) {
	db, err := sqlOpen(postgresDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return newSQLCatalog(ctx, db, "postgres", dollarPlaceholders)
}
