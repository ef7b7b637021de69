package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	// Registers the "cloudsqlpostgres" driver.
	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/postgres"
	// Registers the "postgres" driver.
	_ "github.com/lib/pq"
)

// Options selects how Open reaches Postgres. A Cloud SQL connection name
// takes precedence over URL.
type Options struct {
	URL                string
	CloudSQLConnection string
	CloudSQLUser       string
	CloudSQLPassword   string
	CloudSQLDatabase   string
}

// ErrNoDatabase is returned by Open when neither a URL nor a Cloud SQL
// connection is configured.
var ErrNoDatabase = errors.New("no database configured")

// Open returns a pool for the configured database and checks it is reachable.
func Open(ctx context.Context, opts Options) (*sql.DB, error) {
	driver, dsn, err := dataSource(opts)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	return conn, nil
}

func dataSource(opts Options) (driver, dsn string, err error) {
	if opts.CloudSQLConnection != "" {
		dsn = fmt.Sprintf("host=%s dbname=%s user=%s password=%s sslmode=disable",
			opts.CloudSQLConnection, opts.CloudSQLDatabase, opts.CloudSQLUser, opts.CloudSQLPassword)
		return "cloudsqlpostgres", dsn, nil
	}
	if opts.URL != "" {
		return "postgres", opts.URL, nil
	}
	return "", "", ErrNoDatabase
}

// LogAndQueryRow logs the statement at debug level and runs it.
func LogAndQueryRow(ctx context.Context, logger *slog.Logger, db *sql.DB, query string, args ...interface{}) *sql.Row {
	logQuery(ctx, logger, query, args)

	return db.QueryRowContext(ctx, query, args...)
}

// LogAndExec logs the statement at debug level and runs it.
func LogAndExec(ctx context.Context, logger *slog.Logger, db *sql.DB, query string, args ...interface{}) (sql.Result, error) {
	logQuery(ctx, logger, query, args)

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("exec: %w", err)
	}

	return res, nil
}

func logQuery(ctx context.Context, logger *slog.Logger, query string, args []interface{}) {
	if logger == nil {
		return
	}
	logger.DebugContext(ctx, "sql", "query", query, "args", args)
}
