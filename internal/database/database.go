// Package database defines the contract between the request path and
// the MySQL driver. Handlers talk only to the DB interface — they never
// import the mysql package directly.
package database

import (
	"context"
	"database/sql"
	"time"
)

// Pool sizing is fixed, not configurable. PoolSize connections are kept
// ready; up to MaxOverflow more may be opened under burst, so
// PoolSize+MaxOverflow bounds the concurrent connections. ConnMaxLifetime
// recycles connections before Cloud SQL drops them server-side.
const (
	PoolSize        = 5
	MaxOverflow     = 2
	ConnMaxLifetime = 30 * time.Minute

	// AcquireTimeout bounds connection checkout plus the query
	// round-trip for one request, applied as a context deadline.
	AcquireTimeout = 30 * time.Second
)

// Config holds everything needed to reach the database. User, Password,
// Database and the connection name come from the secret resolver; the
// socket directory comes from service config.
type Config struct {
	User     string
	Password string
	Database string

	// SocketPath is the full unix socket path,
	// e.g. /cloudsql/project:region:instance.
	SocketPath string
}

// DB is the central contract for all database operations.
type DB interface {
	// Ping verifies the database is reachable.
	Ping(ctx context.Context) error

	// Close releases all resources held by the connection pool.
	Close()

	// Query executes a SQL statement that returns multiple rows.
	Query(ctx context.Context, sql string, args ...any) (Rows, error)

	// TableExists reports whether a table with the given name exists.
	TableExists(ctx context.Context, table string) (bool, error)

	// Stats returns the pool counters for the metrics exporter.
	Stats() sql.DBStats
}

// Rows is an abstraction over a database result set.
// Callers must always call Close() when done, even on error.
type Rows interface {
	// Next advances to the next row.
	// Returns false when no more rows exist or on error.
	Next() bool

	// Scan copies the current row's columns into the provided destinations.
	Scan(dest ...any) error

	// Close releases resources held by the result set.
	Close()

	// Err returns any error encountered during iteration.
	Err() error
}
