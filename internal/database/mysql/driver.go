package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/go-sql-driver/mysql" // register "mysql" driver

	"github.com/cloudpets/petsvc/internal/database"
	"github.com/cloudpets/petsvc/internal/errs"
)

// connectTimeout bounds the validation ping during pool construction.
const connectTimeout = 10 * time.Second

// Driver is the MySQL implementation of database.DB backed by
// database/sql. It is safe for concurrent use by multiple goroutines.
type Driver struct {
	db *sql.DB
}

// New opens the connection pool over the unix socket in cfg and returns
// a Driver. It calls Ping to validate the socket before returning;
// failures at this stage are pool construction errors.
func New(ctx context.Context, cfg *database.Config) (*Driver, error) {
	db, err := sql.Open("mysql", buildDSN(cfg))
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindPoolConstruction, "invalid DSN", err)
	}

	db.SetMaxOpenConns(database.PoolSize + database.MaxOverflow)
	db.SetMaxIdleConns(database.PoolSize)
	db.SetConnMaxLifetime(database.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, errs.Wrap(errs.ErrKindPoolConstruction, "database unreachable at "+cfg.SocketPath, err)
	}

	return &Driver{db: db}, nil
}

// --- database.DB implementation ---

func (d *Driver) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return mapError(err, "ping failed")
	}
	return nil
}

func (d *Driver) Close() {
	_ = d.db.Close()
}

func (d *Driver) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "query failed")
	}
	return &mysqlRows{rows: rows}, nil
}

func (d *Driver) TableExists(ctx context.Context, table string) (bool, error) {
	const q = `
		SELECT 1
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_type   = 'BASE TABLE'
		  AND table_name   = ?`

	var exists int
	err := d.db.QueryRowContext(ctx, q, table).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, mapError(err, "failed to check table existence")
	}
	return true, nil
}

func (d *Driver) Stats() sql.DBStats {
	return d.db.Stats()
}

// --- sql.DB type wrappers ---

type mysqlRows struct {
	rows *sql.Rows
}

func (r *mysqlRows) Next() bool             { return r.rows.Next() }
func (r *mysqlRows) Scan(dest ...any) error { return mapError(r.rows.Scan(dest...), "scan failed") }
func (r *mysqlRows) Close()                 { _ = r.rows.Close() }
func (r *mysqlRows) Err() error             { return mapError(r.rows.Err(), "row iteration failed") }
