package pets

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudpets/petsvc/internal/database"
	"github.com/cloudpets/petsvc/internal/errs"
)

// sqlmockDB adapts a sqlmock-backed *sql.DB to database.DB so the store
// can be exercised without a running MySQL server. Errors are classified
// the way the mysql driver classifies them: context deadlines map to the
// timeout kind, everything else to query failure.
type sqlmockDB struct {
	db *sql.DB

	// deadline of the last Query context, when one was set.
	deadline    time.Time
	hadDeadline bool
}

func (m *sqlmockDB) Ping(ctx context.Context) error { return m.db.PingContext(ctx) }
func (m *sqlmockDB) Close()                         { _ = m.db.Close() }
func (m *sqlmockDB) Stats() sql.DBStats             { return m.db.Stats() }

func (m *sqlmockDB) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	m.deadline, m.hadDeadline = ctx.Deadline()
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, errs.Wrap(errs.ErrKindTimeout, "query timed out", err)
		}
		return nil, errs.Wrap(errs.ErrKindQueryFailed, "query failed", err)
	}
	return &sqlmockRows{rows: rows}, nil
}

func (m *sqlmockDB) TableExists(ctx context.Context, table string) (bool, error) {
	return true, nil
}

type sqlmockRows struct{ rows *sql.Rows }

func (r *sqlmockRows) Next() bool             { return r.rows.Next() }
func (r *sqlmockRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r *sqlmockRows) Close()                 { _ = r.rows.Close() }
func (r *sqlmockRows) Err() error             { return r.rows.Err() }

func newStore(t *testing.T) (*Store, *sqlmockDB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	adapter := &sqlmockDB{db: db}
	return NewStore(adapter), adapter, mock
}

func TestListReturnsRowsInDatabaseOrder(t *testing.T) {
	store, _, mock := newStore(t)
	mock.ExpectQuery("SELECT id, name FROM pets").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "Rex").
			AddRow(2, "Whiskers"))

	got, err := store.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []Pet{{ID: 1, Name: "Rex"}, {ID: 2, Name: "Whiskers"}}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListEmptyTable(t *testing.T) {
	store, _, mock := newStore(t)
	mock.ExpectQuery("SELECT id, name FROM pets").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	got, err := store.List(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListQueryFailure(t *testing.T) {
	store, _, mock := newStore(t)
	mock.ExpectQuery("SELECT id, name FROM pets").
		WillReturnError(sql.ErrConnDone)

	got, err := store.List(context.Background())
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errs.IsQueryFailed(err))
}

func TestListScanFailure(t *testing.T) {
	store, _, mock := newStore(t)
	mock.ExpectQuery("SELECT id, name FROM pets").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow("not-a-number", "Rex"))

	_, err := store.List(context.Background())
	require.Error(t, err)
	assert.True(t, errs.IsQueryFailed(err), "scan failures must carry the query failure kind, got %v", errs.KindOf(err))
}

func TestListIterationFailure(t *testing.T) {
	// Connection dropped after the first row: Next stops and Err reports.
	store, _, mock := newStore(t)
	mock.ExpectQuery("SELECT id, name FROM pets").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "Rex").
			AddRow(2, "Whiskers").
			RowError(1, errors.New("invalid connection")))

	got, err := store.List(context.Background())
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errs.IsQueryFailed(err), "iteration failures must carry the query failure kind, got %v", errs.KindOf(err))
}

func TestListAppliesAcquireDeadline(t *testing.T) {
	store, adapter, mock := newStore(t)
	mock.ExpectQuery("SELECT id, name FROM pets").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	before := time.Now()
	_, err := store.List(context.Background())
	require.NoError(t, err)

	require.True(t, adapter.hadDeadline, "List must run the query under a deadline")
	remaining := adapter.deadline.Sub(before)
	assert.LessOrEqual(t, remaining, database.AcquireTimeout)
	assert.Greater(t, remaining, database.AcquireTimeout-5*time.Second)
}

func TestListBoundedByDeadline(t *testing.T) {
	// A parent deadline shorter than the query's duration must cut the
	// call off and surface as a timeout.
	store, _, mock := newStore(t)
	mock.ExpectQuery("SELECT id, name FROM pets").
		WillDelayFor(200 * time.Millisecond).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := store.List(ctx)
	require.Error(t, err)
	assert.True(t, errs.IsTimeout(err), "got kind %v", errs.KindOf(err))
	assert.Less(t, time.Since(start), 200*time.Millisecond)
}
