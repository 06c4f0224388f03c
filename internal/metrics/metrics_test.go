package metrics

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudpets/petsvc/internal/database"
)

type staticStatsDB struct {
	stats sql.DBStats
}

func (s *staticStatsDB) Ping(context.Context) error { return nil }
func (s *staticStatsDB) Close()                     {}
func (s *staticStatsDB) Stats() sql.DBStats         { return s.stats }

func (s *staticStatsDB) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, nil
}

func (s *staticStatsDB) TableExists(context.Context, string) (bool, error) {
	return true, nil
}

func TestPoolCollector(t *testing.T) {
	db := &staticStatsDB{stats: sql.DBStats{
		MaxOpenConnections: 7,
		OpenConnections:    3,
		InUse:              2,
		Idle:               1,
		WaitCount:          5,
	}}

	collector := NewPoolCollector(db)
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(collector))

	expected := strings.NewReader(`
# HELP petsvc_db_connections_max_open Configured maximum number of open connections
# TYPE petsvc_db_connections_max_open gauge
petsvc_db_connections_max_open 7
# HELP petsvc_db_connections_open Number of established connections, in use and idle
# TYPE petsvc_db_connections_open gauge
petsvc_db_connections_open 3
# HELP petsvc_db_connections_in_use Number of connections currently loaned out
# TYPE petsvc_db_connections_in_use gauge
petsvc_db_connections_in_use 2
# HELP petsvc_db_connections_idle Number of idle connections in the pool
# TYPE petsvc_db_connections_idle gauge
petsvc_db_connections_idle 1
# HELP petsvc_db_connection_waits_total Total number of times a request waited for a connection
# TYPE petsvc_db_connection_waits_total counter
petsvc_db_connection_waits_total 5
`)
	err := testutil.GatherAndCompare(reg, expected,
		"petsvc_db_connections_max_open",
		"petsvc_db_connections_open",
		"petsvc_db_connections_in_use",
		"petsvc_db_connections_idle",
		"petsvc_db_connection_waits_total",
	)
	assert.NoError(t, err)
}
