// Package metrics exports the connection pool counters to Prometheus.
// The collector reads sql.DBStats on every scrape, so gauges are always
// current without a feed loop.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cloudpets/petsvc/internal/database"
)

// PoolCollector implements prometheus.Collector over a database pool.
type PoolCollector struct {
	db database.DB

	maxOpen     *prometheus.Desc
	open        *prometheus.Desc
	inUse       *prometheus.Desc
	idle        *prometheus.Desc
	waitCount   *prometheus.Desc
	waitSeconds *prometheus.Desc
}

// NewPoolCollector builds a collector for the given pool.
func NewPoolCollector(db database.DB) *PoolCollector {
	return &PoolCollector{
		db: db,
		maxOpen: prometheus.NewDesc(
			"petsvc_db_connections_max_open",
			"Configured maximum number of open connections",
			nil, nil),
		open: prometheus.NewDesc(
			"petsvc_db_connections_open",
			"Number of established connections, in use and idle",
			nil, nil),
		inUse: prometheus.NewDesc(
			"petsvc_db_connections_in_use",
			"Number of connections currently loaned out",
			nil, nil),
		idle: prometheus.NewDesc(
			"petsvc_db_connections_idle",
			"Number of idle connections in the pool",
			nil, nil),
		waitCount: prometheus.NewDesc(
			"petsvc_db_connection_waits_total",
			"Total number of times a request waited for a connection",
			nil, nil),
		waitSeconds: prometheus.NewDesc(
			"petsvc_db_connection_wait_seconds_total",
			"Total time spent waiting for a connection",
			nil, nil),
	}
}

func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.maxOpen
	ch <- c.open
	ch <- c.inUse
	ch <- c.idle
	ch <- c.waitCount
	ch <- c.waitSeconds
}

func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.db.Stats()
	ch <- prometheus.MustNewConstMetric(c.maxOpen, prometheus.GaugeValue, float64(stats.MaxOpenConnections))
	ch <- prometheus.MustNewConstMetric(c.open, prometheus.GaugeValue, float64(stats.OpenConnections))
	ch <- prometheus.MustNewConstMetric(c.inUse, prometheus.GaugeValue, float64(stats.InUse))
	ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(stats.Idle))
	ch <- prometheus.MustNewConstMetric(c.waitCount, prometheus.CounterValue, float64(stats.WaitCount))
	ch <- prometheus.MustNewConstMetric(c.waitSeconds, prometheus.CounterValue, stats.WaitDuration.Seconds())
}
