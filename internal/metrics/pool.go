package metrics

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// PoolStats is a point-in-time reading of the database connection pool.
type PoolStats struct {
	MaxConns      int32
	TotalConns    int32
	IdleConns     int32
	AcquiredConns int32

	Acquires         int64
	EmptyAcquires    int64
	CanceledAcquires int64
	AcquireDuration  time.Duration
}

// PoolStatter is satisfied by *pgxpool.Pool.
type PoolStatter interface {
	Stat() *pgxpool.Stat
}

// ReadPool returns a stats source backed by a pgx pool.
func ReadPool(p PoolStatter) func() PoolStats {
	return func() PoolStats {
		s := p.Stat()
		return PoolStats{
			MaxConns:         s.MaxConns(),
			TotalConns:       s.TotalConns(),
			IdleConns:        s.IdleConns(),
			AcquiredConns:    s.AcquiredConns(),
			Acquires:         s.AcquireCount(),
			EmptyAcquires:    s.EmptyAcquireCount(),
			CanceledAcquires: s.CanceledAcquireCount(),
			AcquireDuration:  s.AcquireDuration(),
		}
	}
}

type poolMetric struct {
	desc  *prometheus.Desc
	kind  prometheus.ValueType
	value func(PoolStats) float64
}

// poolCollector reads the pool once per scrape and reports every poolMetric
// from that one reading.
type poolCollector struct {
	read    func() PoolStats
	metrics []poolMetric
}

func newPoolCollector(read func() PoolStats) *poolCollector {
	gauge := func(name, help string, v func(PoolStats) float64) poolMetric {
		return poolMetric{prometheus.NewDesc(name, help, nil, nil), prometheus.GaugeValue, v}
	}
	counter := func(name, help string, v func(PoolStats) float64) poolMetric {
		return poolMetric{prometheus.NewDesc(name, help, nil, nil), prometheus.CounterValue, v}
	}

	return &poolCollector{
		read: read,
		metrics: []poolMetric{
			gauge("candor_db_pool_max_conns", "Configured maximum pool size.",
				func(s PoolStats) float64 { return float64(s.MaxConns) }),
			gauge("candor_db_pool_total_conns", "Connections currently in the pool.",
				func(s PoolStats) float64 { return float64(s.TotalConns) }),
			gauge("candor_db_pool_idle_conns", "Idle connections in the pool.",
				func(s PoolStats) float64 { return float64(s.IdleConns) }),
			gauge("candor_db_pool_acquired_conns", "Connections checked out by queries.",
				func(s PoolStats) float64 { return float64(s.AcquiredConns) }),
			counter("candor_db_pool_acquires_total", "Successful connection acquisitions.",
				func(s PoolStats) float64 { return float64(s.Acquires) }),
			counter("candor_db_pool_empty_acquires_total", "Acquisitions that waited because the pool was empty.",
				func(s PoolStats) float64 { return float64(s.EmptyAcquires) }),
			counter("candor_db_pool_canceled_acquires_total", "Acquisitions abandoned by a cancelled context.",
				func(s PoolStats) float64 { return float64(s.CanceledAcquires) }),
			counter("candor_db_pool_acquire_seconds_total", "Cumulative time spent acquiring connections.",
				func(s PoolStats) float64 { return s.AcquireDuration.Seconds() }),
		},
	}
}

func (c *poolCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, pm := range c.metrics {
		ch <- pm.desc
	}
}

func (c *poolCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.read()
	for _, pm := range c.metrics {
		ch <- prometheus.MustNewConstMetric(pm.desc, pm.kind, pm.value(s))
	}
}
