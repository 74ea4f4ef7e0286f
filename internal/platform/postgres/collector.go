// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// StatSource is the part of [pgxpool.Pool] read by the collector.
type StatSource interface {
	Stat() *pgxpool.Stat
}

// PoolCollector exports pgxpool statistics as Prometheus gauges and counters.
type PoolCollector struct {
	source StatSource

	totalConns    *prometheus.Desc
	idleConns     *prometheus.Desc
	acquiredConns *prometheus.Desc
	maxConns      *prometheus.Desc
	acquireCount  *prometheus.Desc
	emptyAcquires *prometheus.Desc
}

// NewPoolCollector builds a collector reading from source on every scrape.
func NewPoolCollector(source StatSource, namespace string) *PoolCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "db_pool", name), help, nil, nil)
	}

	return &PoolCollector{
		source:        source,
		totalConns:    desc("total_connections", "Connections currently open."),
		idleConns:     desc("idle_connections", "Idle connections."),
		acquiredConns: desc("acquired_connections", "Connections checked out by queries."),
		maxConns:      desc("max_connections", "Configured pool size."),
		acquireCount:  desc("acquires_total", "Successful connection acquires."),
		emptyAcquires: desc("empty_acquires_total", "Acquires that had to wait for a connection."),
	}
}

// Describe implements [prometheus.Collector].
func (collector *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.totalConns
	ch <- collector.idleConns
	ch <- collector.acquiredConns
	ch <- collector.maxConns
	ch <- collector.acquireCount
	ch <- collector.emptyAcquires
}

// Collect implements [prometheus.Collector].
func (collector *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	stat := collector.source.Stat()

	ch <- prometheus.MustNewConstMetric(collector.totalConns, prometheus.GaugeValue, float64(stat.TotalConns()))
	ch <- prometheus.MustNewConstMetric(collector.idleConns, prometheus.GaugeValue, float64(stat.IdleConns()))
	ch <- prometheus.MustNewConstMetric(collector.acquiredConns, prometheus.GaugeValue, float64(stat.AcquiredConns()))
	ch <- prometheus.MustNewConstMetric(collector.maxConns, prometheus.GaugeValue, float64(stat.MaxConns()))
	ch <- prometheus.MustNewConstMetric(collector.acquireCount, prometheus.CounterValue, float64(stat.AcquireCount()))
	ch <- prometheus.MustNewConstMetric(collector.emptyAcquires, prometheus.CounterValue, float64(stat.EmptyAcquireCount()))
}
