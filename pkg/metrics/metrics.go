// Package metrics 定义风险扫描与实时推送的 Prometheus 指标
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "aerocomply"

var (
	ScanRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "risk_scan_runs_total",
		Help:      "Risk scan executions by trigger.",
	}, []string{"trigger"})

	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "risk_scan_duration_seconds",
		Help:      "Wall time of a full risk scan.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
	})

	AlertsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "risk_alerts_created_total",
		Help:      "Risk alerts created by the scanner.",
	}, []string{"entity_type", "severity"})

	SourceErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "risk_scan_source_errors_total",
		Help:      "Deadline source read failures during a scan.",
	}, []string{"entity_type"})

	JobRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scheduler_job_runs_total",
		Help:      "Scheduled job executions by job and result.",
	}, []string{"job", "result"})

	RealtimeConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "realtime_connections",
		Help:      "Currently registered realtime channels.",
	})

	RealtimePruned = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "realtime_pruned_total",
		Help:      "Channels dropped after a failed delivery.",
	})

	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Alert notifications handed to a delivery channel.",
	}, []string{"channel"})
)
