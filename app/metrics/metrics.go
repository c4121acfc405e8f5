// Package metrics provides Prometheus metrics for the center locator service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "center_locator"

var (
	// ChatOutcomesTotal đếm câu trả lời theo outcome
	ChatOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chat",
			Name:      "outcomes_total",
			Help:      "Total number of answered messages by outcome",
		},
		[]string{"outcome"},
	)

	// ResolveDuration thời gian resolve một message (không tính cache hit)
	ResolveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "chat",
			Name:      "resolve_duration_seconds",
			Help:      "Duration of center resolution in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	// CacheRequestsTotal đếm cache lookup theo kết quả
	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "requests_total",
			Help:      "Total number of answer cache lookups by result",
		},
		[]string{"result"},
	)

	// CatalogCenters số trung tâm trong snapshot đang active
	CatalogCenters = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "centers",
			Help:      "Number of centers in the active catalog snapshot",
		},
	)

	// CatalogSkippedRows số dòng bị loại ở lần nạp gần nhất
	CatalogSkippedRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "skipped_rows",
			Help:      "Number of catalog rows skipped by the last successful load",
		},
	)

	// CatalogReloadsTotal đếm số lần reload theo status
	CatalogReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "reloads_total",
			Help:      "Total number of catalog reloads by status",
		},
		[]string{"status"},
	)

	// HTTPRequestsTotal đếm HTTP request vào service
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of inbound HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	// HTTPRequestDuration thời gian xử lý HTTP request
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of inbound HTTP requests in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route"},
	)
)
