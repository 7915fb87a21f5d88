package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pharma_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pharma_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	InvoicesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pharma_invoices_created_total",
			Help: "Total number of invoices created",
		},
	)

	InsufficientStockRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pharma_insufficient_stock_rejections_total",
			Help: "Checkouts rejected because a medicine ran out of stock",
		},
	)

	StockAdjustments = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pharma_stock_adjustments_total",
			Help: "Total number of manual stock corrections",
		},
	)
)
