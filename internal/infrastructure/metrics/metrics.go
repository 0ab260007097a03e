package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Admin-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salesdesk",
			Subsystem: "admin_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Proxy action outcomes
	ProxyActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salesdesk",
			Subsystem: "admin_api",
			Name:      "proxy_actions_total",
			Help:      "Proxy actions by upstream and outcome",
		},
		[]string{"proxy", "action", "outcome"},
	)

	// Upstream errors
	UpstreamErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salesdesk",
			Subsystem: "admin_api",
			Name:      "upstream_errors_total",
			Help:      "Total upstream call failures",
		},
		[]string{"upstream", "error_type"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "salesdesk",
			Subsystem: "admin_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Agent stream duration
	AgentStreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "salesdesk",
			Subsystem: "admin_api",
			Name:      "agent_stream_duration_seconds",
			Help:      "Agent streaming response duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"model", "outcome"},
	)

	// Active agent streams gauge
	ActiveAgentStreams = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "salesdesk",
			Subsystem: "admin_api",
			Name:      "active_agent_streams",
			Help:      "Currently active agent streaming connections",
		},
	)

	// Image uploads
	ImageUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salesdesk",
			Subsystem: "admin_api",
			Name:      "image_uploads_total",
			Help:      "Image upload attempts by outcome",
		},
		[]string{"outcome"},
	)

	// Stock reconcile runs
	StockReconcileRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salesdesk",
			Subsystem: "admin_api",
			Name:      "stock_reconcile_rows_total",
			Help:      "Product rows whose status was repaired by the reconcile job",
		},
		[]string{"category"},
	)
)

// RecordRequest records an HTTP request with its duration
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(durationSec)
}

// RecordProxyAction records one dispatched proxy action
func RecordProxyAction(proxy, action, outcome string) {
	if action == "" {
		action = "unknown"
	}
	ProxyActionsTotal.WithLabelValues(proxy, action, outcome).Inc()
}

// RecordUpstreamError records an upstream call failure
func RecordUpstreamError(upstream, errorType string) {
	UpstreamErrorsTotal.WithLabelValues(upstream, errorType).Inc()
}

// RecordAgentStream records a finished agent stream
func RecordAgentStream(model, outcome string, durationSec float64) {
	AgentStreamDuration.WithLabelValues(model, outcome).Observe(durationSec)
}

// RecordImageUpload records an upload attempt outcome
func RecordImageUpload(outcome string) {
	ImageUploadsTotal.WithLabelValues(outcome).Inc()
}

// RecordStockReconcile records rows repaired for one category
func RecordStockReconcile(category string, rows int64) {
	StockReconcileRowsTotal.WithLabelValues(category).Add(float64(rows))
}
