// metrics.go — Prometheus counters and gauges exposed at /metrics
// (spec.md §6). Grounded on the retrieval pack's promauto usage
// (services/trace/graph in the AleutianLocal example): package-level
// promauto.New*Vec registrations against the default registry, collected
// by promhttp.Handler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts JSON-RPC requests by method and outcome status
	// (spec.md §6: "mcp_requests_total{method,status}").
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mcp_requests_total",
		Help: "Total JSON-RPC requests handled, by method and status",
	}, []string{"method", "status"})

	// SSEConnectionsOpen tracks the number of currently attached SSE
	// streams.
	SSEConnectionsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mcp_sse_connections_open",
		Help: "Number of currently attached SSE connections",
	})

	// SSEConnectionsTotal counts every SSE stream ever attached.
	SSEConnectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mcp_sse_connections_total",
		Help: "Total SSE connections attached since start",
	})

	// SessionsActive tracks the number of live (unpruned) sessions.
	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mcp_sessions_active",
		Help: "Number of currently live sessions",
	})
)

// ObserveRequest records one JSON-RPC request outcome.
func ObserveRequest(method, status string) {
	RequestsTotal.WithLabelValues(method, status).Inc()
}

// SSEAttached records one new SSE connection attachment.
func SSEAttached() {
	SSEConnectionsTotal.Inc()
	SSEConnectionsOpen.Inc()
}

// SSEDetached records one SSE connection detachment.
func SSEDetached() {
	SSEConnectionsOpen.Dec()
}
