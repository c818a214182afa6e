// Package metrics defines the Prometheus metrics exposed by the pharmacy
// client. It is the single source of truth for metric names, labels, and help
// strings; counters are registered with the default registry at import time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pharmacy"

// RequestsTotal counts outbound backend calls.
// Labels:
//   - resource: first path segment of the endpoint (e.g. "medicines", "auth")
//   - method: HTTP method
//   - status: "2xx", "4xx", "5xx", or "transport_error"
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "client_requests_total",
		Help:      "Total number of requests issued to the backend.",
	},
	[]string{"resource", "method", "status"},
)

// UnauthorizedTotal counts 401 responses that triggered the global
// clear-session-and-redirect interception.
var UnauthorizedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "client_unauthorized_total",
		Help:      "Total number of 401 responses that forced a session clear.",
	},
)

// SessionEventsTotal counts session lifecycle transitions.
// Label:
//   - event: "restored" (loaded at startup), "login", "logout", "expired"
var SessionEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_total",
		Help:      "Total number of session lifecycle events.",
	},
	[]string{"event"},
)
