// Package metrics defines and registers all custom Prometheus metrics for the
// CRM admin console. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation; the ops server exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crm_console"

// ── Request pipeline ──────────────────────────────────────────────────────────

// APIRequestsTotal counts backend calls made through the request pipeline.
// Labels:
//   - method: HTTP method
//   - outcome: "ok", "rejected", "auth_expired", "server_error" or "transport_error"
var APIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of backend API calls, by outcome.",
	},
	[]string{"method", "outcome"},
)

// APIRequestDuration measures backend call latency, including body read.
var APIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of backend API calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)

// AuthRecoveriesTotal counts 401 responses by what the pipeline did with them.
// Label:
//   - result: "recovered" (session cleared and redirected), "suppressed"
//     (already recovered for this token) or "stale" (token no longer current)
var AuthRecoveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_recoveries_total",
		Help:      "Authentication failures handled by the request pipeline.",
	},
	[]string{"result"},
)

// ── Route guard ───────────────────────────────────────────────────────────────

// GuardDecisionsTotal counts navigation decisions.
// Labels:
//   - state: "authorized" or "denied"
//   - reason: "", "no session" or "role mismatch"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Route guard decisions, by resulting state.",
	},
	[]string{"state", "reason"},
)

// ── Lead import ───────────────────────────────────────────────────────────────

// LeadsImportedTotal counts bulk-import items.
// Label:
//   - result: "created" or "failed"
var LeadsImportedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leads_imported_total",
		Help:      "Total number of leads processed by bulk import.",
	},
	[]string{"result"},
)

// ImportQueueDepth tracks items waiting in each import worker channel.
var ImportQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "import_queue_depth",
		Help:      "Current number of import items pending in each worker channel.",
	},
	[]string{"worker_id"},
)
