// Package metrics defines and registers all custom Prometheus metrics for the
// catalog API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register themselves with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// RegistrationsTotal counts registration attempts.
// Label:
//   - outcome: "success", "rejected" (validation or duplicate email), or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by outcome.",
	},
	[]string{"outcome"},
)

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "success", "rejected" (bad credentials or validation), or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ProductOpsTotal counts completed product operations.
// Labels:
//   - op: "list", "create", "get", "edit", "delete"
//   - outcome: "success", "not_found", "rejected", or "error"
var ProductOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_operations_total",
		Help:      "Total number of product operations, by operation and outcome.",
	},
	[]string{"op", "outcome"},
)

// CacheLookupsTotal counts product cache lookups.
// Label:
//   - result: "hit" or "miss"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of product cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)
