// Package metrics defines and registers all custom Prometheus metrics for the
// insurance portal API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry via promauto at
// package init; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RoleResolutionsTotal counts role-resolution outcomes at the route guard.
// Label:
//   - result: "found" (explicit role record), "defaulted" (no record), or "error"
var RoleResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_resolutions_total",
		Help:      "Total number of role resolutions performed by route guards, by outcome.",
	},
	[]string{"result"},
)

// ── Cart metrics ──────────────────────────────────────────────────────────────

// CartMutationsTotal counts cart mutations.
// Label:
//   - op: "add", "update", "remove", or "clear"
var CartMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "Total number of cart mutations, by operation.",
	},
	[]string{"op"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts successfully created checkout orders.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of checkout orders created.",
	},
)

// CheckoutFailuresTotal counts checkouts that did not produce an order.
// Label:
//   - reason: short description of the failure (e.g. "empty_cart", "store_error")
var CheckoutFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_failures_total",
		Help:      "Total number of failed checkout attempts, by reason.",
	},
	[]string{"reason"},
)

// ── Issuance metrics ──────────────────────────────────────────────────────────

// PoliciesIssuedTotal counts policies created by the issuance workers.
var PoliciesIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "policies_issued_total",
		Help:      "Total number of policies created from approved orders.",
	},
)

// IssuanceQueueDepth tracks the current number of orders waiting in each
// issuance worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var IssuanceQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "issuance_queue_depth",
		Help:      "Current number of orders pending in each issuance worker channel.",
	},
	[]string{"worker_id"},
)
