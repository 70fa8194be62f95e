// Package metrics defines all custom Prometheus metrics for the user
// directory service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register themselves with the default registry at import time via
// promauto; the router exposes them on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "userdir"

// ── Cache metrics ─────────────────────────────────────────────────────────────

// CacheHitsTotal counts resolutions served entirely from the cache.
var CacheHitsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_hits_total",
		Help:      "Total number of resolutions answered from the cache fast path.",
	},
)

// CacheMissesTotal counts resolutions that fell through to the store.
// Label:
//   - reason: "miss" (key absent), "corrupted" (entry discarded), "error" (cache unreachable)
var CacheMissesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_misses_total",
		Help:      "Total number of resolutions that consulted the authoritative store, by reason.",
	},
	[]string{"reason"},
)

// CacheWriteErrorsTotal counts failed best-effort cache refreshes.
var CacheWriteErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_write_errors_total",
		Help:      "Total number of dual-key cache writes that failed and were swallowed.",
	},
)

// ── User metrics ──────────────────────────────────────────────────────────────

// UsersCreatedTotal counts successfully created users.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created.",
	},
)

// UsersDeletedTotal counts successfully deleted users.
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of users deleted.",
	},
)

// RoleMutationsTotal counts persisted role-set transitions.
// Label:
//   - op: "add" or "remove"
var RoleMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_mutations_total",
		Help:      "Total number of role additions and removals persisted to the store.",
	},
	[]string{"op"},
)
