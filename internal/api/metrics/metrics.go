// Package metrics defines the custom Prometheus metrics of the records API.
// All metrics are registered with the default registry on package init via
// promauto and exposed on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "records"

// ── User metrics ──────────────────────────────────────────────────────────────

// UsersCreatedTotal counts accounts created.
// Labels:
//   - role: "student", "faculty" or "admin"
//   - default_password: "true" when the configured default password was applied
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of user accounts created, by role.",
	},
	[]string{"role", "default_password"},
)

// IDAllocationsTotal counts identifiers issued by the identity allocator.
// Labels:
//   - role: the scope of the counter
//   - backend: the counter store (mongo, redis or memory)
//   - result: "ok" or "error"
var IDAllocationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "id_allocations_total",
		Help:      "Total number of user identifier allocations, by role, counter backend and result.",
	},
	[]string{"role", "backend", "result"},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "not_found" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// PasswordHashDuration measures bcrypt hashing time; it moves with BCRYPT_COST.
var PasswordHashDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_hash_duration_seconds",
		Help:      "Duration of password hashing.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
	},
)

// ── Academic faculty metrics ──────────────────────────────────────────────────

// AcademicFacultiesCreatedTotal counts academic faculties created.
var AcademicFacultiesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "academic_faculties_created_total",
		Help:      "Total number of academic faculties created.",
	},
)
