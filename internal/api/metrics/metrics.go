// Package metrics defines and registers all custom Prometheus metrics for the
// reporting API. It is the single source of truth for metric names, labels,
// and help strings. Registration happens at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "reporting"

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

// RegistrationsTotal counts successful registrations.
// Label:
//   - role: the registered role (Student, Lecturer, PRL, PL)
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful registrations, by role.",
	},
	[]string{"role"},
)

// ReportsCreatedTotal counts lecture reports successfully created.
var ReportsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_created_total",
		Help:      "Total number of lecture reports created.",
	},
)

// RatingsSubmittedTotal counts ratings successfully submitted.
var RatingsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratings_submitted_total",
		Help:      "Total number of lecturer ratings submitted.",
	},
)

// OwnershipDeniedTotal counts mutations rejected by the ownership check.
// Label:
//   - record: "report", "assignment", or "rating"
var OwnershipDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ownership_denied_total",
		Help:      "Total number of update/delete requests rejected because the requester does not own the record.",
	},
	[]string{"record"},
)

// SummaryCacheTotal counts ratings-summary cache lookups.
// Label:
//   - result: "hit" or "miss"
var SummaryCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "summary_cache_total",
		Help:      "Total number of ratings-summary cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)
