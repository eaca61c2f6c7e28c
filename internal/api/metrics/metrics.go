// Package metrics defines all custom Prometheus metrics for the members API.
// It is the single source of truth for metric names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "members"

// RegistrationsTotal counts account registrations.
// Label:
//   - result: "ok", "conflict", or "invalid"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "rejected"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ProfileUpsertsTotal counts profile submissions.
// Label:
//   - result: "ok" or "error"
var ProfileUpsertsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_upserts_total",
		Help:      "Total number of profile create-or-update submissions, by result.",
	},
	[]string{"result"},
)

// ProfileImageBytes observes the size of uploaded profile images.
var ProfileImageBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "profile_image_bytes",
		Help:      "Size distribution of uploaded profile images.",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 8), // 1KiB .. 16MiB
	},
)

// DirectoryLookupsTotal counts admin directory queries.
// Label:
//   - kind: "search", "filter", or "profile"
var DirectoryLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "directory_lookups_total",
		Help:      "Total number of admin directory lookups, by kind.",
	},
	[]string{"kind"},
)

// AnnouncementsTotal counts announcement mutations.
// Label:
//   - op: "created" or "deleted"
var AnnouncementsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "announcements_total",
		Help:      "Total number of announcement mutations, by operation.",
	},
	[]string{"op"},
)
