// Package metrics defines and registers all custom Prometheus metrics for
// the login service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init;
// the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auth"

// SignupsTotal counts signup attempts.
// Label:
//   - outcome: "created", "duplicate_username", "duplicate_email", "invalid"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by outcome.",
	},
	[]string{"outcome"},
)

// SigninsTotal counts signin attempts.
// Label:
//   - outcome: "success", "bad_credentials", "throttled"
var SigninsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of signin attempts, by outcome.",
	},
	[]string{"outcome"},
)

// TokenRejectionsTotal counts tokens rejected by the authentication gate.
// Label:
//   - reason: "empty", "malformed", "expired", "bad_signature",
//     "unsupported_alg", "unknown_subject"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of cookie tokens rejected by the request gate, by reason.",
	},
	[]string{"reason"},
)
