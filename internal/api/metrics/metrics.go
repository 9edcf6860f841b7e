// Package metrics defines and registers all custom Prometheus metrics for
// the wedding page API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "weddingpage"

// ── Credential lifecycle metrics ──────────────────────────────────────────────

// RegistrationsTotal counts registration attempts by outcome.
// Label:
//   - result: "created", "duplicate", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// VerificationsTotal counts verification attempts by outcome.
// Labels:
//   - method: "code" or "token"
//   - result: "activated" or "rejected"
var VerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verifications_total",
		Help:      "Total number of verification attempts, by method and result.",
	},
	[]string{"method", "result"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "inactive", or "rejected"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Notification pipeline metrics ─────────────────────────────────────────────

// NotificationsSentTotal counts notifications delivered successfully.
// Label:
//   - channel: "email" or "whatsapp"
var NotificationsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of notifications delivered, by channel.",
	},
	[]string{"channel"},
)

// NotificationsFailedTotal counts notifications that failed delivery.
// Label:
//   - channel: "email" or "whatsapp"
var NotificationsFailedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_failed_total",
		Help:      "Total number of notifications that failed delivery, by channel.",
	},
	[]string{"channel"},
)

// NotificationsQueueDepth tracks pending notifications per worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notifications_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
