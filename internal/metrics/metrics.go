// Package metrics holds the Prometheus collectors shared by the HTTP layer,
// the notification dispatcher and the retention sweeper.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RequestDuration      *prometheus.HistogramVec
	NotificationsCreated *prometheus.CounterVec
	NotificationsFailed  *prometheus.CounterVec
	WebhookDeliveries    *prometheus.CounterVec
	NotificationsSwept   prometheus.Counter
	RealtimeConnections  prometheus.Gauge
}

// New registers the collectors on reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not panic.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "synergysphere_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		NotificationsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "synergysphere_notifications_created_total",
				Help: "Notifications written, by type",
			},
			[]string{"type"},
		),
		NotificationsFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "synergysphere_notifications_failed_total",
				Help: "Notification writes that failed, by type",
			},
			[]string{"type"},
		),
		WebhookDeliveries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "synergysphere_webhook_deliveries_total",
				Help: "Project webhook deliveries by provider and outcome",
			},
			[]string{"provider", "success"},
		),
		NotificationsSwept: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "synergysphere_notifications_swept_total",
				Help: "Read notifications removed by the retention sweep",
			},
		),
		RealtimeConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "synergysphere_realtime_connections",
				Help: "Open websocket connections",
			},
		),
	}
}
