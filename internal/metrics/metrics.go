// Package metrics exposes Prometheus instrumentation for the activity
// pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	eventsReceivedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "oxstream_events_received_total",
		Help: "Total number of groupware events received, by topic type.",
	}, []string{"type"})

	activitiesDeliveredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "oxstream_activities_delivered_total",
		Help: "Total number of activities delivered to the activity service, by verb.",
	}, []string{"verb"})

	activitiesSuppressedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "oxstream_activities_suppressed_total",
		Help: "Total number of activities suppressed by filtering, by topic type.",
	}, []string{"type"})

	deliveryFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oxstream_delivery_failures_total",
		Help: "Total number of failed activity delivery attempts.",
	})

	processingFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oxstream_processing_failures_total",
		Help: "Total number of events dropped due to processing errors.",
	})

	dbLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "oxstream_db_latency_seconds",
		Help:    "Histogram of database operation latencies.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)

// EventReceived counts one incoming event of the given topic type.
func EventReceived(eventType string) {
	eventsReceivedTotal.WithLabelValues(eventType).Inc()
}

// ActivityDelivered counts one successfully delivered activity.
func ActivityDelivered(verb string) {
	activitiesDeliveredTotal.WithLabelValues(verb).Inc()
}

// ActivitySuppressed counts one activity filtered out before delivery.
func ActivitySuppressed(eventType string) {
	activitiesSuppressedTotal.WithLabelValues(eventType).Inc()
}

// DeliveryFailure counts one failed delivery attempt.
func DeliveryFailure() {
	deliveryFailuresTotal.Inc()
}

// ProcessingFailure counts one event dropped because of an error.
func ProcessingFailure() {
	processingFailuresTotal.Inc()
}

// ObserveDBLatency records database latency for a given operation.
func ObserveDBLatency(operation string, start time.Time) {
	dbLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// Handler exposes the Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
