package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// HTTP metrics
	RequestDuration *prometheus.HistogramVec
	RequestTotal    *prometheus.CounterVec

	// Domain metrics
	DocumentsRendered    *prometheus.CounterVec
	SymptomChecks        *prometheus.CounterVec
	NotificationsCreated *prometheus.CounterVec

	// Worker metrics
	EmailsSent   prometheus.Counter
	EmailsFailed prometheus.Counter
}

// New creates and registers all application metrics on reg.
// A nil reg registers on the default prometheus registry.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"method", "path", "status"}),
		RequestTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),

		DocumentsRendered: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_rendered_total",
			Help:      "Total number of rendered PDF documents",
		}, []string{"kind"}),
		SymptomChecks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "symptom_checks_total",
			Help:      "Total number of symptom checker sessions",
		}, []string{"severity"}),
		NotificationsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_created_total",
			Help:      "Total number of created notifications",
		}, []string{"type"}),

		EmailsSent: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_sent_total",
			Help:      "Total number of delivered notification emails",
		}),
		EmailsFailed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_failed_total",
			Help:      "Total number of notification emails that failed delivery",
		}),
	}
}
