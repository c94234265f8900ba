package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rpggio/labcoats/internal/domain/activity"
)

var (
	generationsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "labcoats",
		Subsystem: "generation",
		Name:      "requests_total",
		Help:      "Number of activity generation requests, labeled by outcome and fallback reason.",
	}, []string{"outcome", "reason"})

	generationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "labcoats",
		Subsystem: "generation",
		Name:      "duration_seconds",
		Help:      "Time spent producing an activity, including the upstream call.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
	}, []string{"outcome"})

	httpRequestsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "labcoats",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Number of HTTP requests served, labeled by route and status code.",
	}, []string{"method", "route", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "labcoats",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

func init() {
	prometheus.MustRegister(generationsCounter, generationDuration, httpRequestsCounter, httpDuration)
}

// Generations records activity generation outcomes.
type Generations struct{}

// ObserveGeneration implements activity.MetricsRecorder.
func (Generations) ObserveGeneration(outcome activity.Outcome, reason string, seconds float64) {
	generationsCounter.WithLabelValues(string(outcome), reason).Inc()
	generationDuration.WithLabelValues(string(outcome)).Observe(seconds)
}

// ObserveHTTP records one served HTTP request.
func ObserveHTTP(method, route, status string, d time.Duration) {
	httpRequestsCounter.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
