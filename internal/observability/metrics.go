package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the receiver.
type Metrics struct {
	SupportRequests    *prometheus.CounterVec
	RiskAssessments    *prometheus.CounterVec
	ClassifierLatency  prometheus.Histogram
	ClassifierDegraded *prometheus.CounterVec
	ClassifierInit     *prometheus.CounterVec
	SessionLogRecords  prometheus.Gauge
	FeedSubscribers    prometheus.Gauge

	gatherer prometheus.Gatherer
}

// NewMetrics registers the instruments on reg. Tests pass a fresh registry so
// repeated construction does not collide.
func NewMetrics(namespace string, reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SupportRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "support_requests_total",
			Help:      "Support requests by response status code.",
		}, []string{"status"}),
		RiskAssessments: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "risk_assessments_total",
			Help:      "Accepted support requests by risk level.",
		}, []string{"level"}),
		ClassifierLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "classifier_latency_ms",
			Help:      "Emotion classifier latency in milliseconds.",
			Buckets:   []float64{5, 25, 100, 250, 500, 1000, 2500, 5000},
		}),
		ClassifierDegraded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifier_degraded_total",
			Help:      "Classifier calls answered with the unknown sentinel, by reason.",
		}, []string{"reason"}),
		ClassifierInit: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifier_init_total",
			Help:      "Classifier initialization attempts by provider and outcome.",
		}, []string{"provider", "outcome"}),
		SessionLogRecords: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "session_log_records",
			Help:      "Interaction records held in the in-memory session log.",
		}),
		FeedSubscribers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "feed_subscribers",
			Help:      "Connected dashboard live-feed subscribers.",
		}),
		gatherer: reg,
	}
}

func (m *Metrics) ObserveClassifierLatency(d time.Duration) {
	if m == nil {
		return
	}
	m.ClassifierLatency.Observe(float64(d.Milliseconds()))
}

func (m *Metrics) IncDegraded(reason string) {
	if m == nil {
		return
	}
	m.ClassifierDegraded.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncInit(provider, outcome string) {
	if m == nil {
		return
	}
	m.ClassifierInit.WithLabelValues(provider, outcome).Inc()
}

func (m *Metrics) IncRequest(status string) {
	if m == nil {
		return
	}
	m.SupportRequests.WithLabelValues(status).Inc()
}

func (m *Metrics) IncRisk(level string) {
	if m == nil {
		return
	}
	m.RiskAssessments.WithLabelValues(level).Inc()
}

func (m *Metrics) SetSessionLogRecords(n int) {
	if m == nil {
		return
	}
	m.SessionLogRecords.Set(float64(n))
}

func (m *Metrics) AddFeedSubscribers(delta int) {
	if m == nil {
		return
	}
	m.FeedSubscribers.Add(float64(delta))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
