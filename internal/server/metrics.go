package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the API's Prometheus collectors.
type Metrics struct {
	requests   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	infeasible *prometheus.CounterVec
	qualified  *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with registerer. A
// nil registerer uses the default registry.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "homecalc_http_requests_total",
			Help: "API requests by endpoint and status code.",
		}, []string{"endpoint", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "homecalc_http_request_duration_seconds",
			Help:    "API request latency by endpoint.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"endpoint"}),
		infeasible: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "homecalc_affordability_infeasible_total",
			Help: "Affordability bands with no affordable price.",
		}, []string{"band"}),
		qualified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "homecalc_scenarios_evaluated_total",
			Help: "Evaluated scenarios by stress test outcome.",
		}, []string{"qualifies"}),
	}

	registerer.MustRegister(m.requests, m.duration, m.infeasible, m.qualified)
	return m
}

func (m *Metrics) observeRequest(endpoint, code string, seconds float64) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(endpoint, code).Inc()
	m.duration.WithLabelValues(endpoint).Observe(seconds)
}

func (m *Metrics) observeInfeasible(band string) {
	if m == nil {
		return
	}
	m.infeasible.WithLabelValues(band).Inc()
}

func (m *Metrics) observeScenario(qualifies bool) {
	if m == nil {
		return
	}
	label := "false"
	if qualifies {
		label = "true"
	}
	m.qualified.WithLabelValues(label).Inc()
}
