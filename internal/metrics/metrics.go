// Package metrics exposes prometheus instruments for the lead submission flow.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Submission outcomes.
const (
	OutcomeAccepted = "accepted"
	OutcomeInvalid  = "invalid"
	OutcomeFailed   = "failed"
)

// PlanUnknown labels submissions whose plan is missing or not in the catalogue.
const PlanUnknown = "unknown"

// LeadMetrics counts submissions and times store inserts.
type LeadMetrics struct {
	submissions   *prometheus.CounterVec
	fieldFailures *prometheus.CounterVec
	insertLatency *prometheus.HistogramVec
}

// NewLeadMetrics registers the lead instruments on reg, or the default registerer when nil.
func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "appall",
			Subsystem: "leads",
			Name:      "submissions_total",
			Help:      "Demo request submissions by outcome",
		}, []string{"outcome", "plan"}),
		fieldFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "appall",
			Subsystem: "leads",
			Name:      "field_validation_failures_total",
			Help:      "Validation failures per form field",
		}, []string{"field"}),
		insertLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "appall",
			Subsystem: "leads",
			Name:      "store_insert_seconds",
			Help:      "Latency of record store inserts",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissions, m.fieldFailures, m.insertLatency)
	return m
}

// ObserveSubmission counts one submission by outcome and plan.
func (m *LeadMetrics) ObserveSubmission(outcome, plan string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome, plan).Inc()
}

// ObserveFieldFailures counts one failure for each field in fields.
func (m *LeadMetrics) ObserveFieldFailures(fields map[string]string) {
	if m == nil {
		return
	}
	for field := range fields {
		m.fieldFailures.WithLabelValues(field).Inc()
	}
}

// ObserveInsert records the latency of one store insert.
func (m *LeadMetrics) ObserveInsert(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.insertLatency.WithLabelValues(outcome).Observe(seconds)
}
