package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the engine. Every record helper is
// safe on a nil receiver so components can run without metrics wired.
type Metrics struct {
	EvidenceRecorded   *prometheus.CounterVec
	DeadlineFirings    *prometheus.CounterVec
	Punishments        *prometheus.CounterVec
	EvaluationDuration *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		EvidenceRecorded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "regimen_evidence_recorded_total",
			Help: "Evidence events recorded, by routine",
		}, []string{"routine"}),
		DeadlineFirings: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "regimen_deadline_firings_total",
			Help: "Deadline firings evaluated, by routine",
		}, []string{"routine"}),
		Punishments: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "regimen_punishments_total",
			Help: "Punishments applied at deadline firings, by routine",
		}, []string{"routine"}),
		EvaluationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "regimen_deadline_evaluation_seconds",
			Help:    "Wall time spent evaluating one deadline firing",
			Buckets: prometheus.DefBuckets,
		}, []string{"routine"}),
	}
}

func (m *Metrics) RecordEvidence(routine string) {
	if m == nil {
		return
	}
	m.EvidenceRecorded.WithLabelValues(routine).Inc()
}

func (m *Metrics) RecordFiring(routine string, seconds float64) {
	if m == nil {
		return
	}
	m.DeadlineFirings.WithLabelValues(routine).Inc()
	m.EvaluationDuration.WithLabelValues(routine).Observe(seconds)
}

func (m *Metrics) RecordPunishment(routine string) {
	if m == nil {
		return
	}
	m.Punishments.WithLabelValues(routine).Inc()
}
