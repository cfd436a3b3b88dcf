package observability

import (
	"context"
	"errors"

	"github.com/aretw0/tales/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by the navigator hooks.
type Metrics struct {
	Traversals *prometheus.CounterVec
	NodeVisits *prometheus.CounterVec
	Choices    *prometheus.CounterVec
	Endings    *prometheus.CounterVec
	Steps      *prometheus.HistogramVec
	Records    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg skips registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Traversals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tales_traversals_started_total",
				Help: "Total number of story traversals started",
			},
			[]string{"story"},
		),
		NodeVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tales_node_visits_total",
				Help: "Total number of node visits",
			},
			[]string{"node_id"},
		),
		Choices: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tales_choices_total",
				Help: "Total number of choices made, by node and pick",
			},
			[]string{"node_id", "target"},
		),
		Endings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tales_endings_total",
				Help: "Total number of completed traversals, by ending node",
			},
			[]string{"story", "node_id"},
		),
		Steps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tales_traversal_steps",
				Help:    "Number of choices made before reaching an ending",
				Buckets: prometheus.LinearBuckets(0, 2, 10),
			},
			[]string{"story"},
		),
		Records: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tales_outcomes_recorded_total",
				Help: "Outcome log appends, by result",
			},
			[]string{"result"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.Traversals, m.NodeVisits, m.Choices, m.Endings, m.Steps, m.Records)
	}
	return m
}

// Hooks returns lifecycle hooks that update the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTraversalStart: func(_ context.Context, e *domain.TraversalEvent) {
			m.Traversals.WithLabelValues(e.Story).Inc()
		},
		OnNodeEnter: func(_ context.Context, e *domain.NodeEvent) {
			m.NodeVisits.WithLabelValues(e.NodeID).Inc()
		},
		OnChoice: func(_ context.Context, e *domain.ChoiceEvent) {
			m.Choices.WithLabelValues(e.NodeID, e.Target).Inc()
		},
		OnEnding: func(_ context.Context, e *domain.TraversalEvent) {
			m.Endings.WithLabelValues(e.Story, e.NodeID).Inc()
			m.Steps.WithLabelValues(e.Story).Observe(float64(e.Steps))
		},
	}
}

// ObserveRecord counts an outcome log append.
func (m *Metrics) ObserveRecord(err error) {
	var perr *domain.PersistenceError
	switch {
	case err == nil:
		m.Records.WithLabelValues("ok").Inc()
	case errors.As(err, &perr):
		m.Records.WithLabelValues(perr.Backend + "_error").Inc()
	default:
		m.Records.WithLabelValues("error").Inc()
	}
}
