// Package metrics holds the Prometheus counters for rendering and template
// propagation. A nil *Metrics is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Propagation outcome labels, one per UpdateResult bucket.
const (
	OutcomeUpdated      = "updated"
	OutcomeSkipped      = "skipped"
	OutcomeManualReview = "manual_review"
)

// Metrics holds all casedoc counters on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	ExpressionEvaluations prometheus.Counter
	ExpressionFailures    prometheus.Counter
	FragmentsHidden       prometheus.Counter

	Substitutions          prometheus.Counter
	UnresolvedPlaceholders prometheus.Counter

	BreakingChanges  prometheus.Counter
	DocumentOutcomes *prometheus.CounterVec
	VersionsCreated  *prometheus.CounterVec
}

// New creates and registers all counters.
func New() *Metrics {
	m := &Metrics{Registry: prometheus.NewRegistry()}

	m.ExpressionEvaluations = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "casedoc_expression_evaluations_total",
		Help: "Total number of condition expressions evaluated",
	})
	m.ExpressionFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "casedoc_expression_failures_total",
		Help: "Condition expressions that failed to parse or evaluate and were shown",
	})
	m.FragmentsHidden = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "casedoc_fragments_hidden_total",
		Help: "Fragments decorated as hidden",
	})
	m.Substitutions = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "casedoc_placeholder_substitutions_total",
		Help: "Placeholders replaced with a context value",
	})
	m.UnresolvedPlaceholders = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "casedoc_placeholders_unresolved_total",
		Help: "Placeholders left in place because the context had no value",
	})
	m.BreakingChanges = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "casedoc_template_breaking_changes_total",
		Help: "Template edits classified as breaking",
	})
	m.DocumentOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "casedoc_template_update_documents_total",
		Help: "Linked documents per propagation outcome",
	}, []string{"outcome"})
	m.VersionsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "casedoc_template_versions_created_total",
		Help: "Template versions appended, by change type",
	}, []string{"change_type"})

	m.Registry.MustRegister(
		m.ExpressionEvaluations,
		m.ExpressionFailures,
		m.FragmentsHidden,
		m.Substitutions,
		m.UnresolvedPlaceholders,
		m.BreakingChanges,
		m.DocumentOutcomes,
		m.VersionsCreated,
	)
	return m
}

// ExpressionEvaluated records one evaluation and whether it failed open.
func (m *Metrics) ExpressionEvaluated(failed bool) {
	if m == nil {
		return
	}
	m.ExpressionEvaluations.Inc()
	if failed {
		m.ExpressionFailures.Inc()
	}
}

// FragmentHidden records a fragment decorated as hidden.
func (m *Metrics) FragmentHidden() {
	if m == nil {
		return
	}
	m.FragmentsHidden.Inc()
}

// Substituted records replaced and unresolved placeholder counts for one pass.
func (m *Metrics) Substituted(replaced, unresolved int) {
	if m == nil {
		return
	}
	m.Substitutions.Add(float64(replaced))
	m.UnresolvedPlaceholders.Add(float64(unresolved))
}

// BreakingChange records a breaking classification.
func (m *Metrics) BreakingChange() {
	if m == nil {
		return
	}
	m.BreakingChanges.Inc()
}

// DocumentOutcome records n documents ending in the given bucket.
func (m *Metrics) DocumentOutcome(outcome string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.DocumentOutcomes.WithLabelValues(outcome).Add(float64(n))
}

// VersionCreated records a new template version.
func (m *Metrics) VersionCreated(changeType string) {
	if m == nil {
		return
	}
	m.VersionsCreated.WithLabelValues(changeType).Inc()
}

// WriteTextfile dumps all counters in the text exposition format, for the
// node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.Registry)
}
