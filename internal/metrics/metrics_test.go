package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ExpressionEvaluated(true)
	m.FragmentHidden()
	m.Substituted(3, 1)
	m.BreakingChange()
	m.DocumentOutcome(OutcomeUpdated, 2)
	m.VersionCreated("minor")
	if err := m.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")); err != nil {
		t.Fatalf("nil WriteTextfile: %v", err)
	}
}

func TestCounters(t *testing.T) {
	m := New()
	m.ExpressionEvaluated(false)
	m.ExpressionEvaluated(true)
	m.Substituted(4, 2)
	m.DocumentOutcome(OutcomeSkipped, 3)
	m.DocumentOutcome(OutcomeSkipped, 0)

	if got := testutil.ToFloat64(m.ExpressionEvaluations); got != 2 {
		t.Fatalf("evaluations = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.ExpressionFailures); got != 1 {
		t.Fatalf("failures = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Substitutions); got != 4 {
		t.Fatalf("substitutions = %v, want 4", got)
	}
	if got := testutil.ToFloat64(m.UnresolvedPlaceholders); got != 2 {
		t.Fatalf("unresolved = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.DocumentOutcomes.WithLabelValues(OutcomeSkipped)); got != 3 {
		t.Fatalf("skipped = %v, want 3", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.VersionCreated("major")
	path := filepath.Join(t.TempDir(), "casedoc.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `casedoc_template_versions_created_total{change_type="major"} 1`) {
		t.Fatalf("textfile missing counter:\n%s", data)
	}
}
