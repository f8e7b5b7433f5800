package fuzzymatch

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_ObserveMatch(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewRegistry()
	if err := m.Register(reg); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	m.ObserveMatch(OutcomeHit, 0.001, 3)
	m.ObserveMatch(OutcomeHit, 0.002, 5)
	m.ObserveMatch(OutcomeMiss, 0.001, 0)
	m.ObserveMatch(OutcomeError, 0.01, 0)

	if got := testutil.ToFloat64(m.matchesTotal.WithLabelValues(OutcomeHit)); got != 2 {
		t.Errorf("hit count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.matchesTotal.WithLabelValues(OutcomeMiss)); got != 1 {
		t.Errorf("miss count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.matchesTotal.WithLabelValues(OutcomeError)); got != 1 {
		t.Errorf("error count = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.matchesTotal); got != 3 {
		t.Errorf("outcome series = %d, want 3", got)
	}
}

func TestMetrics_RegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, second := NewMetrics(), NewMetrics()
	if err := first.Register(reg); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	if err := second.Register(reg); err != nil {
		t.Fatalf("second Register() error = %v", err)
	}

	first.ObserveMatch(OutcomeHit, 0.001, 1)
	second.ObserveMatch(OutcomeHit, 0.001, 1)
	if got := testutil.ToFloat64(first.matchesTotal.WithLabelValues(OutcomeHit)); got != 2 {
		t.Errorf("shared hit count = %v, want 2", got)
	}
	if second.matchDuration != first.matchDuration || second.candidatesScanned != first.candidatesScanned {
		t.Error("second Register() should adopt the registered histograms")
	}
}

func TestMetrics_RegisterConflict(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGauge(prometheus.GaugeOpts{Name: MetricMatchesTotal, Help: "unrelated"}))
	if err := NewMetrics().Register(reg); err == nil {
		t.Error("Register() over a conflicting collector should fail")
	}
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	m.ObserveMatch(OutcomeHit, 1, 1)
}

func TestMetrics_Collectors(t *testing.T) {
	if got := len(NewMetrics().Collectors()); got != 3 {
		t.Errorf("Collectors() returned %d collectors, want 3", got)
	}
}
