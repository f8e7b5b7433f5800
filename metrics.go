package fuzzymatch

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metric names.
const (
	MetricMatchesTotal      = "fuzzymatch_matches_total"
	MetricMatchDuration     = "fuzzymatch_match_duration_seconds"
	MetricCandidatesScanned = "fuzzymatch_candidates_scanned"
)

// Match outcomes used as the "outcome" label.
const (
	OutcomeHit   = "hit"
	OutcomeMiss  = "miss"
	OutcomeError = "error"
)

// Metrics contains Prometheus metrics for Matcher operations.
// A nil *Metrics records nothing.
type Metrics struct {
	matchesTotal      *prometheus.CounterVec
	matchDuration     prometheus.Histogram
	candidatesScanned prometheus.Histogram
}

// NewMetrics creates a Metrics instance with all collectors initialized.
// The metrics are not registered; call Register to register them with a registry.
func NewMetrics() *Metrics {
	return &Metrics{
		matchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricMatchesTotal,
				Help: "Total number of match operations by outcome",
			},
			[]string{"outcome"},
		),
		matchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    MetricMatchDuration,
				Help:    "Histogram of match duration in seconds, including candidate loading",
				Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
		),
		candidatesScanned: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    MetricCandidatesScanned,
				Help:    "Histogram of candidates ranked per match",
				Buckets: prometheus.ExponentialBuckets(1, 4, 9),
			},
		),
	}
}

// Register registers all metrics with the given registry. Collectors the
// registry already holds under the same names are adopted, so several
// Metrics registered with one registry count into the same series.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	var err error
	if m.matchesTotal, err = registerOrReuse(reg, m.matchesTotal); err != nil {
		return err
	}
	if m.matchDuration, err = registerOrReuse(reg, m.matchDuration); err != nil {
		return err
	}
	if m.candidatesScanned, err = registerOrReuse(reg, m.candidatesScanned); err != nil {
		return err
	}
	return nil
}

func registerOrReuse[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, err
}

// Collectors returns all Prometheus collectors.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.matchesTotal,
		m.matchDuration,
		m.candidatesScanned,
	}
}

// ObserveMatch records one match operation.
func (m *Metrics) ObserveMatch(outcome string, seconds float64, candidates int) {
	if m == nil {
		return
	}
	m.matchesTotal.WithLabelValues(outcome).Inc()
	m.matchDuration.Observe(seconds)
	if outcome != OutcomeError {
		m.candidatesScanned.Observe(float64(candidates))
	}
}
