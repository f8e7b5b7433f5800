package fuzzymatch

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// defaultMaxCandidates bounds the entries loaded from a provider per match.
const defaultMaxCandidates = 10000

// defaultNamespace is the store namespace used when none is configured.
const defaultNamespace = "fuzzymatch"

// Config holds configuration for a Matcher.
type Config struct {
	// ProviderConfig contains provider-specific configuration.
	// Each provider defines its own config struct type.
	ProviderConfig interface{}

	// Options contains common matching behavior settings.
	Options Options
}

// Options contains common matching behavior settings.
// Use DefaultOptions() for default values.
type Options struct {
	// Namespace prefixes all keys in the storage backend.
	// Enables multiple haystacks to coexist (e.g., "languages", "cities").
	// Default: "fuzzymatch".
	Namespace string

	// MinQueryLength is the minimum query length in runes.
	// Default: 0.
	MinQueryLength int

	// MaxCandidates is the maximum number of entries loaded from the
	// provider for a single match. Entries past the limit, in insertion
	// order, are not considered.
	// Default: 10000.
	MaxCandidates int

	// MinScore is the lowest first-stage score that still counts as a match.
	// Zero or negative disables the threshold.
	// Default: 0.
	MinScore float64

	// Workers is the number of goroutines used to score candidates.
	// Default: 1 (sequential).
	Workers int

	// Normalize applies Unicode NFKC normalization to the query and the
	// candidate text before scoring.
	// Default: true.
	Normalize bool

	// Scorers is the scorer chain. Nil selects DefaultScorers().
	Scorers []Scorer

	// Logger receives structured logs. Nil selects slog.Default().
	Logger *slog.Logger

	// Registerer, if set, receives the matcher's Prometheus collectors.
	// Matchers sharing a Registerer count into the same series.
	Registerer prometheus.Registerer
}

// DefaultOptions returns default options with the default scorer chain.
func DefaultOptions() Options {
	return Options{
		Namespace:      defaultNamespace,
		MinQueryLength: 0,
		MaxCandidates:  defaultMaxCandidates,
		MinScore:       0,
		Workers:        1,
		Normalize:      true,
	}
}

// NewConfig creates a new configuration with default options.
func NewConfig(providerConfig interface{}) Config {
	return Config{
		ProviderConfig: providerConfig,
		Options:        DefaultOptions(),
	}
}

// NewConfigWithOptions creates a new configuration with custom options.
func NewConfigWithOptions(providerConfig interface{}, options Options) Config {
	return Config{
		ProviderConfig: providerConfig,
		Options:        options,
	}
}

// chain builds the scorer chain described by the options.
func (o *Options) chain() (*Chain, error) {
	scorers := o.Scorers
	if scorers == nil {
		scorers = DefaultScorers()
	}

	opts := []ChainOption{WithWorkers(o.Workers)}
	if o.MinScore > 0 {
		opts = append(opts, WithMinScore(o.MinScore))
	}
	return NewChain(scorers, opts...)
}
