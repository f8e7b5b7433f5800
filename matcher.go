package fuzzymatch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/remiges-tech/fuzzymatch/internal/textnorm"
	"github.com/remiges-tech/fuzzymatch/providers"
)

// Result is the entry that won a match.
type Result struct {
	// ID is the unique identifier as provided during indexing.
	ID string `json:"id"`

	// Text is the candidate text the query was scored against.
	Text string `json:"text"`

	// Value is the payload stored with the entry.
	Value string `json:"value"`

	// Score is the winner's score under the first scorer of the chain.
	Score float64 `json:"score"`
}

// Matcher matches queries against a haystack held in a provider.
// All methods are safe for concurrent use.
type Matcher interface {
	// Index adds or replaces a candidate. The text parameter is scored
	// against queries, while value is returned with a match. Replacing an
	// entry moves it to the end of the haystack order.
	// Returns ErrEmptyID or ErrEmptyText for empty parameters.
	Index(ctx context.Context, id, text, value string) error

	// Match returns the best candidate for query. The boolean is false when
	// the namespace is empty or no candidate reaches MinScore.
	// Returns ErrQueryTooShort if query is shorter than MinQueryLength.
	Match(ctx context.Context, query string) (Result, bool, error)

	// Explain ranks like Match and returns the stage trace along with the
	// entries it refers to; Explanation indices point into the entries.
	Explain(ctx context.Context, query string) (Explanation, []providers.Entry, error)

	// Delete removes a candidate.
	// Deleting a non-existent entry returns nil (idempotent).
	// Returns ErrEmptyID if id is empty.
	Delete(ctx context.Context, id string) error

	// DeleteAll removes every candidate in the configured namespace.
	DeleteAll(ctx context.Context) error

	// Close closes the provider and releases resources.
	// It is safe to call multiple times. After Close, other methods return ErrClosed.
	Close() error
}

// matcherImpl is the default implementation of Matcher.
type matcherImpl struct {
	provider providers.Provider
	options  Options
	chain    *Chain
	metrics  *Metrics
	logger   *slog.Logger
	closed   atomic.Bool
}

// Index adds or replaces a candidate.
// See Matcher.Index for details.
func (m *matcherImpl) Index(ctx context.Context, id, text, value string) error {
	if m.closed.Load() {
		return ErrClosed
	}
	if id == "" {
		return ErrEmptyID
	}
	if text == "" {
		return ErrEmptyText
	}

	entry := providers.Entry{ID: id, Text: text, Value: value}
	if err := m.provider.Index(ctx, m.options.Namespace, entry); err != nil {
		m.logger.Warn("index failed", "namespace", m.options.Namespace, "id", id, "error", err)
		return err
	}
	return nil
}

// Match returns the best candidate for query.
// See Matcher.Match for details.
func (m *matcherImpl) Match(ctx context.Context, query string) (Result, bool, error) {
	ex, entries, err := m.Explain(ctx, query)
	if err != nil {
		return Result{}, false, err
	}
	if !ex.Matched() {
		return Result{}, false, nil
	}

	winner := entries[ex.Winner]
	return Result{
		ID:    winner.ID,
		Text:  winner.Text,
		Value: winner.Value,
		Score: ex.Stages[0].Best,
	}, true, nil
}

// Explain ranks the haystack and returns the stage trace.
// See Matcher.Explain for details.
func (m *matcherImpl) Explain(ctx context.Context, query string) (Explanation, []providers.Entry, error) {
	if m.closed.Load() {
		return Explanation{}, nil, ErrClosed
	}
	if utf8.RuneCountInString(query) < m.options.MinQueryLength {
		return Explanation{}, nil, ErrQueryTooShort
	}

	start := time.Now()
	entries, err := m.provider.Entries(ctx, m.options.Namespace, m.options.MaxCandidates)
	if err != nil {
		m.metrics.ObserveMatch(OutcomeError, time.Since(start).Seconds(), 0)
		m.logger.Warn("loading candidates failed", "namespace", m.options.Namespace, "error", err)
		return Explanation{}, nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	haystack := make([]Candidate[int], len(entries))
	for i, e := range entries {
		haystack[i] = Candidate[int]{Key: m.normalize(e.Text), Value: i}
	}

	ex := Explain(m.chain, m.normalize(query), haystack)
	ex.Query = query

	outcome := OutcomeMiss
	if ex.Matched() {
		outcome = OutcomeHit
	}
	m.metrics.ObserveMatch(outcome, time.Since(start).Seconds(), len(entries))
	m.logger.Debug("match",
		"namespace", m.options.Namespace,
		"query", query,
		"candidates", len(entries),
		"stages", len(ex.Stages),
		"matched", ex.Matched(),
	)

	return ex, entries, nil
}

// Delete removes a candidate.
// See Matcher.Delete for details.
func (m *matcherImpl) Delete(ctx context.Context, id string) error {
	if m.closed.Load() {
		return ErrClosed
	}
	if id == "" {
		return ErrEmptyID
	}

	return m.provider.Delete(ctx, m.options.Namespace, id)
}

// DeleteAll removes every candidate in the namespace.
// See Matcher.DeleteAll for details.
func (m *matcherImpl) DeleteAll(ctx context.Context) error {
	if m.closed.Load() {
		return ErrClosed
	}
	return m.provider.DeleteAll(ctx, m.options.Namespace)
}

// Close closes the provider.
// See Matcher.Close for details.
func (m *matcherImpl) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	return m.provider.Close()
}

func (m *matcherImpl) normalize(s string) string {
	if !m.options.Normalize {
		return s
	}
	return textnorm.Normalize(s)
}

// New creates a new Matcher with the specified provider.
// The providerType must be registered (case-insensitive). Config contains
// both provider-specific settings and common options.
// Returns ErrProviderNotFound if the provider is not registered, or the chain
// validation error if Options.Scorers is invalid.
//
// Example:
//
//	import _ "github.com/remiges-tech/fuzzymatch/providers/memory"
//
//	m, err := fuzzymatch.New("memory", fuzzymatch.NewConfig(memory.Config{}))
//
//nolint:gocritic // hugeParam: Config is passed once at startup
func New(providerType string, config Config) (Matcher, error) {
	factory, exists := providerFactories[strings.ToLower(providerType)]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, providerType)
	}

	options := config.Options
	if options.Namespace == "" {
		options.Namespace = defaultNamespace
	}
	if options.MaxCandidates <= 0 {
		options.MaxCandidates = defaultMaxCandidates
	}

	chain, err := options.chain()
	if err != nil {
		return nil, err
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var metrics *Metrics
	if options.Registerer != nil {
		metrics = NewMetrics()
		if err := metrics.Register(options.Registerer); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	provider, err := factory(config.ProviderConfig)
	if err != nil {
		return nil, err
	}

	return &matcherImpl{
		provider: provider,
		options:  options,
		chain:    chain,
		metrics:  metrics,
		logger:   logger.With("provider", strings.ToLower(providerType)),
	}, nil
}

// ProviderFactory creates a Provider instance from a configuration.
// The factory must type-assert the config parameter to its expected type.
type ProviderFactory func(config interface{}) (providers.Provider, error)

// providerFactories holds the registered provider factories.
var providerFactories = make(map[string]ProviderFactory)

// RegisterProvider registers a candidate store factory.
// Typically called from a provider's init() function. The name is
// case-insensitive. Registering with an existing name overwrites it.
//
// Example:
//
//	package myprovider
//
//	func init() {
//	    fuzzymatch.RegisterProvider("myprovider", NewProvider)
//	}
//
//	func NewProvider(config interface{}) (providers.Provider, error) {
//	    cfg, ok := config.(Config)
//	    if !ok {
//	        return nil, errors.New("invalid config type")
//	    }
//	    return &Provider{config: cfg}, nil
//	}
//
// Safe to call during init(); there is no mutex protection after that.
func RegisterProvider(name string, factory ProviderFactory) {
	providerFactories[strings.ToLower(name)] = factory
}
