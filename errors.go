package fuzzymatch

import "errors"

// Sentinel errors for configuration and validation failures.

var (
	// ErrEmptyScorerChain is returned when a ranking is requested with no scorers.
	ErrEmptyScorerChain = errors.New("empty scorer chain")

	// ErrNilScorer is returned when a scorer chain contains a nil scorer.
	ErrNilScorer = errors.New("nil scorer in chain")

	// ErrProviderNotFound is returned when a provider is not registered.
	// Usually means you forgot to import the provider package with an underscore.
	ErrProviderNotFound = errors.New("fuzzymatch provider not found")

	// ErrQueryTooShort is returned when the query is shorter than MinQueryLength.
	ErrQueryTooShort = errors.New("query too short")

	// ErrEmptyID is returned when an empty ID is provided to Index or Delete.
	ErrEmptyID = errors.New("empty ID")

	// ErrEmptyText is returned when empty candidate text is provided to Index.
	ErrEmptyText = errors.New("empty text")

	// ErrClosed is returned when a Matcher is used after Close.
	ErrClosed = errors.New("matcher closed")
)
