// Package providers defines the interface that all fuzzymatch candidate stores must implement.
package providers

import (
	"context"
)

// Entry is one stored candidate.
type Entry struct {
	// ID is the unique identifier provided during indexing.
	ID string `json:"id"`

	// Text is the string scored against queries.
	Text string `json:"text"`

	// Value is the payload returned when the entry wins a match.
	Value string `json:"value"`
}

// Provider defines the interface that all candidate stores must implement.
// All methods must be safe for concurrent use. The namespace parameter allows
// multiple haystacks to coexist in one store.
type Provider interface {
	// Index adds or replaces an entry. A replaced entry moves to the end of
	// the namespace's insertion order.
	Index(ctx context.Context, namespace string, entry Entry) error

	// Entries returns up to limit entries in insertion order. A limit of 0
	// or less returns every entry. Returns an empty slice (not nil) if the
	// namespace holds nothing.
	Entries(ctx context.Context, namespace string, limit int) ([]Entry, error)

	// Delete removes an entry.
	// Deleting a non-existent entry succeeds without error (idempotent).
	Delete(ctx context.Context, namespace, id string) error

	// DeleteAll removes all entries for a namespace.
	// This operation cannot be undone.
	DeleteAll(ctx context.Context, namespace string) error

	// Close closes the provider connection and releases resources.
	// It is safe to call multiple times. After Close, other methods will fail.
	Close() error
}
