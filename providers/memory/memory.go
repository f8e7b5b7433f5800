// Package memory implements the fuzzymatch Provider interface in process
// memory. Entries live for the lifetime of the Provider and are lost on Close.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/remiges-tech/fuzzymatch/providers"
)

// errClosed is returned by every method after Close.
var errClosed = errors.New("memory provider closed")

// Config configures the memory provider. It currently has no settings.
type Config struct{}

// Provider keeps entries in an ordered slice per namespace.
// All methods are safe for concurrent use.
type Provider struct {
	mu     sync.RWMutex
	data   map[string][]providers.Entry
	closed bool
}

// New creates an empty memory provider.
func New(Config) *Provider {
	return &Provider{data: make(map[string][]providers.Entry)}
}

// Index adds or replaces an entry. A replaced entry moves to the end.
func (p *Provider) Index(_ context.Context, namespace string, entry providers.Entry) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errClosed
	}

	entries := removeID(p.data[namespace], entry.ID)
	p.data[namespace] = append(entries, entry)
	return nil
}

// Entries returns up to limit entries in insertion order.
func (p *Provider) Entries(_ context.Context, namespace string, limit int) ([]providers.Entry, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return nil, errClosed
	}

	entries := p.data[namespace]
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return append([]providers.Entry{}, entries...), nil
}

// Delete removes an entry from the namespace.
func (p *Provider) Delete(_ context.Context, namespace, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errClosed
	}

	p.data[namespace] = removeID(p.data[namespace], id)
	return nil
}

// DeleteAll removes every entry in the namespace.
func (p *Provider) DeleteAll(_ context.Context, namespace string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errClosed
	}

	delete(p.data, namespace)
	return nil
}

// Close drops all entries.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	p.data = nil
	return nil
}

// removeID returns entries without the entry for id, preserving order.
// The result never shares a backing array with entries, so slices handed
// out by Entries stay valid.
func removeID(entries []providers.Entry, id string) []providers.Entry {
	out := make([]providers.Entry, 0, len(entries)+1)
	for _, e := range entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}
