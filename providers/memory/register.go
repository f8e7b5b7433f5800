package memory

import (
	"fmt"

	"github.com/remiges-tech/fuzzymatch"
	"github.com/remiges-tech/fuzzymatch/providers"
)

// init registers the memory provider. Import this package with a blank identifier
// to keep candidates in process memory:
//
//	import _ "github.com/remiges-tech/fuzzymatch/providers/memory"
//
//nolint:gochecknoinits // init() is the idiomatic pattern for provider registration
func init() {
	fuzzymatch.RegisterProvider("memory", NewProvider)
}

// NewProvider creates a new memory provider from the given configuration.
// It implements ProviderFactory and accepts memory.Config or nil.
func NewProvider(config interface{}) (providers.Provider, error) {
	switch cfg := config.(type) {
	case nil:
		return New(Config{}), nil
	case Config:
		return New(cfg), nil
	default:
		return nil, fmt.Errorf("invalid configuration type for memory provider: expected memory.Config, got %T", config)
	}
}
