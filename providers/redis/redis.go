// Package redis implements the fuzzymatch Provider interface using Redis as the storage backend.
// Each namespace is kept in a sorted set that records insertion order and two
// hashes that hold the candidate text and value.
package redis

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/remiges-tech/fuzzymatch/providers"
)

const (
	// prefixOrder is the Redis key prefix for sorted sets storing ID → insertion sequence.
	prefixOrder = "fm:order:"

	// prefixText is the Redis key prefix for hash maps storing ID → candidate text.
	prefixText = "fm:text:"

	// prefixValue is the Redis key prefix for hash maps storing ID → value.
	prefixValue = "fm:value:"

	// prefixSeq is the Redis key prefix for the per-namespace sequence counter.
	prefixSeq = "fm:seq:"
)

// Provider implements the fuzzymatch Provider interface using Redis.
// All methods are safe for concurrent use.
type Provider struct {
	client *redis.Client
}

// Config holds Redis connection parameters.
type Config struct {
	// Addr is the Redis server address in the format "host:port".
	Addr string

	// Password is the Redis password (empty string for no password).
	Password string

	// DB is the Redis database number (0-15, default is 0).
	// Redis Cluster only supports DB 0.
	DB int
}

// New creates a new Redis provider with the given configuration.
// It establishes a connection to Redis and verifies connectivity with a PING command.
func New(config Config) (*Provider, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password, // pragma: allowlist secret
		DB:       config.DB,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Provider{
		client: client,
	}, nil
}

// Index adds or replaces an entry. The entry receives a fresh sequence
// number, so a replaced entry moves to the end of the order.
func (p *Provider) Index(ctx context.Context, namespace string, entry providers.Entry) error {
	seq, err := p.client.Incr(ctx, prefixSeq+namespace).Result()
	if err != nil {
		return fmt.Errorf("failed to allocate sequence: %w", err)
	}

	pipe := p.client.TxPipeline()
	pipe.ZAdd(ctx, prefixOrder+namespace, &redis.Z{
		Score:  float64(seq),
		Member: entry.ID,
	})
	pipe.HSet(ctx, prefixText+namespace, entry.ID, entry.Text)
	pipe.HSet(ctx, prefixValue+namespace, entry.ID, entry.Value)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to index entry: %w", err)
	}
	return nil
}

// Entries returns up to limit entries in insertion order.
func (p *Provider) Entries(ctx context.Context, namespace string, limit int) ([]providers.Entry, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	ids, err := p.client.ZRange(ctx, prefixOrder+namespace, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read entry order: %w", err)
	}
	return p.fetchEntries(ctx, namespace, ids)
}

// fetchEntries fetches text and value for the given IDs, keeping their order.
// IDs removed concurrently are skipped.
func (p *Provider) fetchEntries(ctx context.Context, namespace string, ids []string) ([]providers.Entry, error) {
	if len(ids) == 0 {
		return []providers.Entry{}, nil
	}

	pipe := p.client.Pipeline()
	textCmd := pipe.HMGet(ctx, prefixText+namespace, ids...)
	valueCmd := pipe.HMGet(ctx, prefixValue+namespace, ids...)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to fetch entries: %w", err)
	}

	texts, values := textCmd.Val(), valueCmd.Val()
	entries := make([]providers.Entry, 0, len(ids))
	for i, id := range ids {
		text, ok := texts[i].(string)
		if !ok {
			continue
		}
		value, _ := values[i].(string)

		entries = append(entries, providers.Entry{
			ID:    id,
			Text:  text,
			Value: value,
		})
	}

	return entries, nil
}

// Delete removes an entry from the namespace.
func (p *Provider) Delete(ctx context.Context, namespace, id string) error {
	pipe := p.client.TxPipeline()
	pipe.ZRem(ctx, prefixOrder+namespace, id)
	pipe.HDel(ctx, prefixText+namespace, id)
	pipe.HDel(ctx, prefixValue+namespace, id)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}

// DeleteAll removes all entries for a given namespace.
func (p *Provider) DeleteAll(ctx context.Context, namespace string) error {
	pipe := p.client.TxPipeline()
	deleteAllKeysForNamespace(ctx, pipe, namespace)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete namespace: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (p *Provider) Close() error {
	err := p.client.Close()
	if err == redis.ErrClosed {
		return nil
	}
	return err
}

func deleteAllKeysForNamespace(ctx context.Context, pipe redis.Pipeliner, namespace string) {
	pipe.Del(ctx,
		prefixOrder+namespace,
		prefixText+namespace,
		prefixValue+namespace,
		prefixSeq+namespace,
	)
}
