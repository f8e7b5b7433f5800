package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/remiges-tech/fuzzymatch/providers"
)

const (
	// pageSize is the number of documents fetched per search_after page.
	pageSize = 1000

	// indexMappingTemplate is the Elasticsearch index mapping for candidates.
	// Text and value are only stored; scoring happens in the matcher.
	indexMappingTemplate = `{
		"settings": {
			"number_of_shards": %d,
			"number_of_replicas": %d
		},
		"mappings": {
			"properties": {
				"id": {"type": "keyword"},
				"namespace": {"type": "keyword"},
				"text": {"type": "keyword", "index": false},
				"value": {"type": "keyword", "index": false},
				"seq": {"type": "long"}
			}
		}
	}`
)

// Provider implements the fuzzymatch Provider interface using Elasticsearch.
type Provider struct {
	client        *elasticsearch.Client
	index         string
	refreshPolicy string
	now           func() time.Time

	seqMu   sync.Mutex
	lastSeq int64
}

// document represents the structure stored in Elasticsearch.
type document struct {
	ID        string `json:"id"`
	Namespace string `json:"namespace"`
	Text      string `json:"text"`
	Value     string `json:"value"`
	Seq       int64  `json:"seq"`
}

// searchHit represents a single search result from Elasticsearch.
type searchHit struct {
	Source document      `json:"_source"`
	Sort   []interface{} `json:"sort"`
}

// searchResponse represents the Elasticsearch search response.
type searchResponse struct {
	Hits struct {
		Hits []searchHit `json:"hits"`
	} `json:"hits"`
}

// New creates a new Elasticsearch provider with the given configuration.
// It verifies connectivity and creates the index when it does not exist.
func New(config *Config) (*Provider, error) {
	config.setDefaults()

	esConfig := elasticsearch.Config{
		Addresses: config.URLs,
		Username:  config.Username,
		Password:  config.Password,
		CloudID:   config.CloudID,
		APIKey:    config.APIKey,
	}

	client, err := elasticsearch.NewClient(esConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	// Test connection
	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Elasticsearch: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return nil, fmt.Errorf("Elasticsearch connection error: %s", res.String())
	}

	provider := &Provider{
		client:        client,
		index:         config.Index,
		refreshPolicy: config.RefreshPolicy,
		now:           time.Now,
	}

	if err := provider.createIndexIfNotExists(config); err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return provider, nil
}

// createIndexIfNotExists creates the index with the candidate mapping if it doesn't exist.
func (p *Provider) createIndexIfNotExists(config *Config) error {
	exists, err := p.indexExists()
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	mapping := fmt.Sprintf(indexMappingTemplate, config.NumberOfShards, config.NumberOfReplicas)

	req := esapi.IndicesCreateRequest{
		Index: p.index,
		Body:  strings.NewReader(mapping),
	}

	res, err := req.Do(context.Background(), p.client)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("failed to create index: %s", res.String())
	}

	return nil
}

// indexExists checks if the index exists.
func (p *Provider) indexExists() (bool, error) {
	req := esapi.IndicesExistsRequest{
		Index: []string{p.index},
	}

	res, err := req.Do(context.Background(), p.client)
	if err != nil {
		return false, err
	}
	defer func() { _ = res.Body.Close() }()

	const httpOK = 200
	return res.StatusCode == httpOK, nil
}

// nextSeq returns the current time in nanoseconds, bumped past the last
// value this provider handed out so that sequence numbers strictly increase.
func (p *Provider) nextSeq() int64 {
	p.seqMu.Lock()
	defer p.seqMu.Unlock()

	seq := p.now().UnixNano()
	if seq <= p.lastSeq {
		seq = p.lastSeq + 1
	}
	p.lastSeq = seq
	return seq
}

// Index adds or replaces an entry. The document receives a fresh sequence
// number, so a replaced entry moves to the end of the order. Ordering across
// processes follows their clocks.
func (p *Provider) Index(ctx context.Context, namespace string, entry providers.Entry) error {
	doc := document{
		ID:        entry.ID,
		Namespace: namespace,
		Text:      entry.Text,
		Value:     entry.Value,
		Seq:       p.nextSeq(),
	}

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      p.index,
		DocumentID: generateDocumentID(namespace, entry.ID),
		Body:       bytes.NewReader(docJSON),
		Refresh:    p.refreshPolicy,
	}

	res, err := req.Do(ctx, p.client)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("failed to index document: %s", res.String())
	}

	return nil
}

// Entries returns up to limit entries ordered by seq, then id. Results are
// paged with search_after, so the count is not bounded by max_result_window.
func (p *Provider) Entries(ctx context.Context, namespace string, limit int) ([]providers.Entry, error) {
	entries := []providers.Entry{}
	var after []interface{}

	for {
		size := pageSize
		if limit > 0 && limit-len(entries) < size {
			size = limit - len(entries)
		}
		if size <= 0 {
			return entries, nil
		}

		hits, err := p.search(ctx, buildEntriesQuery(namespace, size, after))
		if err != nil {
			return nil, err
		}

		for _, hit := range hits {
			entries = append(entries, providers.Entry{
				ID:    hit.Source.ID,
				Text:  hit.Source.Text,
				Value: hit.Source.Value,
			})
		}

		if len(hits) < size {
			return entries, nil
		}
		after = hits[len(hits)-1].Sort
	}
}

// buildEntriesQuery constructs one page of the namespace scan.
func buildEntriesQuery(namespace string, size int, after []interface{}) map[string]interface{} {
	query := map[string]interface{}{
		"size": size,
		"query": map[string]interface{}{
			"term": map[string]interface{}{
				"namespace": namespace,
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"seq": "asc"},
			map[string]interface{}{"id": "asc"},
		},
	}
	if after != nil {
		query["search_after"] = after
	}
	return query
}

// search runs a search request and returns its hits.
func (p *Provider) search(ctx context.Context, query map[string]interface{}) ([]searchHit, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{p.index},
		Body:  &buf,
	}

	res, err := req.Do(ctx, p.client)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return nil, fmt.Errorf("search failed: %s", res.String())
	}

	return parseSearchResponse(res.Body)
}

// parseSearchResponse decodes the hits of a search response. Numbers are kept
// as json.Number so that nanosecond sort values survive the round trip into
// search_after.
func parseSearchResponse(body io.Reader) ([]searchHit, error) {
	var response searchResponse
	dec := json.NewDecoder(body)
	dec.UseNumber()
	if err := dec.Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return response.Hits.Hits, nil
}

// Delete removes an entry from the index.
func (p *Provider) Delete(ctx context.Context, namespace, id string) error {
	req := esapi.DeleteRequest{
		Index:      p.index,
		DocumentID: generateDocumentID(namespace, id),
		Refresh:    p.refreshPolicy,
	}

	res, err := req.Do(ctx, p.client)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	// 404 is not an error for delete (idempotent)
	const httpNotFound = 404
	if res.IsError() && res.StatusCode != httpNotFound {
		return fmt.Errorf("failed to delete document: %s", res.String())
	}

	return nil
}

// DeleteAll removes all entries for a given namespace.
func (p *Provider) DeleteAll(ctx context.Context, namespace string) error {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{
				"namespace": namespace,
			},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return fmt.Errorf("failed to encode query: %w", err)
	}

	// delete_by_query has no wait_for; any policy other than "false" refreshes.
	refresh := p.refreshPolicy != "false"
	req := esapi.DeleteByQueryRequest{
		Index:   []string{p.index},
		Body:    &buf,
		Refresh: &refresh,
	}

	res, err := req.Do(ctx, p.client)
	if err != nil {
		return fmt.Errorf("failed to delete by query: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("failed to delete by query: %s", res.String())
	}

	return nil
}

// Close closes the provider connection.
func (p *Provider) Close() error {
	// The Elasticsearch Go client doesn't have a Close method
	// as it uses standard HTTP connections that are managed by Go's http package
	return nil
}

// generateDocumentID creates a unique document ID from namespace and id.
func generateDocumentID(namespace, id string) string {
	return fmt.Sprintf("%s:%s", namespace, id)
}
