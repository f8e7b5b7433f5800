package redis

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/remiges-tech/fuzzymatch"
	"github.com/remiges-tech/fuzzymatch/providers"
)

const testNamespace = "test"

var (
	sharedContainer testcontainers.Container
	sharedProvider  *Provider
	sharedConfig    Config
)

// TestMain sets up a shared Redis container for all tests
func TestMain(m *testing.M) {
	// Setup
	ctx := context.Background()
	container, provider, err := setupSharedContainer(ctx)
	if err != nil {
		log.Fatalf("Failed to setup test container: %v", err)
	}

	sharedContainer = container
	sharedProvider = provider

	// Run tests
	code := m.Run()

	// Cleanup
	if err := sharedProvider.Close(); err != nil {
		log.Printf("Failed to close provider: %v", err)
	}
	if sharedContainer != nil {
		if err := sharedContainer.Terminate(ctx); err != nil {
			log.Printf("Failed to terminate container: %v", err)
		}
	}

	os.Exit(code)
}

func setupSharedContainer(ctx context.Context) (testcontainers.Container, *Provider, error) {
	req := testcontainers.ContainerRequest{
		Image:        "redis:8-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, nil, err
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, nil, err
	}

	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		return nil, nil, err
	}

	sharedConfig = Config{
		Addr:     fmt.Sprintf("%s:%s", host, port.Port()),
		Password: "",
		DB:       0,
	}

	provider, err := New(sharedConfig)
	if err != nil {
		return nil, nil, err
	}

	return container, provider, nil
}

func getTestRedisClient(t *testing.T) *Provider {
	if sharedProvider == nil {
		t.Fatal("Redis provider not initialized")
	}

	// Clear the database before each test
	ctx := context.Background()
	if err := sharedProvider.client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush database: %v", err)
	}

	return sharedProvider
}

func entryIDs(entries []providers.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func assertIDs(t *testing.T, entries []providers.Entry, want ...string) {
	t.Helper()
	got := entryIDs(entries)
	if len(got) != len(want) {
		t.Fatalf("ids = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ids = %v, want %v", got, want)
		}
	}
}

func TestRedisProvider_Index(t *testing.T) {
	provider := getTestRedisClient(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		entry providers.Entry
	}{
		{"simple index", providers.Entry{ID: "1", Text: "rust", Value: "0"}},
		{"empty value", providers.Entry{ID: "2", Text: "java", Value: ""}},
		{"unicode text", providers.Entry{ID: "3", Text: "日本語", Value: "2"}},
		{"update existing entry", providers.Entry{ID: "1", Text: "rust lang", Value: "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := provider.Index(ctx, testNamespace, tt.entry); err != nil {
				t.Errorf("Index() error = %v", err)
			}
		})
	}

	entries, err := provider.Entries(ctx, testNamespace, 0)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	assertIDs(t, entries, "2", "3", "1")

	if entries[2].Text != "rust lang" || entries[2].Value != "0" {
		t.Errorf("replaced entry = %+v", entries[2])
	}
	if entries[1].Text != "日本語" {
		t.Errorf("unicode entry text = %q", entries[1].Text)
	}
}

func TestRedisProvider_EntriesLimit(t *testing.T) {
	provider := getTestRedisClient(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		id := fmt.Sprintf("%d", i)
		if err := provider.Index(ctx, testNamespace, providers.Entry{ID: id, Text: "text " + id, Value: id}); err != nil {
			t.Fatalf("Index() error = %v", err)
		}
	}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"no limit", 0, []string{"1", "2", "3", "4", "5"}},
		{"negative limit", -1, []string{"1", "2", "3", "4", "5"}},
		{"limit 2", 2, []string{"1", "2"}},
		{"limit past end", 10, []string{"1", "2", "3", "4", "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := provider.Entries(ctx, testNamespace, tt.limit)
			if err != nil {
				t.Fatalf("Entries() error = %v", err)
			}
			assertIDs(t, entries, tt.want...)
		})
	}
}

func TestRedisProvider_EmptyNamespace(t *testing.T) {
	provider := getTestRedisClient(t)

	entries, err := provider.Entries(context.Background(), "nothing-here", 0)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("Entries() = %v, want empty non-nil slice", entries)
	}
}

func TestRedisProvider_Delete(t *testing.T) {
	provider := getTestRedisClient(t)
	ctx := context.Background()

	_ = provider.Index(ctx, testNamespace, providers.Entry{ID: "1", Text: "rust"})
	_ = provider.Index(ctx, testNamespace, providers.Entry{ID: "2", Text: "java"})

	if err := provider.Delete(ctx, testNamespace, "1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := provider.Delete(ctx, testNamespace, "non-existent"); err != nil {
		t.Errorf("Delete() of non-existent entry error = %v", err)
	}

	entries, err := provider.Entries(ctx, testNamespace, 0)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	assertIDs(t, entries, "2")
}

func TestRedisProvider_DeleteAll(t *testing.T) {
	provider := getTestRedisClient(t)
	ctx := context.Background()

	_ = provider.Index(ctx, "ns1", providers.Entry{ID: "1", Text: "rust"})
	_ = provider.Index(ctx, "ns2", providers.Entry{ID: "1", Text: "java"})

	if err := provider.DeleteAll(ctx, "ns1"); err != nil {
		t.Fatalf("DeleteAll() error = %v", err)
	}

	entries, _ := provider.Entries(ctx, "ns1", 0)
	if len(entries) != 0 {
		t.Errorf("ns1 still holds %d entries", len(entries))
	}

	entries, _ = provider.Entries(ctx, "ns2", 0)
	assertIDs(t, entries, "1")
	if entries[0].Text != "java" {
		t.Errorf("ns2 entry text = %q, want java", entries[0].Text)
	}
}

func TestNewProvider_InvalidConfig(t *testing.T) {
	if _, err := NewProvider("localhost:6379"); err == nil {
		t.Error("NewProvider() with wrong config type should fail")
	}
}

func TestNew_ConnectionFailure(t *testing.T) {
	if _, err := New(Config{Addr: "127.0.0.1:1"}); err == nil {
		t.Error("New() with unreachable address should fail")
	}
}

func TestRedisMatcher_EndToEnd(t *testing.T) {
	getTestRedisClient(t)
	ctx := context.Background()

	config := fuzzymatch.NewConfig(sharedConfig)
	config.Options.Namespace = "languages"
	m, err := fuzzymatch.New("Redis", config)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		if err := m.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	}()

	for i, lang := range []string{"rust", "java", "lisp"} {
		if err := m.Index(ctx, fmt.Sprintf("%d", i), lang, fmt.Sprintf("%d", i)); err != nil {
			t.Fatalf("Index() error = %v", err)
		}
	}

	result, ok, err := m.Match(ctx, "bust")
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if !ok || result.Value != "0" || result.Text != "rust" {
		t.Errorf("Match(bust) = %+v, %v; want rust", result, ok)
	}

	if err := m.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll() error = %v", err)
	}
	if _, ok, _ := m.Match(ctx, "bust"); ok {
		t.Error("Match() after DeleteAll should find nothing")
	}
}
