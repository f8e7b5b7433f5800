// Package config loads fuzzymatch CLI configuration.
// It uses koanf to merge an optional YAML file with FUZZYMATCH_* environment
// variables, which take precedence.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/remiges-tech/fuzzymatch"
	"github.com/remiges-tech/fuzzymatch/providers/elasticsearch"
	"github.com/remiges-tech/fuzzymatch/providers/memory"
	"github.com/remiges-tech/fuzzymatch/providers/redis"
)

// Provider names accepted in configuration.
const (
	ProviderMemory        = "memory"
	ProviderRedis         = "redis"
	ProviderElasticsearch = "elasticsearch"
)

// Default values.
const (
	DefaultProvider      = ProviderMemory
	DefaultNamespace     = "fuzzymatch"
	DefaultMaxCandidates = 10000
	DefaultWorkers       = 1
	DefaultRedisAddr     = "localhost:6379"
	DefaultESIndex       = "fuzzymatch"
)

// Configuration validation errors.
var (
	ErrUnknownProvider       = errors.New("provider must be one of memory, redis, elasticsearch")
	ErrInvalidInteger        = errors.New("must be a valid integer")
	ErrInvalidFloat          = errors.New("must be a valid number")
	ErrInvalidBool           = errors.New("must be a valid boolean")
	ErrNegativeQueryLength   = errors.New("min_query_length must not be negative")
	ErrNegativeWorkers       = errors.New("workers must not be negative")
	ErrNonFiniteMinScore     = errors.New("min_score must be a finite number")
	ErrMissingRedisAddr      = errors.New("redis.addr is required for the redis provider")
	ErrMissingESAddress      = errors.New("elasticsearch.urls or elasticsearch.cloud_id is required for the elasticsearch provider")
	ErrConflictingESAuthMode = errors.New("elasticsearch.api_key and elasticsearch.username are mutually exclusive")
)

// Config holds CLI configuration.
type Config struct {
	Provider       string  `koanf:"provider"`
	Namespace      string  `koanf:"namespace"`
	MinQueryLength int     `koanf:"min_query_length"`
	MaxCandidates  int     `koanf:"max_candidates"`
	MinScore       float64 `koanf:"min_score"`
	Workers        int     `koanf:"workers"`
	Normalize      bool    `koanf:"normalize"`

	Redis         RedisConfig         `koanf:"redis"`
	Elasticsearch ElasticsearchConfig `koanf:"elasticsearch"`
}

// RedisConfig holds settings for the redis provider.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// ElasticsearchConfig holds settings for the elasticsearch provider.
type ElasticsearchConfig struct {
	URLs     []string `koanf:"urls"`
	Index    string   `koanf:"index"`
	Username string   `koanf:"username"`
	Password string   `koanf:"password"`
	CloudID  string   `koanf:"cloud_id"`
	APIKey   string   `koanf:"api_key"`
}

// Override adjusts a loaded configuration before it is validated.
// The CLI uses overrides to apply command-line flags.
type Override func(*Config)

// Load reads configuration from an optional YAML file and the environment.
// Environment variables take precedence over file values, and overrides are
// applied last.
// Returns the loaded config and a slice of validation errors (empty if valid).
// If a config file path is provided and the file cannot be loaded, only that
// error is returned.
func Load(configFilePath string, overrides ...Override) (*Config, []error) {
	k := koanf.New(".")
	var loadErrs []error

	if configFilePath != "" {
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return nil, []error{fmt.Errorf("failed to load config file %s: %w", configFilePath, err)}
		}
	}

	intVar := func(envKey, koanfKey string, def int) int {
		v, err := envInt(envKey, k, koanfKey, def)
		if err != nil {
			loadErrs = append(loadErrs, err)
		}
		return v
	}

	minScore, err := envFloat("FUZZYMATCH_MIN_SCORE", k, "min_score")
	if err != nil {
		loadErrs = append(loadErrs, err)
	}
	normalize, err := envBool("FUZZYMATCH_NORMALIZE", k, "normalize", true)
	if err != nil {
		loadErrs = append(loadErrs, err)
	}

	cfg := &Config{
		Provider:       strings.ToLower(envOrKoanf("FUZZYMATCH_PROVIDER", k, "provider", DefaultProvider)),
		Namespace:      envOrKoanf("FUZZYMATCH_NAMESPACE", k, "namespace", DefaultNamespace),
		MinQueryLength: intVar("FUZZYMATCH_MIN_QUERY_LENGTH", "min_query_length", 0),
		MaxCandidates:  intVar("FUZZYMATCH_MAX_CANDIDATES", "max_candidates", DefaultMaxCandidates),
		MinScore:       minScore,
		Workers:        intVar("FUZZYMATCH_WORKERS", "workers", DefaultWorkers),
		Normalize:      normalize,
		Redis: RedisConfig{
			Addr:     envOrKoanf("FUZZYMATCH_REDIS_ADDR", k, "redis.addr", DefaultRedisAddr),
			Password: envOrKoanf("FUZZYMATCH_REDIS_PASSWORD", k, "redis.password", ""),
			DB:       intVar("FUZZYMATCH_REDIS_DB", "redis.db", 0),
		},
		Elasticsearch: ElasticsearchConfig{
			URLs:     envList("FUZZYMATCH_ES_URLS", k, "elasticsearch.urls"),
			Index:    envOrKoanf("FUZZYMATCH_ES_INDEX", k, "elasticsearch.index", DefaultESIndex),
			Username: envOrKoanf("FUZZYMATCH_ES_USERNAME", k, "elasticsearch.username", ""),
			Password: envOrKoanf("FUZZYMATCH_ES_PASSWORD", k, "elasticsearch.password", ""),
			CloudID:  envOrKoanf("FUZZYMATCH_ES_CLOUD_ID", k, "elasticsearch.cloud_id", ""),
			APIKey:   envOrKoanf("FUZZYMATCH_ES_API_KEY", k, "elasticsearch.api_key", ""),
		},
	}

	for _, override := range overrides {
		override(cfg)
	}

	return cfg, append(loadErrs, cfg.Validate()...)
}

// Validate checks the configuration for consistency.
// Returns a slice of validation errors (empty if valid).
func (c *Config) Validate() []error {
	var errs []error

	switch c.Provider {
	case ProviderMemory:
	case ProviderRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, ErrMissingRedisAddr)
		}
	case ProviderElasticsearch:
		if len(c.Elasticsearch.URLs) == 0 && c.Elasticsearch.CloudID == "" {
			errs = append(errs, ErrMissingESAddress)
		}
		if c.Elasticsearch.APIKey != "" && c.Elasticsearch.Username != "" {
			errs = append(errs, ErrConflictingESAuthMode)
		}
	default:
		errs = append(errs, fmt.Errorf("%w: got %q", ErrUnknownProvider, c.Provider))
	}

	if c.MinQueryLength < 0 {
		errs = append(errs, ErrNegativeQueryLength)
	}
	if c.Workers < 0 {
		errs = append(errs, ErrNegativeWorkers)
	}
	if math.IsNaN(c.MinScore) || math.IsInf(c.MinScore, 0) {
		errs = append(errs, ErrNonFiniteMinScore)
	}

	return errs
}

// ProviderConfig returns the provider-specific configuration for the
// configured provider.
func (c *Config) ProviderConfig() interface{} {
	switch c.Provider {
	case ProviderRedis:
		return redis.Config{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password, // pragma: allowlist secret
			DB:       c.Redis.DB,
		}
	case ProviderElasticsearch:
		return elasticsearch.Config{
			URLs:     c.Elasticsearch.URLs,
			Index:    c.Elasticsearch.Index,
			Username: c.Elasticsearch.Username,
			Password: c.Elasticsearch.Password, // pragma: allowlist secret
			CloudID:  c.Elasticsearch.CloudID,
			APIKey:   c.Elasticsearch.APIKey,
		}
	default:
		return memory.Config{}
	}
}

// Options returns matcher options built from the configuration.
func (c *Config) Options() fuzzymatch.Options {
	opts := fuzzymatch.DefaultOptions()
	opts.Namespace = c.Namespace
	opts.MinQueryLength = c.MinQueryLength
	opts.MaxCandidates = c.MaxCandidates
	opts.MinScore = c.MinScore
	opts.Workers = c.Workers
	opts.Normalize = c.Normalize
	return opts
}

// MatcherConfig returns the full matcher configuration.
func (c *Config) MatcherConfig() fuzzymatch.Config {
	return fuzzymatch.NewConfigWithOptions(c.ProviderConfig(), c.Options())
}

// LogSummary returns a summary of the configuration suitable for logging.
// Secrets are masked.
func (c *Config) LogSummary() map[string]string {
	summary := map[string]string{
		"provider":       c.Provider,
		"namespace":      c.Namespace,
		"max_candidates": strconv.Itoa(c.MaxCandidates),
		"min_score":      strconv.FormatFloat(c.MinScore, 'g', -1, 64),
		"workers":        strconv.Itoa(c.Workers),
		"normalize":      strconv.FormatBool(c.Normalize),
	}
	switch c.Provider {
	case ProviderRedis:
		summary["redis.addr"] = c.Redis.Addr
		summary["redis.password"] = maskSecret(c.Redis.Password)
	case ProviderElasticsearch:
		summary["elasticsearch.urls"] = strings.Join(c.Elasticsearch.URLs, ",")
		summary["elasticsearch.index"] = c.Elasticsearch.Index
		summary["elasticsearch.password"] = maskSecret(c.Elasticsearch.Password)
		summary["elasticsearch.api_key"] = maskSecret(c.Elasticsearch.APIKey)
	}
	return summary
}

func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	return "****"
}

// envOrKoanf returns the environment variable if set, otherwise the koanf
// value, or the default.
func envOrKoanf(envKey string, k *koanf.Koanf, koanfKey, defaultVal string) string {
	if val := os.Getenv(envKey); val != "" {
		return val
	}
	if val := k.String(koanfKey); val != "" {
		return val
	}
	return defaultVal
}

// envInt returns the environment variable as int if set, otherwise the koanf
// value, or the default when the key is absent from the file.
func envInt(envKey string, k *koanf.Koanf, koanfKey string, defaultVal int) (int, error) {
	if val := os.Getenv(envKey); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return defaultVal, fmt.Errorf("%s %w", envKey, ErrInvalidInteger)
		}
		return i, nil
	}
	if k.Exists(koanfKey) {
		return k.Int(koanfKey), nil
	}
	return defaultVal, nil
}

func envFloat(envKey string, k *koanf.Koanf, koanfKey string) (float64, error) {
	if val := os.Getenv(envKey); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, fmt.Errorf("%s %w", envKey, ErrInvalidFloat)
		}
		return f, nil
	}
	return k.Float64(koanfKey), nil
}

func envBool(envKey string, k *koanf.Koanf, koanfKey string, defaultVal bool) (bool, error) {
	if val := os.Getenv(envKey); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes", "on":
			return true, nil
		case "false", "0", "no", "off":
			return false, nil
		default:
			return defaultVal, fmt.Errorf("%s %w", envKey, ErrInvalidBool)
		}
	}
	if k.Exists(koanfKey) {
		return k.Bool(koanfKey), nil
	}
	return defaultVal, nil
}

// envList splits a comma-separated environment variable, falling back to the
// koanf list.
func envList(envKey string, k *koanf.Koanf, koanfKey string) []string {
	if val := os.Getenv(envKey); val != "" {
		var out []string
		for _, part := range strings.Split(val, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return k.Strings(koanfKey)
}
