package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/remiges-tech/fuzzymatch"
	"github.com/remiges-tech/fuzzymatch/internal/config"
)

func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fuzzymatch",
		Short: "Find the closest candidate for a query",
		Long: `Ranks candidates against a query with a chain of string similarity
scorers (Sorensen-Dice over bigrams, then Levenshtein) and prints the winner.

Candidates come from a file (--file) or from the configured provider.
The memory provider keeps nothing between runs, so index and match against
it only make sense with --file.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	addPersistentFlags(rootCmd)
	rootCmd.AddCommand(
		NewMatchCmd(),
		NewScoreCmd(),
		NewIndexCmd(),
		NewClearCmd(),
	)
	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	cmd.PersistentFlags().String("provider", "", "Candidate store (memory|redis|elasticsearch)")
	cmd.PersistentFlags().String("namespace", "", "Candidate namespace")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
}

// loadConfig loads configuration and applies flags that were set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	var overrides []config.Override
	if cmd.Flags().Changed("provider") {
		provider, _ := cmd.Flags().GetString("provider")
		overrides = append(overrides, func(c *config.Config) { c.Provider = provider })
	}
	if cmd.Flags().Changed("namespace") {
		namespace, _ := cmd.Flags().GetString("namespace")
		overrides = append(overrides, func(c *config.Config) { c.Namespace = namespace })
	}
	if f := cmd.Flags().Lookup("min-score"); f != nil && f.Changed {
		minScore, _ := cmd.Flags().GetFloat64("min-score")
		overrides = append(overrides, func(c *config.Config) { c.MinScore = minScore })
	}
	if f := cmd.Flags().Lookup("workers"); f != nil && f.Changed {
		workers, _ := cmd.Flags().GetInt("workers")
		overrides = append(overrides, func(c *config.Config) { c.Workers = workers })
	}

	cfg, errs := config.Load(path, overrides...)
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// openMatcher connects to the configured provider.
func openMatcher(cmd *cobra.Command, cfg *config.Config) (fuzzymatch.Matcher, error) {
	logger := newLogger(cmd)
	logger.Debug("configuration loaded", "config", cfg.LogSummary())

	mc := cfg.MatcherConfig()
	mc.Options.Logger = logger

	m, err := fuzzymatch.New(cfg.Provider, mc)
	if err != nil {
		return nil, fmt.Errorf("open %s provider: %w", cfg.Provider, err)
	}
	return m, nil
}
