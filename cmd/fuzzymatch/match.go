package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/remiges-tech/fuzzymatch"
	"github.com/remiges-tech/fuzzymatch/internal/config"
	"github.com/remiges-tech/fuzzymatch/internal/textnorm"
	"github.com/remiges-tech/fuzzymatch/providers"
)

func NewMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match <query>",
		Short: "Print the best candidate for a query",
		Long: `Ranks candidates against the query and prints the winner.
Exits with an error when no candidate matches.`,
		Args: cobra.ExactArgs(1),
		RunE: runMatch,
	}

	cmd.Flags().StringP("file", "f", "", "Read candidates from a YAML, JSON or .txt file")
	cmd.Flags().Bool("explain", false, "Print the score of every ranking stage")
	cmd.Flags().Float64("min-score", 0, "Lowest first-stage score that counts as a match")
	cmd.Flags().Int("workers", 1, "Goroutines used to score candidates")
	return cmd
}

func runMatch(cmd *cobra.Command, args []string) error {
	query := args[0]
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var (
		ex      fuzzymatch.Explanation
		entries []providers.Entry
	)
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		ex, entries, err = explainFile(cmd, cfg, path, query)
	} else {
		ex, entries, err = explainProvider(cmd, cfg, query)
	}
	if err != nil {
		return err
	}

	if !ex.Matched() {
		return fmt.Errorf("no match for %q among %d candidates", query, len(entries))
	}

	winner := entries[ex.Winner]
	result := fuzzymatch.Result{
		ID:    winner.ID,
		Text:  winner.Text,
		Value: winner.Value,
		Score: ex.Stages[0].Best,
	}

	explain, _ := cmd.Flags().GetBool("explain")
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return outputMatchJSON(cmd, result, ex, explain)
	}

	out := cmd.OutOrStdout()
	if explain {
		for i, stage := range ex.Stages {
			fmt.Fprintf(out, "stage %d  %-14s best=%.4f  survivors=%d\n", i+1, stage.Scorer, stage.Best, len(stage.Survivors))
		}
	}
	fmt.Fprintf(out, "%s\t%s\t%s\t%.4f\n", result.ID, result.Text, result.Value, result.Score)
	return nil
}

// explainFile ranks the candidates of a file without touching a provider.
func explainFile(cmd *cobra.Command, cfg *config.Config, path, query string) (fuzzymatch.Explanation, []providers.Entry, error) {
	list, err := loadCandidates(path)
	if err != nil {
		return fuzzymatch.Explanation{}, nil, err
	}

	opts := []fuzzymatch.ChainOption{fuzzymatch.WithWorkers(cfg.Workers)}
	if cfg.MinScore > 0 {
		opts = append(opts, fuzzymatch.WithMinScore(cfg.MinScore))
	}
	chain, err := fuzzymatch.NewChain(fuzzymatch.DefaultScorers(), opts...)
	if err != nil {
		return fuzzymatch.Explanation{}, nil, err
	}

	normalize := func(s string) string {
		if cfg.Normalize {
			return textnorm.Normalize(s)
		}
		return s
	}

	entries := make([]providers.Entry, len(list))
	haystack := make([]fuzzymatch.Candidate[int], len(list))
	for i, c := range list {
		entries[i] = providers.Entry{ID: c.ID, Text: c.Key, Value: c.Value}
		haystack[i] = fuzzymatch.Candidate[int]{Key: normalize(c.Key), Value: i}
	}

	ex := fuzzymatch.Explain(chain, normalize(query), haystack)
	ex.Query = query
	newLogger(cmd).Debug("match", "file", path, "candidates", len(list), "stages", len(ex.Stages), "matched", ex.Matched())
	return ex, entries, nil
}

func explainProvider(cmd *cobra.Command, cfg *config.Config, query string) (fuzzymatch.Explanation, []providers.Entry, error) {
	m, err := openMatcher(cmd, cfg)
	if err != nil {
		return fuzzymatch.Explanation{}, nil, err
	}
	defer m.Close()

	return m.Explain(cmd.Context(), query)
}

func outputMatchJSON(cmd *cobra.Command, result fuzzymatch.Result, ex fuzzymatch.Explanation, explain bool) error {
	out := map[string]any{"result": result}
	if explain {
		out["explanation"] = ex
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
