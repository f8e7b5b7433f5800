package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/remiges-tech/fuzzymatch"
)

func NewScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <a> <b>",
		Short: "Print the similarity of two strings under each scorer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			scorers := fuzzymatch.DefaultScorers()
			scores := make([]map[string]any, 0, len(scorers))
			for _, s := range scorers {
				scores = append(scores, map[string]any{
					"scorer": fuzzymatch.ScorerName(s),
					"score":  s.Similarity(args[0], args[1]),
				})
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(scores)
			}

			for _, s := range scores {
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %.4f\n", s["scorer"], s["score"])
			}
			return nil
		},
	}
}
