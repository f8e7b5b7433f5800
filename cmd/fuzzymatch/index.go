package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func NewIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Load candidates from a file into the configured provider",
		Args:  cobra.NoArgs,
		RunE:  runIndex,
	}

	cmd.Flags().StringP("file", "f", "", "YAML, JSON or .txt candidates file")
	return cmd
}

func runIndex(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		return errors.New("--file is required")
	}

	list, err := loadCandidates(path)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	m, err := openMatcher(cmd, cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	for _, c := range list {
		if err := m.Index(cmd.Context(), c.ID, c.Key, c.Value); err != nil {
			return fmt.Errorf("index %s: %w", c.ID, err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "indexed %d candidates into %s/%s\n", len(list), cfg.Provider, cfg.Namespace)
	return nil
}
