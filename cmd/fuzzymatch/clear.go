package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every candidate in the configured namespace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			m, err := openMatcher(cmd, cfg)
			if err != nil {
				return err
			}
			defer m.Close()

			if err := m.DeleteAll(cmd.Context()); err != nil {
				return fmt.Errorf("clear %s: %w", cfg.Namespace, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s/%s\n", cfg.Provider, cfg.Namespace)
			return nil
		},
	}
}
