package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "verify",
	Short: "AI text verification pipeline",
	Long:  "Decomposes text into factual claims, verifies each against encyclopedia and web evidence, and aggregates a trust score.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
