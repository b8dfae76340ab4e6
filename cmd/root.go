package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/placepulse/place-audit/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "place-audit",
	Short: "Listing quality audit for place listings",
	Long:  "Fetches a merchant's place listing, normalizes it into a canonical record, scores listing quality across six categories, and discovers nearby same-category competitors.",
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
