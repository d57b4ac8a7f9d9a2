package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a YAML fixture into the configured database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		report, err := a.seedFile(ctx, seedFile)
		if err != nil {
			return err
		}
		a.logger.Info("Seed complete", zap.Int("documents", report.Total()))
		for collection, n := range report {
			fmt.Fprintf(cmd.OutOrStdout(), "%-22s %d\n", collection, n)
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "config/seed.yaml", "fixture file")
}
