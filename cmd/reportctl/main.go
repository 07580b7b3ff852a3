// Package main is the entry point for reportctl, which computes financial
// reports straight from the ledger database.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	decimal.MarshalJSONWithoutQuotes = true

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "reportctl",
		Short:         "Generate auction ledger financial reports",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.AddCommand(newGenerateCmd(), newSnapshotCmd())
	return rootCmd
}
