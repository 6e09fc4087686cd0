package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	scoringConfig string
	jsonOutput    bool
	verbose       bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "credit",
	Short: "CreditLens - financial statement credit assessment",
	Long: `CreditLens CLI

Validates multi-year financial statements, computes robust financial ratios,
scores loan eligibility (optionally blended with an AECB bureau report),
structures loans with a repayment-health projection and scores CAD facilities.

Usage:
  go run ./cmd/credit [command]

Examples:
  go run ./cmd/credit api
  go run ./cmd/credit assess --dataset company.json --year 2023
  go run ./cmd/credit validate --dataset company.yaml --year 2022
  go run ./cmd/credit emi --amount 120000 --rate 10 --term 3 --schedule
  go run ./cmd/credit cad --amount 700000 --tenor 6 --collateral 1000000 --docs 95 --history 7 --dataset company.json --year 2023`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&scoringConfig, "scoring-config", "", "scoring tables YAML (default: built-in tables or $SCORING_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
