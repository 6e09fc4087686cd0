package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/creditlens/internal/contracts"
)

// cadCmd represents the cad command
var cadCmd = &cobra.Command{
	Use:   "cad",
	Short: "Score a Cash-Against-Documents facility",
	Long: `Scores a CAD facility on financial strength, loan structure, trading history
and document coverage. Ratios come from --dataset/--year or are given explicitly.

Example:
  go run ./cmd/credit cad --amount 700000 --tenor 6 --collateral 1000000 --docs 95 --history 7 --dataset company.json --year 2023
  go run ./cmd/credit cad --amount 700000 --tenor 6 --collateral 1000000 --docs 95 --history 7 --current-ratio 1.6 --dscr 2.1 --margin 8`,
	RunE: runCAD,
}

var (
	cadFacts   contracts.CADLoanFacts
	cadRatios  contracts.CADRatios
	cadDataset string
	cadYear    int
)

func init() {
	rootCmd.AddCommand(cadCmd)

	cadCmd.Flags().Float64Var(&cadFacts.RequestedAmount, "amount", 0, "requested amount")
	cadCmd.Flags().IntVar(&cadFacts.LoanTenorMonths, "tenor", 0, "loan tenor (months)")
	cadCmd.Flags().Float64Var(&cadFacts.CollateralValue, "collateral", 0, "collateral value")
	cadCmd.Flags().Float64Var(&cadFacts.DocumentsCoverage, "docs", 0, "documents coverage (%)")
	cadCmd.Flags().Float64Var(&cadFacts.TradingHistoryYears, "history", 0, "trading history (years)")

	cadCmd.Flags().StringVar(&cadDataset, "dataset", "", "dataset file to derive ratios from")
	cadCmd.Flags().IntVar(&cadYear, "year", 0, "fiscal year of the dataset")
	cadCmd.Flags().Float64Var(&cadRatios.CurrentRatio, "current-ratio", 0, "current ratio")
	cadCmd.Flags().Float64Var(&cadRatios.DebtServiceCoverage, "dscr", 0, "debt service coverage ratio")
	cadCmd.Flags().Float64Var(&cadRatios.ProfitMargin, "margin", 0, "profit margin (%)")

	cadCmd.MarkFlagRequired("amount")
	cadCmd.MarkFlagRequired("tenor")
	cadCmd.MarkFlagsRequiredTogether("dataset", "year")
	cadCmd.MarkFlagsRequiredTogether("current-ratio", "dscr", "margin")
	cadCmd.MarkFlagsMutuallyExclusive("dataset", "current-ratio")
	cadCmd.MarkFlagsOneRequired("dataset", "current-ratio")
}

func runCAD(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := cliLogger(cfg)

	service, err := newService(cfg, log)
	if err != nil {
		return err
	}

	var result *contracts.CADResult
	if cadDataset != "" {
		ds, err := newSource(cfg, log).Dataset(cmd.Context(), cadDataset)
		if err != nil {
			return err
		}
		result, err = service.AssessCAD(cmd.Context(), cadFacts, ds, cadYear)
		if err != nil {
			return err
		}
	} else {
		result, err = service.AssessCADWithRatios(cadFacts, cadRatios)
		if err != nil {
			return err
		}
	}

	if jsonOutput {
		return printJSON(result)
	}

	PrintHeader("CAD Facility Assessment")
	PrintField("Score", fmt.Sprintf("%d/100 (%s)", result.Score, result.Category))
	PrintField("Decision", result.Decision)
	PrintSeparator()
	PrintField("Financial strength", fmt.Sprintf("%.0f / 40", result.Breakdown.FinancialStrength))
	PrintField("Loan structure", fmt.Sprintf("%.0f / 25", result.Breakdown.LoanStructure))
	PrintField("Trading history", fmt.Sprintf("%.0f / 20", result.Breakdown.TradingHistory))
	PrintField("Documents", fmt.Sprintf("%.0f / 15", result.Breakdown.DocumentCoverage))
	PrintSeparator()
	PrintField("Loan to collateral", fmt.Sprintf("%.2f%%", result.LoanToCollateral))
	PrintField("Current ratio", fmt.Sprintf("%.2f", result.Ratios.CurrentRatio))
	PrintField("DSCR", fmt.Sprintf("%.2f", result.Ratios.DebtServiceCoverage))
	PrintField("Profit margin", fmt.Sprintf("%.2f%%", result.Ratios.ProfitMargin))
	for _, w := range result.Warnings {
		PrintWarning(w)
	}
	PrintDoubleSeparator()
	return nil
}
