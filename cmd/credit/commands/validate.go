package commands

import (
	"fmt"

	"github.com/spf13/cobra"

)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Report data-quality issues for one fiscal year",
	Long: `Checks the balance sheet identity, negative and missing key figures,
extreme leverage and current assets exceeding total assets.

Example:
  go run ./cmd/credit validate --dataset company.json --year 2022`,
	RunE: runValidate,
}

var (
	validateDataset string
	validateYear    int
)

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateDataset, "dataset", "", "dataset file (.json, .yaml, .yml)")
	validateCmd.Flags().IntVar(&validateYear, "year", 0, "fiscal year to validate")
	validateCmd.MarkFlagRequired("dataset")
	validateCmd.MarkFlagRequired("year")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := cliLogger(cfg)

	service, err := newService(cfg, log)
	if err != nil {
		return err
	}

	ds, err := newSource(cfg, log).Dataset(cmd.Context(), validateDataset)
	if err != nil {
		return err
	}

	result, err := service.Validate(cmd.Context(), ds, validateYear)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(result)
	}

	PrintHeader(fmt.Sprintf("Data Quality %d", validateYear))
	PrintField("Valid", result.IsValid)
	PrintField("Issues", len(result.Issues))
	for _, issue := range result.Issues {
		PrintSeparator()
		PrintField("Type", issue.Type)
		PrintField("Field", issue.Field)
		PrintField("Severity", issue.Severity)
		PrintField("Description", issue.Description)
		if issue.SuggestedFix != "" {
			PrintField("Suggested fix", issue.SuggestedFix)
		}
	}
	for field, value := range result.Corrections {
		PrintField("Correction", fmt.Sprintf("%s = %s", field, money(value)))
	}
	PrintDoubleSeparator()

	if result.IsValid {
		PrintSuccess("No blocking data-quality issues")
	}
	return nil
}
