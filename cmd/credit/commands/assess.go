package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/creditlens/internal/assessment"
	"github.com/wonny/creditlens/internal/contracts"
)

// assessCmd represents the assess command
var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Assess one fiscal year of a dataset",
	Long: `Runs validation, ratios, scoring and the loan projection for one year.

Loan terms default to the suggestion derived from the score; pass
--amount, --rate and --term together to project explicit terms instead.

Example:
  go run ./cmd/credit assess --dataset company.json --year 2023
  go run ./cmd/credit assess --dataset company.json --year 2023 --bureau aecb.yaml
  go run ./cmd/credit assess --dataset company.json --year 2023 --amount 250000 --rate 9 --term 4`,
	RunE: runAssess,
}

var (
	assessDataset string
	assessYear    int
	assessBureau  string
	loanAmount    float64
	loanRate      float64
	loanTerm      int
)

func init() {
	rootCmd.AddCommand(assessCmd)

	assessCmd.Flags().StringVar(&assessDataset, "dataset", "", "dataset file or http(s) URL (.json, .yaml, .yml)")
	assessCmd.Flags().IntVar(&assessYear, "year", 0, "fiscal year to assess")
	assessCmd.Flags().StringVar(&assessBureau, "bureau", "", "AECB report file or http(s) URL")
	assessCmd.Flags().Float64Var(&loanAmount, "amount", 0, "loan amount")
	assessCmd.Flags().Float64Var(&loanRate, "rate", 0, "annual interest rate (%)")
	assessCmd.Flags().IntVar(&loanTerm, "term", 0, "repayment term (years)")
	assessCmd.MarkFlagRequired("dataset")
	assessCmd.MarkFlagRequired("year")
	assessCmd.MarkFlagsRequiredTogether("amount", "rate", "term")
}

func runAssess(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := cliLogger(cfg)

	service, err := newService(cfg, log)
	if err != nil {
		return err
	}

	source := newSource(cfg, log)
	ds, err := source.Dataset(cmd.Context(), assessDataset)
	if err != nil {
		return err
	}

	req := assessment.Request{Dataset: ds, Year: assessYear}
	if assessBureau != "" {
		if req.Bureau, err = source.Bureau(cmd.Context(), assessBureau); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("amount") {
		req.Loan = &contracts.LoanParameters{
			LoanAmount:         loanAmount,
			InterestRate:       loanRate,
			RepaymentTermYears: loanTerm,
		}
	}

	result, err := service.Assess(cmd.Context(), req)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(result)
	}
	printAssessment(result)
	return nil
}

func printAssessment(a *assessment.Assessment) {
	PrintHeader(fmt.Sprintf("Credit Assessment %d", a.Year))
	PrintField("Run ID", a.RunID)
	PrintField("Config", a.ConfigHash[:12])

	PrintSeparator()
	PrintField("Ratio score", fmt.Sprintf("%d/100 (%s)", a.Score.Score, a.Score.Category))
	for _, b := range a.Score.Breakdown {
		fmt.Printf("    %-16s %5.1f / %.0f\n", b.Name, b.Points, b.Max)
	}
	if a.Blended.BureauApplied {
		PrintField("Bureau score", fmt.Sprintf("%d/100", a.Blended.Bureau.Score))
		PrintField("Blended score", fmt.Sprintf("%d/100 (%s) [%.0f%% ratios / %.0f%% bureau]",
			a.Blended.Score, a.Blended.Category, a.Blended.RatioWeight*100, a.Blended.BureauWeight*100))
	}
	PrintField("Recommendation", a.Blended.Recommendation)

	if a.Score.Provisional {
		PrintWarning("Provisional: data quality checks failed for this year")
	}
	for _, issue := range a.Ratios.DataQuality.Issues {
		PrintWarning(fmt.Sprintf("[%s] %s", issue.Severity, issue.Description))
	}

	PrintSeparator()
	fmt.Println("  Ratios")
	for _, name := range contracts.AllRatios {
		r := a.Ratios.Get(name)
		mark := ""
		if !r.IsReliable {
			mark = "  (unreliable: " + r.Warning + ")"
		}
		fmt.Printf("    %-20s %10.2f%s\n", name, r.Value, mark)
	}

	PrintSeparator()
	PrintField("Suggested loan", fmt.Sprintf("%s @ %.1f%% over %d years",
		money(a.Suggestion.Amount), a.Suggestion.Rate, a.Suggestion.TermYears))
	PrintField("Projected loan", fmt.Sprintf("%s @ %.1f%% over %d years",
		money(a.Loan.Parameters.LoanAmount), a.Loan.Parameters.InterestRate, a.Loan.Parameters.RepaymentTermYears))
	PrintField("EMI", money(a.Loan.EMI))
	PrintField("Total interest", money(a.Loan.TotalInterest))
	PrintField("Average health", fmt.Sprintf("%.1f (%s risk)", a.Loan.AverageHealth, a.Loan.OverallRisk))
	PrintField("Min stress score", a.Loan.MinStressScore)
	PrintDoubleSeparator()
}
