package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/creditlens/internal/contracts"
	"github.com/wonny/creditlens/internal/loan"
)

// emiCmd represents the emi command
var emiCmd = &cobra.Command{
	Use:   "emi",
	Short: "Compute the monthly installment of a loan",
	Long: `Computes the equated monthly installment and, optionally, the amortization schedule.

Example:
  go run ./cmd/credit emi --amount 120000 --rate 10 --term 3
  go run ./cmd/credit emi --amount 120000 --rate 0 --term 3 --schedule`,
	RunE: runEMI,
}

var (
	emiAmount   float64
	emiRate     float64
	emiTerm     int
	emiSchedule bool
)

func init() {
	rootCmd.AddCommand(emiCmd)

	emiCmd.Flags().Float64Var(&emiAmount, "amount", 0, "loan amount")
	emiCmd.Flags().Float64Var(&emiRate, "rate", 0, "annual interest rate (%)")
	emiCmd.Flags().IntVar(&emiTerm, "term", 0, "repayment term (years)")
	emiCmd.Flags().BoolVar(&emiSchedule, "schedule", false, "print the amortization schedule")
	emiCmd.MarkFlagRequired("amount")
	emiCmd.MarkFlagRequired("term")
}

func runEMI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	params := contracts.LoanParameters{
		LoanAmount:         emiAmount,
		InterestRate:       emiRate,
		RepaymentTermYears: emiTerm,
	}

	// health columns need ratios; the bare schedule only uses the amortization
	structure, err := loan.NewStructurer(cliLogger(cfg)).ProjectInputs(params, loan.HealthInputs{})
	if err != nil {
		return err
	}

	if jsonOutput {
		if !emiSchedule {
			structure.Schedule = nil
		}
		return printJSON(structure)
	}

	PrintHeader("Loan Installment")
	PrintField("Amount", money(params.LoanAmount))
	PrintField("Rate", fmt.Sprintf("%.2f%%", params.InterestRate))
	PrintField("Term", fmt.Sprintf("%d years (%d months)", params.RepaymentTermYears, params.Months()))
	PrintSeparator()
	PrintField("EMI", money(structure.EMI))
	PrintField("Total payment", money(structure.TotalPayment))
	PrintField("Total interest", money(structure.TotalInterest))

	if emiSchedule {
		PrintSeparator()
		fmt.Printf("  %5s %14s %14s %16s\n", "Month", "Interest", "Principal", "Remaining")
		for _, row := range structure.Schedule {
			fmt.Printf("  %5d %14s %14s %16s\n", row.Month, money(row.Interest), money(row.Principal), money(row.RemainingPrincipal))
		}
	}
	PrintDoubleSeparator()
	return nil
}
