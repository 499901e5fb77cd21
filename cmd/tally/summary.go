package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/money"
	"github.com/Veraticus/tally/internal/repository"
)

func summaryCmd() *cobra.Command {
	var monthStr string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show a month's income, expense, and balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			month, err := parseMonth(monthStr)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			summary, err := repository.NewTransactions(store).SummaryForMonth(ctx, month)
			if err != nil {
				return fmt.Errorf("failed to compute summary: %w", err)
			}

			printSummary(month.Format(model.MonthLayout), summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&monthStr, "month", "m", "", "month yyyy-MM (default current)")
	return cmd
}

func printSummary(month string, summary repository.Summary) {
	fmt.Println(cli.TitleStyle.Render(month))
	fmt.Printf("  Income   %s\n", cli.IncomeStyle.Render(money.Format(summary.IncomeMinor, false)))
	fmt.Printf("  Expense  %s\n", cli.ExpenseStyle.Render(money.Format(summary.ExpenseMinor, false)))
	fmt.Printf("  Balance  %s\n", money.Format(summary.Balance(), true))
}
