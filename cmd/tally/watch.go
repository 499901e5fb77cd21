package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/repository"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow the current month live",
		Long: `Subscribe to the current month's transactions and running summary,
re-rendering whenever anything changes. Press Ctrl-C to stop.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			txns := repository.NewTransactions(store)
			month := time.Now()

			listStream := txns.WatchForMonth(ctx, month)
			defer listStream.Close()
			summaryStream := txns.WatchSummary(ctx, month)
			defer summaryStream.Close()

			fmt.Println(cli.InfoStyle.Render("Watching " + month.Format(model.MonthLayout) + "; Ctrl-C to stop."))

			var (
				items   []model.TransactionWithCategory
				summary repository.Summary
			)
			for {
				select {
				case <-ctx.Done():
					return nil
				case v, ok := <-listStream.Updates():
					if !ok {
						return nil
					}
					items = v
				case v, ok := <-summaryStream.Updates():
					if !ok {
						return nil
					}
					summary = v
				}

				printSummary(month.Format(model.MonthLayout), summary)
				for _, group := range repository.GroupByDate(items) {
					fmt.Println(cli.DateHeaderStyle.Render(group.Date.Format(model.DateLayout)))
					for _, item := range group.Items {
						fmt.Printf("  %d  %s  %s\n",
							item.Transaction.ID,
							item.Category.Name,
							renderAmount(item.Transaction.Type, item.Transaction.AmountMinor))
					}
				}
				fmt.Println()
			}
		},
	}
}
