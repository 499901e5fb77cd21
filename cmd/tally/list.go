package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/repository"
)

func listCmd() *cobra.Command {
	var monthStr string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a month's transactions",
		Long:  `Display a month's transactions grouped by day, newest first, with category and note.`,
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

			items, err := repository.NewTransactions(store).ForMonth(ctx, month)
			if err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}

			fmt.Println(cli.TitleStyle.Render(month.Format(model.MonthLayout)))
			if len(items) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions this month. Use 'tally add' to record one."))
				return nil
			}

			for _, group := range repository.GroupByDate(items) {
				fmt.Println(cli.DateHeaderStyle.Render(group.Date.Format(model.DateLayout)))

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				for _, item := range group.Items {
					note := item.Transaction.Note
					if note == "" {
						note = cli.SubtleStyle.Render("(no note)")
					}
					fmt.Fprintf(w, "  %d\t%s\t%s\t%s\n",
						item.Transaction.ID,
						item.Category.Name,
						renderAmount(item.Transaction.Type, item.Transaction.AmountMinor),
						note)
				}
				if err := w.Flush(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&monthStr, "month", "m", "", "month yyyy-MM (default current)")
	return cmd
}
