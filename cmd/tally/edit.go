package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/money"
	"github.com/Veraticus/tally/internal/repository"
)

func editCmd() *cobra.Command {
	var (
		amountStr  string
		dateStr    string
		note       string
		typeStr    string
		categoryID int64
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a transaction",
		Long:  `Update fields of an existing transaction. Unset flags keep their current values.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid transaction id %q", args[0])
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			txns := repository.NewTransactions(store)
			existing, err := txns.ByID(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to look up transaction: %w", err)
			}
			if existing == nil {
				return fmt.Errorf("transaction %d does not exist", id)
			}

			// Start from current values, overlay whatever was flagged.
			updated := *existing
			if cmd.Flags().Changed("amount") {
				amount, parseErr := money.ParseToMinor(amountStr)
				if parseErr != nil {
					return fmt.Errorf("invalid amount %q: %w", amountStr, parseErr)
				}
				if amount <= 0 {
					return fmt.Errorf("%w: amount must be positive", money.ErrInvalidAmount)
				}
				updated.AmountMinor = amount
			}
			if cmd.Flags().Changed("type") {
				txnType, parseErr := model.ParseTransactionType(typeStr)
				if parseErr != nil {
					return parseErr
				}
				updated.Type = txnType
			}
			if cmd.Flags().Changed("date") {
				date, parseErr := parseDate(dateStr)
				if parseErr != nil {
					return parseErr
				}
				updated.Date = date
			}
			if cmd.Flags().Changed("note") {
				updated.Note = note
			}
			if cmd.Flags().Changed("category") {
				updated.CategoryID = categoryID
			}

			if err := validateCategorySelection(ctx, repository.NewCategories(store), &updated); err != nil {
				return err
			}

			if err := txns.Update(ctx, &updated); err != nil {
				return fmt.Errorf("failed to update transaction: %w", err)
			}

			fmt.Printf("Updated transaction %d: %s\n", id, renderAmount(updated.Type, updated.AmountMinor))
			return nil
		},
	}

	cmd.Flags().StringVarP(&amountStr, "amount", "a", "", "new amount, e.g. 42.50")
	cmd.Flags().Int64VarP(&categoryID, "category", "c", 0, "new category id")
	cmd.Flags().StringVarP(&dateStr, "date", "d", "", "new date yyyy-MM-dd")
	cmd.Flags().StringVarP(&note, "note", "n", "", "new note")
	cmd.Flags().StringVarP(&typeStr, "type", "t", "", "new type (income, expense)")

	return cmd
}
