package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/money"
	"github.com/Veraticus/tally/internal/repository"
)

func addCmd() *cobra.Command {
	var (
		amountStr  string
		dateStr    string
		note       string
		typeStr    string
		categoryID int64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Long:  `Record an expense or income with an amount, category, date, and optional note.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			txn, err := buildTransaction(ctx, amountStr, typeStr, dateStr, note, categoryID)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := validateCategorySelection(ctx, repository.NewCategories(store), txn); err != nil {
				return err
			}

			id, err := repository.NewTransactions(store).Insert(ctx, txn)
			if err != nil {
				return fmt.Errorf("failed to record transaction: %w", err)
			}

			fmt.Printf("Recorded %s %s (id %d)\n",
				cli.InfoStyle.Render(string(txn.Type)),
				renderAmount(txn.Type, txn.AmountMinor),
				id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&amountStr, "amount", "a", "", "amount, e.g. 42.50 (required)")
	cmd.Flags().Int64VarP(&categoryID, "category", "c", 0, "category id (required)")
	cmd.Flags().StringVarP(&dateStr, "date", "d", "", "date yyyy-MM-dd (default today)")
	cmd.Flags().StringVarP(&note, "note", "n", "", "optional note")
	cmd.Flags().StringVarP(&typeStr, "type", "t", "expense", "transaction type (income, expense)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

// buildTransaction validates user input into a transaction. This is the edit
// boundary: amounts must parse and be positive, the type must be known. The
// category reference is checked separately against storage.
func buildTransaction(_ context.Context, amountStr, typeStr, dateStr, note string, categoryID int64) (*model.Transaction, error) {
	txnType, err := model.ParseTransactionType(typeStr)
	if err != nil {
		return nil, err
	}

	amount, err := money.ParseToMinor(amountStr)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amountStr, err)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", money.ErrInvalidAmount)
	}

	date, err := parseDate(dateStr)
	if err != nil {
		return nil, err
	}

	if categoryID <= 0 {
		return nil, fmt.Errorf("a category must be selected")
	}

	return &model.Transaction{
		Type:        txnType,
		AmountMinor: amount,
		Date:        date,
		CategoryID:  categoryID,
		Note:        note,
	}, nil
}

// validateCategorySelection confirms the referenced category exists and
// matches the transaction's type before anything reaches storage.
func validateCategorySelection(ctx context.Context, cats *repository.Categories, txn *model.Transaction) error {
	cat, err := cats.ByID(ctx, txn.CategoryID)
	if err != nil {
		return fmt.Errorf("failed to look up category: %w", err)
	}
	if cat == nil {
		return fmt.Errorf("category %d does not exist", txn.CategoryID)
	}
	if cat.Type != txn.Type {
		return fmt.Errorf("category %q is a %s category, not %s", cat.Name, cat.Type, txn.Type)
	}
	return nil
}
