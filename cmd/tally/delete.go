package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/repository"
)

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
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

			if err := txns.DeleteByID(ctx, id); err != nil {
				return fmt.Errorf("failed to delete transaction: %w", err)
			}

			fmt.Printf("Deleted transaction %d (%s)\n", id, renderAmount(existing.Type, existing.AmountMinor))
			return nil
		},
	}
}
