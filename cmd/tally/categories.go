package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/repository"
	"github.com/Veraticus/tally/internal/storage"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
		Long:  `List, add, and delete the categories transactions are tagged with.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var typeStr string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Long:  `Display all categories, seeded defaults first, optionally filtered by type.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			repo := repository.NewCategories(store)

			var categories []model.Category
			if typeStr == "" {
				categories, err = repo.All(ctx)
			} else {
				var catType model.TransactionType
				catType, err = model.ParseTransactionType(typeStr)
				if err != nil {
					return err
				}
				categories, err = repo.ByType(ctx, catType)
			}
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "ID\tName\tType\tIcon\tDefault\n")
			for _, cat := range categories {
				def := ""
				if cat.IsDefault {
					def = "✓"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", cat.ID, cat.Name, cat.Type, cat.IconKey, def)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeStr, "type", "t", "", "filter by type (income, expense)")
	return cmd
}

func addCategoryCmd() *cobra.Command {
	var (
		typeStr string
		iconKey string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			catType, err := model.ParseTransactionType(typeStr)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			id, err := repository.NewCategories(store).Insert(ctx, &model.Category{
				Name:    args[0],
				Type:    catType,
				IconKey: iconKey,
			})
			if err != nil {
				return fmt.Errorf("failed to add category: %w", err)
			}

			fmt.Printf("Added %s category %q (id %d)\n", cli.InfoStyle.Render(string(catType)), args[0], id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeStr, "type", "t", "expense", "category type (income, expense)")
	cmd.Flags().StringVarP(&iconKey, "icon", "i", "Category", "icon key")
	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Long:  `Delete a category. Fails while any transaction still references it.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid category id %q", args[0])
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := repository.NewCategories(store).Delete(ctx, id); err != nil {
				if errors.Is(err, storage.ErrIntegrityViolation) {
					return fmt.Errorf("category %d still has transactions; delete them first", id)
				}
				return fmt.Errorf("failed to delete category: %w", err)
			}

			fmt.Printf("Deleted category %d\n", id)
			return nil
		},
	}
}
