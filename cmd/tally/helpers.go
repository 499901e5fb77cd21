package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/config"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/money"
	"github.com/Veraticus/tally/internal/service"
	"github.com/Veraticus/tally/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/tally/tally.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// parseMonth resolves a --month flag value; empty means the current month.
func parseMonth(flag string) (time.Time, error) {
	if flag == "" {
		return time.Now(), nil
	}
	month, err := time.Parse(model.MonthLayout, flag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (want yyyy-MM): %w", flag, err)
	}
	return month, nil
}

// parseDate resolves a --date flag value; empty means today.
func parseDate(flag string) (time.Time, error) {
	if flag == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse(model.DateLayout, flag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want yyyy-MM-dd): %w", flag, err)
	}
	return date, nil
}

// renderAmount styles an amount for its transaction type: income teal with a
// plus, expense red with a minus.
func renderAmount(txnType model.TransactionType, amountMinor int64) string {
	if txnType == model.TypeIncome {
		return cli.IncomeStyle.Render(money.Format(amountMinor, true))
	}
	return cli.ExpenseStyle.Render("-" + money.Format(amountMinor, false))
}
