package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Veraticus/tally/internal/model"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 1

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS categories (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL,
					type TEXT NOT NULL CHECK (type IN ('INCOME', 'EXPENSE')),
					icon_key TEXT NOT NULL,
					is_default INTEGER NOT NULL DEFAULT 0
				)`,

				`CREATE TABLE IF NOT EXISTS transactions (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					type TEXT NOT NULL CHECK (type IN ('INCOME', 'EXPENSE')),
					amount_minor INTEGER NOT NULL,
					date TEXT NOT NULL,
					category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
					note TEXT,
					created_at INTEGER NOT NULL
				)`,
				`CREATE INDEX idx_transactions_category_id ON transactions(category_id)`,
				`CREATE INDEX idx_transactions_date ON transactions(date)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// defaultCategories is the fixed seed set inserted exactly once, when a fresh
// database is initialized. Other components and tests rely on these by
// name, type, and icon key.
var defaultCategories = []model.Category{
	{Name: "餐饮", Type: model.TypeExpense, IconKey: "Restaurant", IsDefault: true},
	{Name: "购物", Type: model.TypeExpense, IconKey: "ShoppingCart", IsDefault: true},
	{Name: "交通", Type: model.TypeExpense, IconKey: "Commute", IsDefault: true},
	{Name: "住房", Type: model.TypeExpense, IconKey: "Home", IsDefault: true},
	{Name: "娱乐", Type: model.TypeExpense, IconKey: "SportsEsports", IsDefault: true},
	{Name: "医疗", Type: model.TypeExpense, IconKey: "MedicalServices", IsDefault: true},
	{Name: "通讯", Type: model.TypeExpense, IconKey: "PhoneAndroid", IsDefault: true},
	{Name: "人情", Type: model.TypeExpense, IconKey: "CardGiftcard", IsDefault: true},
	{Name: "工资", Type: model.TypeIncome, IconKey: "Work", IsDefault: true},
	{Name: "奖金", Type: model.TypeIncome, IconKey: "AttachMoney", IsDefault: true},
	{Name: "理财", Type: model.TypeIncome, IconKey: "TrendingUp", IsDefault: true},
	{Name: "兼职", Type: model.TypeIncome, IconKey: "Payments", IsDefault: true},
}

// Migrate applies all pending migrations, then seeds the default categories
// if this was a fresh database.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	// Get current version
	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	// Apply migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		// Update version
		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	// Verify we're at the expected schema version
	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	// Seed only on first-ever initialization: the database started at
	// version 0 and the categories table came out of migration empty.
	if currentVersion == 0 {
		if err := s.seedDefaultCategories(ctx); err != nil {
			return err
		}
	}

	return nil
}

func (s *SQLiteStorage) seedDefaultCategories(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, cat := range defaultCategories {
		_, insErr := tx.ExecContext(ctx,
			`INSERT INTO categories (name, type, icon_key, is_default) VALUES (?, ?, ?, ?)`,
			cat.Name, string(cat.Type), cat.IconKey, cat.IsDefault)
		if insErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to seed category %q: %w", cat.Name, insErr)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit default categories: %w", err)
	}

	slog.Info("Seeded default categories", "count", len(defaultCategories))
	s.notifier.notify(TableCategories)
	return nil
}
