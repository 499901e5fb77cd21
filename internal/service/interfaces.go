// Package service defines the contracts between the storage engine and its
// consumers.
package service

import (
	"context"

	"github.com/Veraticus/tally/internal/model"
)

// CategoryStore handles category persistence.
type CategoryStore interface {
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategoriesByType(ctx context.Context, catType model.TransactionType) ([]model.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*model.Category, error)
	InsertCategory(ctx context.Context, cat *model.Category) (int64, error)
	DeleteCategoryByID(ctx context.Context, id int64) error
}

// TransactionStore handles transaction persistence and monthly aggregation.
// Months are addressed by their ISO yyyy-MM prefix.
type TransactionStore interface {
	GetTransactionsForMonth(ctx context.Context, monthPrefix string) ([]model.TransactionWithCategory, error)
	GetMonthlyTotalByType(ctx context.Context, monthPrefix string, txnType model.TransactionType) (int64, error)
	GetTransactionByID(ctx context.Context, id int64) (*model.Transaction, error)
	GetTransactionWithCategoryByID(ctx context.Context, id int64) (*model.TransactionWithCategory, error)
	InsertTransaction(ctx context.Context, txn *model.Transaction) (int64, error)
	UpdateTransaction(ctx context.Context, txn *model.Transaction) error
	DeleteTransactionByID(ctx context.Context, id int64) error
}

// Storage combines all storage operations with change notification.
type Storage interface {
	CategoryStore
	TransactionStore

	// Watch returns a channel that signals after any write to the named
	// tables (all tables when none are given), plus a cancel func. Signals
	// coalesce; writers never block on watchers.
	Watch(tables ...string) (<-chan struct{}, func())

	Migrate(ctx context.Context) error
	Close() error
}
