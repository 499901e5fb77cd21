package repository

import (
	"context"
	"time"

	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/service"
	"github.com/Veraticus/tally/internal/storage"
)

// Transactions mediates transaction access between storage and presentation.
// Month-scoped operations accept any instant within the wanted month.
type Transactions struct {
	store service.Storage
	now   func() time.Time
}

// NewTransactions creates a transaction repository over the given storage.
func NewTransactions(store service.Storage) *Transactions {
	return &Transactions{store: store, now: time.Now}
}

// ForMonth returns the month's transactions joined with their categories,
// ordered by date descending then entry order descending.
func (r *Transactions) ForMonth(ctx context.Context, month time.Time) ([]model.TransactionWithCategory, error) {
	return r.store.GetTransactionsForMonth(ctx, month.Format(model.MonthLayout))
}

// MonthlyTotal returns the sum of amounts for the month and type; 0 when the
// month is empty.
func (r *Transactions) MonthlyTotal(ctx context.Context, month time.Time, txnType model.TransactionType) (int64, error) {
	return r.store.GetMonthlyTotalByType(ctx, month.Format(model.MonthLayout), txnType)
}

// CurrentMonthExpense returns this month's total expenses.
func (r *Transactions) CurrentMonthExpense(ctx context.Context) (int64, error) {
	return r.MonthlyTotal(ctx, r.now(), model.TypeExpense)
}

// CurrentMonthIncome returns this month's total income.
func (r *Transactions) CurrentMonthIncome(ctx context.Context) (int64, error) {
	return r.MonthlyTotal(ctx, r.now(), model.TypeIncome)
}

// ByID returns a transaction by id, or nil if absent.
func (r *Transactions) ByID(ctx context.Context, id int64) (*model.Transaction, error) {
	return r.store.GetTransactionByID(ctx, id)
}

// WithCategoryByID returns a transaction joined with its category, or nil if
// absent.
func (r *Transactions) WithCategoryByID(ctx context.Context, id int64) (*model.TransactionWithCategory, error) {
	return r.store.GetTransactionWithCategoryByID(ctx, id)
}

// Insert persists a transaction and returns its assigned id.
func (r *Transactions) Insert(ctx context.Context, txn *model.Transaction) (int64, error) {
	return r.store.InsertTransaction(ctx, txn)
}

// Update replaces every field of an existing transaction.
func (r *Transactions) Update(ctx context.Context, txn *model.Transaction) error {
	return r.store.UpdateTransaction(ctx, txn)
}

// DeleteByID removes a transaction.
func (r *Transactions) DeleteByID(ctx context.Context, id int64) error {
	return r.store.DeleteTransactionByID(ctx, id)
}

// WatchForMonth streams the month's joined transaction list. Category edits
// change the embedded category data, so the stream watches both tables.
func (r *Transactions) WatchForMonth(ctx context.Context, month time.Time) *Stream[[]model.TransactionWithCategory] {
	return newStream(ctx, r.store, func(ctx context.Context) ([]model.TransactionWithCategory, error) {
		return r.ForMonth(ctx, month)
	}, storage.TableTransactions, storage.TableCategories)
}

// WatchCurrentMonth streams the current month's joined transaction list.
func (r *Transactions) WatchCurrentMonth(ctx context.Context) *Stream[[]model.TransactionWithCategory] {
	return r.WatchForMonth(ctx, r.now())
}

// WatchMonthlyTotal streams the running total for a month and type.
func (r *Transactions) WatchMonthlyTotal(ctx context.Context, month time.Time, txnType model.TransactionType) *Stream[int64] {
	return newStream(ctx, r.store, func(ctx context.Context) (int64, error) {
		return r.MonthlyTotal(ctx, month, txnType)
	}, storage.TableTransactions)
}

// WatchCurrentMonthExpense streams this month's running expense total.
func (r *Transactions) WatchCurrentMonthExpense(ctx context.Context) *Stream[int64] {
	return r.WatchMonthlyTotal(ctx, r.now(), model.TypeExpense)
}

// WatchCurrentMonthIncome streams this month's running income total.
func (r *Transactions) WatchCurrentMonthIncome(ctx context.Context) *Stream[int64] {
	return r.WatchMonthlyTotal(ctx, r.now(), model.TypeIncome)
}
