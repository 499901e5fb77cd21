package repository

import (
	"context"
	"time"

	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/storage"
)

// Summary holds a month's aggregate income and expense in minor units.
type Summary struct {
	IncomeMinor  int64
	ExpenseMinor int64
}

// Balance is income minus expense.
func (s Summary) Balance() int64 {
	return s.IncomeMinor - s.ExpenseMinor
}

// SummaryForMonth computes the month's income, expense, and balance.
func (r *Transactions) SummaryForMonth(ctx context.Context, month time.Time) (Summary, error) {
	income, err := r.MonthlyTotal(ctx, month, model.TypeIncome)
	if err != nil {
		return Summary{}, err
	}
	expense, err := r.MonthlyTotal(ctx, month, model.TypeExpense)
	if err != nil {
		return Summary{}, err
	}
	return Summary{IncomeMinor: income, ExpenseMinor: expense}, nil
}

// WatchSummary streams the month's running summary.
func (r *Transactions) WatchSummary(ctx context.Context, month time.Time) *Stream[Summary] {
	return newStream(ctx, r.store, func(ctx context.Context) (Summary, error) {
		return r.SummaryForMonth(ctx, month)
	}, storage.TableTransactions)
}

// DayGroup is one calendar day's transactions within a month listing.
type DayGroup struct {
	Date  time.Time
	Items []model.TransactionWithCategory
}

// GroupByDate splits a month's transaction list into per-day groups. The
// input is already sorted newest-first, so groups come out in descending
// date order with entry order preserved inside each day.
func GroupByDate(items []model.TransactionWithCategory) []DayGroup {
	var groups []DayGroup
	for _, item := range items {
		date := item.Transaction.Date
		if n := len(groups); n > 0 && groups[n-1].Date.Equal(date) {
			groups[n-1].Items = append(groups[n-1].Items, item)
			continue
		}
		groups = append(groups, DayGroup{Date: date, Items: []model.TransactionWithCategory{item}})
	}
	return groups
}
