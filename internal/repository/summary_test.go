package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tally/internal/model"
)

func TestSummaryForMonth(t *testing.T) {
	store := newTestStorage(t)
	repo := NewTransactions(store)
	ctx := context.Background()

	_, err := repo.Insert(ctx, &model.Transaction{
		Type: model.TypeIncome, AmountMinor: 500000, Date: march(1), CategoryID: 9,
	})
	require.NoError(t, err)
	_, err = repo.Insert(ctx, expense(1, march(10), 4250))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, expense(2, march(12), 750))
	require.NoError(t, err)

	summary, err := repo.SummaryForMonth(ctx, march(15))
	require.NoError(t, err)
	assert.Equal(t, int64(500000), summary.IncomeMinor)
	assert.Equal(t, int64(5000), summary.ExpenseMinor)
	assert.Equal(t, int64(495000), summary.Balance())
}

func TestSummaryForMonth_Empty(t *testing.T) {
	store := newTestStorage(t)
	repo := NewTransactions(store)

	summary, err := repo.SummaryForMonth(context.Background(), march(1))
	require.NoError(t, err)
	assert.Equal(t, Summary{}, summary)
	assert.Equal(t, int64(0), summary.Balance())
}

func TestWatchSummary(t *testing.T) {
	store := newTestStorage(t)
	repo := NewTransactions(store)
	ctx := context.Background()

	stream := repo.WatchSummary(ctx, march(1))
	defer stream.Close()

	assert.Equal(t, Summary{}, waitSnapshot(t, stream))

	_, err := repo.Insert(ctx, expense(1, march(10), 4250))
	require.NoError(t, err)

	updated := waitSnapshot(t, stream)
	assert.Equal(t, int64(4250), updated.ExpenseMinor)
	assert.Equal(t, int64(-4250), updated.Balance())
}

func TestGroupByDate(t *testing.T) {
	store := newTestStorage(t)
	repo := NewTransactions(store)
	ctx := context.Background()

	// Two on the 20th, one on the 10th.
	first := expense(1, march(20), 100)
	first.CreatedAt = 1000
	second := expense(2, march(20), 200)
	second.CreatedAt = 2000
	third := expense(3, march(10), 300)

	for _, txn := range []*model.Transaction{first, second, third} {
		_, err := repo.Insert(ctx, txn)
		require.NoError(t, err)
	}

	items, err := repo.ForMonth(ctx, march(1))
	require.NoError(t, err)

	groups := GroupByDate(items)
	require.Len(t, groups, 2)

	assert.True(t, groups[0].Date.Equal(march(20)), "groups iterate newest date first")
	require.Len(t, groups[0].Items, 2)
	assert.Equal(t, int64(200), groups[0].Items[0].Transaction.AmountMinor, "same-day entries newest first")
	assert.Equal(t, int64(100), groups[0].Items[1].Transaction.AmountMinor)

	assert.True(t, groups[1].Date.Equal(march(10)))
	require.Len(t, groups[1].Items, 1)
}

func TestGroupByDate_Empty(t *testing.T) {
	assert.Empty(t, GroupByDate(nil))
}
