package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tally/internal/model"
)

func TestTransactions_ForMonth(t *testing.T) {
	store := newTestStorage(t)
	repo := NewTransactions(store)
	ctx := context.Background()

	_, err := repo.Insert(ctx, expense(1, march(10), 100))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, expense(2, march(20), 200))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, expense(3, march(1).AddDate(0, 1, 0), 300))
	require.NoError(t, err)

	// Any instant within the month addresses it.
	results, err := repo.ForMonth(ctx, march(25))
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int64(200), results[0].Transaction.AmountMinor)
	assert.Equal(t, int64(100), results[1].Transaction.AmountMinor)
}

func TestTransactions_MonthlyTotalAndCurrentMonth(t *testing.T) {
	store := newTestStorage(t)
	repo := NewTransactions(store)
	repo.now = func() time.Time { return march(15) }
	ctx := context.Background()

	_, err := repo.Insert(ctx, expense(1, march(10), 4250))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, &model.Transaction{
		Type: model.TypeIncome, AmountMinor: 500000, Date: march(1), CategoryID: 9,
	})
	require.NoError(t, err)

	total, err := repo.MonthlyTotal(ctx, march(15), model.TypeExpense)
	require.NoError(t, err)
	assert.Equal(t, int64(4250), total)

	curExpense, err := repo.CurrentMonthExpense(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4250), curExpense)

	curIncome, err := repo.CurrentMonthIncome(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(500000), curIncome)
}

func TestTransactions_UpdateAndDelete(t *testing.T) {
	store := newTestStorage(t)
	repo := NewTransactions(store)
	ctx := context.Background()

	id, err := repo.Insert(ctx, expense(1, march(10), 100))
	require.NoError(t, err)

	txn, err := repo.ByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, txn)

	txn.AmountMinor = 999
	require.NoError(t, repo.Update(ctx, txn))

	joined, err := repo.WithCategoryByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, joined)
	assert.Equal(t, int64(999), joined.Transaction.AmountMinor)
	assert.Equal(t, joined.Transaction.CategoryID, joined.Category.ID)

	require.NoError(t, repo.DeleteByID(ctx, id))
	gone, err := repo.ByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestTransactions_WatchMonthlyTotal(t *testing.T) {
	store := newTestStorage(t)
	repo := NewTransactions(store)
	ctx := context.Background()

	stream := repo.WatchMonthlyTotal(ctx, march(1), model.TypeExpense)
	defer stream.Close()

	assert.Equal(t, int64(0), waitSnapshot(t, stream), "empty month totals zero, not absent")

	_, err := repo.Insert(ctx, expense(1, march(10), 4250))
	require.NoError(t, err)
	assert.Equal(t, int64(4250), waitSnapshot(t, stream))

	_, err = repo.Insert(ctx, expense(2, march(12), 1000))
	require.NoError(t, err)
	assert.Equal(t, int64(5250), waitSnapshot(t, stream))
}

func TestTransactions_WatchForMonthSeesCategoryWrites(t *testing.T) {
	store := newTestStorage(t)
	repo := NewTransactions(store)
	cats := NewCategories(store)
	ctx := context.Background()

	catID, err := cats.Insert(ctx, &model.Category{Name: "Dining", Type: model.TypeExpense, IconKey: "Restaurant"})
	require.NoError(t, err)
	_, err = repo.Insert(ctx, expense(catID, march(10), 100))
	require.NoError(t, err)

	stream := repo.WatchForMonth(ctx, march(1))
	defer stream.Close()

	initial := waitSnapshot(t, stream)
	require.Len(t, initial, 1)
	assert.Equal(t, "Dining", initial[0].Category.Name)

	// The joined list watches the categories table too, so a category write
	// re-emits a fresh snapshot.
	_, err = cats.Insert(ctx, &model.Category{Name: "Takeout", Type: model.TypeExpense, IconKey: "Fastfood"})
	require.NoError(t, err)

	updated := waitSnapshot(t, stream)
	require.Len(t, updated, 1)
	assert.Equal(t, updated[0].Transaction.CategoryID, updated[0].Category.ID)
}

func TestStream_CloseStopsDelivery(t *testing.T) {
	store := newTestStorage(t)
	repo := NewTransactions(store)
	ctx := context.Background()

	stream := repo.WatchMonthlyTotal(ctx, march(1), model.TypeExpense)
	waitSnapshot(t, stream)

	stream.Close()
	stream.Close() // idempotent

	// Drain: the channel closes and no further snapshots arrive.
	for {
		select {
		case _, ok := <-stream.Updates():
			if !ok {
				return
			}
		case <-time.After(2 * time.Second):
			t.Fatal("stream did not close after Close")
		}
	}
}

func TestStream_LaggingConsumerGetsNewestSnapshot(t *testing.T) {
	store := newTestStorage(t)
	repo := NewTransactions(store)
	ctx := context.Background()

	stream := repo.WatchMonthlyTotal(ctx, march(1), model.TypeExpense)
	defer stream.Close()

	// Don't consume while several writes land; the consumer then sees a
	// snapshot at least as fresh as the last write it observed nothing for.
	for i := 0; i < 4; i++ {
		_, err := repo.Insert(ctx, expense(1, march(10), 1000))
		require.NoError(t, err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case total, ok := <-stream.Updates():
			require.True(t, ok)
			if total == 4000 {
				return
			}
		case <-deadline:
			t.Fatal("never observed the final total")
		}
	}
}
