package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/service"
	"github.com/Veraticus/tally/internal/storage"
)

func newTestStorage(t *testing.T) service.Storage {
	t.Helper()
	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// waitSnapshot reads the next snapshot from a stream or fails the test.
func waitSnapshot[T any](t *testing.T, s *Stream[T]) T {
	t.Helper()
	select {
	case v, ok := <-s.Updates():
		require.True(t, ok, "stream closed while waiting for snapshot")
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		panic("unreachable")
	}
}

func march(day int) time.Time {
	return time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC)
}

func expense(categoryID int64, date time.Time, amountMinor int64) *model.Transaction {
	return &model.Transaction{
		Type:        model.TypeExpense,
		AmountMinor: amountMinor,
		Date:        date,
		CategoryID:  categoryID,
	}
}
