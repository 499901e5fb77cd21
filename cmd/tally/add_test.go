package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tally/internal/model"
)

func TestAddCmd_Flags(t *testing.T) {
	cmd := addCmd()

	for _, name := range []string{"amount", "category", "date", "note", "type"} {
		assert.NotNil(t, cmd.Flag(name), "%s flag should exist", name)
	}
	assert.Equal(t, "expense", cmd.Flag("type").DefValue, "type should default to expense")
}

func TestBuildTransaction(t *testing.T) {
	ctx := context.Background()

	txn, err := buildTransaction(ctx, "42.50", "expense", "2024-03-15", "lunch", 3)
	require.NoError(t, err)
	assert.Equal(t, model.TypeExpense, txn.Type)
	assert.Equal(t, int64(4250), txn.AmountMinor)
	assert.Equal(t, "2024-03-15", txn.Date.Format(model.DateLayout))
	assert.Equal(t, "lunch", txn.Note)
	assert.Equal(t, int64(3), txn.CategoryID)
}

func TestBuildTransaction_Invalid(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		amount     string
		typeStr    string
		date       string
		categoryID int64
	}{
		{name: "negative amount", amount: "-5", typeStr: "expense", categoryID: 1},
		{name: "zero amount", amount: "0", typeStr: "expense", categoryID: 1},
		{name: "garbage amount", amount: "abc", typeStr: "expense", categoryID: 1},
		{name: "unknown type", amount: "5", typeStr: "transfer", categoryID: 1},
		{name: "bad date", amount: "5", typeStr: "expense", date: "15/03/2024", categoryID: 1},
		{name: "missing category", amount: "5", typeStr: "expense", categoryID: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildTransaction(ctx, tt.amount, tt.typeStr, tt.date, "", tt.categoryID)
			assert.Error(t, err)
		})
	}
}

func TestBuildTransaction_DefaultsDateToToday(t *testing.T) {
	txn, err := buildTransaction(context.Background(), "1", "income", "", "", 9)
	require.NoError(t, err)
	assert.False(t, txn.Date.IsZero())
}
