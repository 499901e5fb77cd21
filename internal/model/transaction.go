package model

import "time"

// DateLayout is the on-disk format for transaction dates. Dates carry no time
// component and no timezone.
const DateLayout = "2006-01-02"

// MonthLayout is the prefix format used to address a calendar month.
const MonthLayout = "2006-01"

// Transaction represents a single recorded expense or income.
type Transaction struct {
	Date        time.Time
	Type        TransactionType
	Note        string
	ID          int64
	AmountMinor int64
	CategoryID  int64
	CreatedAt   int64
}

// TransactionWithCategory is the read-only join of a transaction with its
// referenced category. Produced only by queries, never persisted.
type TransactionWithCategory struct {
	Transaction Transaction
	Category    Category
}
