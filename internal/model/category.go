// Package model defines the domain entities persisted by the storage layer.
package model

import "fmt"

// TransactionType indicates whether a record represents income or expense.
// Values persist to disk as their literal names.
type TransactionType string

const (
	// TypeIncome represents money coming in.
	TypeIncome TransactionType = "INCOME"
	// TypeExpense represents money going out.
	TypeExpense TransactionType = "EXPENSE"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// ParseTransactionType converts user input ("income", "EXPENSE", ...) to a
// TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch s {
	case "income", "INCOME":
		return TypeIncome, nil
	case "expense", "EXPENSE":
		return TypeExpense, nil
	default:
		return "", fmt.Errorf("invalid transaction type: %q", s)
	}
}

// Category represents a user-manageable tag for classifying transactions.
type Category struct {
	Name      string
	Type      TransactionType
	IconKey   string
	ID        int64
	IsDefault bool
}
