// Package storage provides the SQLite persistence layer for the tally
// application: the categories and transactions tables, their integrity
// constraints, and the change notification that backs live queries.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/tally/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidTransaction = errors.New("invalid transaction")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateCategory validates a category before it reaches the database.
// Duplicate names are allowed; only structure is checked here.
func validateCategory(cat *model.Category) error {
	if cat == nil {
		return fmt.Errorf("%w: category", ErrNilParameter)
	}
	if strings.TrimSpace(cat.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidCategory)
	}
	if !cat.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidCategory, cat.Type)
	}
	return nil
}

// validateTransaction validates a transaction before it reaches the database.
// Amount sign is deliberately not checked: the edit workflow rejects
// non-positive amounts, storage itself does not.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if !txn.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidTransaction, txn.Type)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	if txn.CategoryID == 0 {
		return fmt.Errorf("%w: missing category ID", ErrInvalidTransaction)
	}
	return nil
}
