package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/tally/internal/model"
)

const transactionColumns = "id, type, amount_minor, date, category_id, note, created_at"

// joinedColumns selects a transaction row together with its category row.
const joinedColumns = `
	t.id, t.type, t.amount_minor, t.date, t.category_id, t.note, t.created_at,
	c.id, c.name, c.type, c.icon_key, c.is_default`

// GetTransactionsForMonth returns every transaction whose date falls within
// the given yyyy-MM month, joined with its category, newest first (date
// descending, entry order descending within a day).
func (s *SQLiteStorage) GetTransactionsForMonth(ctx context.Context, monthPrefix string) ([]model.TransactionWithCategory, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(monthPrefix, "monthPrefix"); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + joinedColumns + `
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.date LIKE ? || '%'
		ORDER BY t.date DESC, t.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, monthPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var results []model.TransactionWithCategory
	for rows.Next() {
		twc, scanErr := scanJoined(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		results = append(results, *twc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	slog.Debug("retrieved transactions for month", "month", monthPrefix, "count", len(results))
	return results, nil
}

// GetMonthlyTotalByType returns the sum of amounts for the month and type.
// Months with no matching rows total 0.
func (s *SQLiteStorage) GetMonthlyTotalByType(ctx context.Context, monthPrefix string, txnType model.TransactionType) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(monthPrefix, "monthPrefix"); err != nil {
		return 0, err
	}
	if !txnType.Valid() {
		return 0, fmt.Errorf("%w: unknown type %q", ErrInvalidTransaction, txnType)
	}

	query := `
		SELECT COALESCE(SUM(amount_minor), 0)
		FROM transactions
		WHERE date LIKE ? || '%' AND type = ?`

	var total int64
	if err := s.db.QueryRowContext(ctx, query, monthPrefix, string(txnType)).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum transactions: %w", err)
	}
	return total, nil
}

// GetTransactionByID returns a transaction by id, or nil if absent.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id int64) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = ?`

	txn, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Transaction not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}
	return txn, nil
}

// GetTransactionWithCategoryByID returns a transaction joined with its
// category, or nil if absent.
func (s *SQLiteStorage) GetTransactionWithCategoryByID(ctx context.Context, id int64) (*model.TransactionWithCategory, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + joinedColumns + `
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.id = ?`

	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to query transaction: %w", err)
		}
		return nil, nil // Transaction not found
	}
	return scanJoined(rows)
}

// InsertTransaction persists a transaction and returns its id. A zero ID
// means the database assigns a fresh one; an explicit ID replaces that row
// wholesale. A CreatedAt of zero is filled with the current time. Referencing
// a nonexistent category fails with ErrIntegrityViolation.
func (s *SQLiteStorage) InsertTransaction(ctx context.Context, txn *model.Transaction) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateTransaction(txn); err != nil {
		return 0, err
	}

	createdAt := txn.CreatedAt
	if createdAt == 0 {
		createdAt = time.Now().UnixMilli()
	}

	var (
		res sql.Result
		err error
	)
	if txn.ID == 0 {
		res, err = s.db.ExecContext(ctx,
			`INSERT INTO transactions (type, amount_minor, date, category_id, note, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			string(txn.Type), txn.AmountMinor, txn.Date.Format(model.DateLayout),
			txn.CategoryID, nullableNote(txn.Note), createdAt)
	} else {
		res, err = s.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO transactions (id, type, amount_minor, date, category_id, note, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			txn.ID, string(txn.Type), txn.AmountMinor, txn.Date.Format(model.DateLayout),
			txn.CategoryID, nullableNote(txn.Note), createdAt)
	}
	if err != nil {
		return 0, wrapConstraint(err, "failed to insert transaction")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get transaction id: %w", err)
	}

	slog.Debug("inserted transaction", "id", id, "type", txn.Type, "amount_minor", txn.AmountMinor)
	s.notifier.notify(TableTransactions)
	return id, nil
}

// UpdateTransaction replaces every field of an existing transaction. Updating
// a nonexistent id fails with ErrNotFound; pointing at a nonexistent category
// fails with ErrIntegrityViolation.
func (s *SQLiteStorage) UpdateTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}
	if txn.ID == 0 {
		return fmt.Errorf("%w: missing ID", ErrInvalidTransaction)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions
		 SET type = ?, amount_minor = ?, date = ?, category_id = ?, note = ?, created_at = ?
		 WHERE id = ?`,
		string(txn.Type), txn.AmountMinor, txn.Date.Format(model.DateLayout),
		txn.CategoryID, nullableNote(txn.Note), txn.CreatedAt, txn.ID)
	if err != nil {
		return wrapConstraint(err, "failed to update transaction")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: transaction %d", ErrNotFound, txn.ID)
	}

	slog.Debug("updated transaction", "id", txn.ID)
	s.notifier.notify(TableTransactions)
	return nil
}

// DeleteTransactionByID removes a transaction. Deleting a nonexistent id is
// a no-op.
func (s *SQLiteStorage) DeleteTransactionByID(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	slog.Debug("deleted transaction", "id", id)
	s.notifier.notify(TableTransactions)
	return nil
}

func nullableNote(note string) any {
	if note == "" {
		return nil
	}
	return note
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	var (
		txn     model.Transaction
		dateStr string
		note    sql.NullString
	)
	if err := row.Scan(&txn.ID, &txn.Type, &txn.AmountMinor, &dateStr, &txn.CategoryID, &note, &txn.CreatedAt); err != nil {
		return nil, err
	}

	date, err := time.Parse(model.DateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse transaction date %q: %w", dateStr, err)
	}
	txn.Date = date
	txn.Note = note.String
	return &txn, nil
}

func scanJoined(rows *sql.Rows) (*model.TransactionWithCategory, error) {
	var (
		twc     model.TransactionWithCategory
		dateStr string
		note    sql.NullString
	)
	err := rows.Scan(
		&twc.Transaction.ID, &twc.Transaction.Type, &twc.Transaction.AmountMinor,
		&dateStr, &twc.Transaction.CategoryID, &note, &twc.Transaction.CreatedAt,
		&twc.Category.ID, &twc.Category.Name, &twc.Category.Type,
		&twc.Category.IconKey, &twc.Category.IsDefault,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan transaction row: %w", err)
	}

	date, err := time.Parse(model.DateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse transaction date %q: %w", dateStr, err)
	}
	twc.Transaction.Date = date
	twc.Transaction.Note = note.String
	return &twc, nil
}
