package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/tally/internal/model"
)

// categoryOrder puts seeded defaults first, then insertion order.
const categoryOrder = "ORDER BY is_default DESC, id ASC"

// GetCategories returns all categories, defaults first then by id.
func (s *SQLiteStorage) GetCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, type, icon_key, is_default
		FROM categories ` + categoryOrder

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	return scanCategories(rows)
}

// GetCategoriesByType returns categories of the given type, defaults first
// then by id.
func (s *SQLiteStorage) GetCategoriesByType(ctx context.Context, catType model.TransactionType) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if !catType.Valid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidCategory, catType)
	}

	query := `
		SELECT id, name, type, icon_key, is_default
		FROM categories
		WHERE type = ? ` + categoryOrder

	rows, err := s.db.QueryContext(ctx, query, string(catType))
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	return scanCategories(rows)
}

func scanCategories(rows *sql.Rows) ([]model.Category, error) {
	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Type, &cat.IconKey, &cat.IsDefault); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

// GetCategoryByID returns a category by id, or nil if absent.
func (s *SQLiteStorage) GetCategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, type, icon_key, is_default
		FROM categories
		WHERE id = ?`

	var cat model.Category
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&cat.ID, &cat.Name, &cat.Type, &cat.IconKey, &cat.IsDefault,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Category not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &cat, nil
}

// InsertCategory persists a category and returns its id. A zero ID means the
// database assigns a fresh one; an explicit ID replaces that row wholesale.
// Duplicate names are permitted.
func (s *SQLiteStorage) InsertCategory(ctx context.Context, cat *model.Category) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateCategory(cat); err != nil {
		return 0, err
	}

	var (
		res sql.Result
		err error
	)
	if cat.ID == 0 {
		res, err = s.db.ExecContext(ctx,
			`INSERT INTO categories (name, type, icon_key, is_default) VALUES (?, ?, ?, ?)`,
			cat.Name, string(cat.Type), cat.IconKey, cat.IsDefault)
	} else {
		res, err = s.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO categories (id, name, type, icon_key, is_default) VALUES (?, ?, ?, ?, ?)`,
			cat.ID, cat.Name, string(cat.Type), cat.IconKey, cat.IsDefault)
	}
	if err != nil {
		return 0, wrapConstraint(err, "failed to insert category")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get category id: %w", err)
	}

	slog.Debug("inserted category", "id", id, "name", cat.Name, "type", cat.Type)
	s.notifier.notify(TableCategories)
	return id, nil
}

// DeleteCategoryByID removes a category. Deleting a category still referenced
// by a transaction fails with ErrIntegrityViolation; deleting a nonexistent
// one is a no-op.
func (s *SQLiteStorage) DeleteCategoryByID(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return wrapConstraint(err, "failed to delete category")
	}

	slog.Debug("deleted category", "id", id)
	s.notifier.notify(TableCategories)
	return nil
}
