package repository

import (
	"context"

	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/service"
	"github.com/Veraticus/tally/internal/storage"
)

// Categories mediates category access between storage and presentation.
type Categories struct {
	store service.Storage
}

// NewCategories creates a category repository over the given storage.
func NewCategories(store service.Storage) *Categories {
	return &Categories{store: store}
}

// All returns every category, defaults first then by id.
func (r *Categories) All(ctx context.Context) ([]model.Category, error) {
	return r.store.GetCategories(ctx)
}

// ByType returns categories of the given type, defaults first then by id.
func (r *Categories) ByType(ctx context.Context, catType model.TransactionType) ([]model.Category, error) {
	return r.store.GetCategoriesByType(ctx, catType)
}

// ByID returns a category by id, or nil if absent.
func (r *Categories) ByID(ctx context.Context, id int64) (*model.Category, error) {
	return r.store.GetCategoryByID(ctx, id)
}

// Insert persists a category and returns its assigned id.
func (r *Categories) Insert(ctx context.Context, cat *model.Category) (int64, error) {
	return r.store.InsertCategory(ctx, cat)
}

// Delete removes a category. Fails with storage.ErrIntegrityViolation while
// any transaction still references it.
func (r *Categories) Delete(ctx context.Context, id int64) error {
	return r.store.DeleteCategoryByID(ctx, id)
}

// WatchAll streams the full category list, re-emitting on every change.
func (r *Categories) WatchAll(ctx context.Context) *Stream[[]model.Category] {
	return newStream(ctx, r.store, r.All, storage.TableCategories)
}

// WatchByType streams the categories of one type.
func (r *Categories) WatchByType(ctx context.Context, catType model.TransactionType) *Stream[[]model.Category] {
	return newStream(ctx, r.store, func(ctx context.Context) ([]model.Category, error) {
		return r.ByType(ctx, catType)
	}, storage.TableCategories)
}
