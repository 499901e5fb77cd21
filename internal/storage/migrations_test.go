package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Veraticus/tally/internal/model"
)

func TestMigrate_SeedsDefaultCategories(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	categories, err := store.GetCategories(context.Background())
	if err != nil {
		t.Fatalf("Failed to get categories: %v", err)
	}

	if len(categories) != 12 {
		t.Fatalf("expected 12 default categories, got %d", len(categories))
	}

	var income, expense int
	for _, cat := range categories {
		if !cat.IsDefault {
			t.Errorf("seeded category %q should be default", cat.Name)
		}
		switch cat.Type {
		case model.TypeIncome:
			income++
		case model.TypeExpense:
			expense++
		}
	}
	if expense != 8 || income != 4 {
		t.Errorf("expected 8 expense + 4 income defaults, got %d + %d", expense, income)
	}
}

func TestMigrate_SeedContract(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	categories, err := store.GetCategories(context.Background())
	if err != nil {
		t.Fatalf("Failed to get categories: %v", err)
	}

	byName := make(map[string]model.Category, len(categories))
	for _, cat := range categories {
		byName[cat.Name] = cat
	}

	tests := []struct {
		name    string
		iconKey string
		catType model.TransactionType
	}{
		{name: "餐饮", iconKey: "Restaurant", catType: model.TypeExpense},
		{name: "购物", iconKey: "ShoppingCart", catType: model.TypeExpense},
		{name: "交通", iconKey: "Commute", catType: model.TypeExpense},
		{name: "住房", iconKey: "Home", catType: model.TypeExpense},
		{name: "娱乐", iconKey: "SportsEsports", catType: model.TypeExpense},
		{name: "医疗", iconKey: "MedicalServices", catType: model.TypeExpense},
		{name: "通讯", iconKey: "PhoneAndroid", catType: model.TypeExpense},
		{name: "人情", iconKey: "CardGiftcard", catType: model.TypeExpense},
		{name: "工资", iconKey: "Work", catType: model.TypeIncome},
		{name: "奖金", iconKey: "AttachMoney", catType: model.TypeIncome},
		{name: "理财", iconKey: "TrendingUp", catType: model.TypeIncome},
		{name: "兼职", iconKey: "Payments", catType: model.TypeIncome},
	}

	for _, tt := range tests {
		cat, ok := byName[tt.name]
		if !ok {
			t.Errorf("missing default category %q", tt.name)
			continue
		}
		if cat.IconKey != tt.iconKey {
			t.Errorf("category %q icon = %q, want %q", tt.name, cat.IconKey, tt.iconKey)
		}
		if cat.Type != tt.catType {
			t.Errorf("category %q type = %q, want %q", tt.name, cat.Type, tt.catType)
		}
	}
}

func TestMigrate_SeedingIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	// First initialization seeds.
	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	// Migrating the same handle again must not duplicate.
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Failed to re-migrate: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Failed to close: %v", err)
	}

	// Reopening the same file must not duplicate either.
	store, err = NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen storage: %v", err)
	}
	defer func() { _ = store.Close() }()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Failed to migrate reopened storage: %v", err)
	}

	categories, err := store.GetCategories(ctx)
	if err != nil {
		t.Fatalf("Failed to get categories: %v", err)
	}
	if len(categories) != 12 {
		t.Errorf("expected 12 categories after three migrations, got %d", len(categories))
	}
}
