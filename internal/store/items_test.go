package store

import (
	"context"
	"errors"
	"testing"

	"github.com/awnhq/assetportal/internal/db"
	"github.com/awnhq/assetportal/internal/model"
)

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, "Company Hoodie", model.CategoryUniform, "M", "UniformCo", floatPtr(20), intPtr(5))
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.Name != "Company Hoodie" {
		t.Errorf("expected name 'Company Hoodie', got %q", item.Name)
	}
	if item.StockBalance != 0 {
		t.Errorf("expected new item to start with 0 stock, got %d", item.StockBalance)
	}
	if item.UnitCost == nil || *item.UnitCost != 20 {
		t.Errorf("expected unit cost 20, got %v", item.UnitCost)
	}
}

func TestCreateItemStartsWithZeroStock(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// Costs and thresholds may be absent entirely.
	item, err := CreateItem(ctx, database, "USB-C Cable", model.CategoryAccessory, "", "", nil, nil)
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.StockBalance != 0 {
		t.Errorf("expected 0 stock, got %d", item.StockBalance)
	}
	if item.UnitCost != nil {
		t.Errorf("expected unset unit cost, got %v", *item.UnitCost)
	}
	if item.LowStockThreshold != nil {
		t.Errorf("expected unset threshold, got %v", *item.LowStockThreshold)
	}
}

func TestCreateItemValidation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateItem(ctx, database, "", model.CategoryLaptop, "", "", nil, nil); !IsValidation(err) {
		t.Errorf("expected validation error for empty name, got %v", err)
	}
	if _, err := CreateItem(ctx, database, "Thing", "Furniture", "", "", nil, nil); !IsValidation(err) {
		t.Errorf("expected validation error for unknown category, got %v", err)
	}
	if _, err := CreateItem(ctx, database, "Thing", model.CategoryLaptop, "", "", floatPtr(-1), nil); !IsValidation(err) {
		t.Errorf("expected validation error for negative cost, got %v", err)
	}
}

func TestListItemsByCategory(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	testItem(t, database, "Hoodie", model.CategoryUniform, nil)
	testItem(t, database, "MacBook", model.CategoryLaptop, nil)

	all, err := ListItems(ctx, database, "")
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 items, got %d", len(all))
	}

	laptops, _ := ListItems(ctx, database, model.CategoryLaptop)
	if len(laptops) != 1 || laptops[0].Name != "MacBook" {
		t.Errorf("expected only the MacBook, got %+v", laptops)
	}
}

func TestUpdateItemLeavesStockAlone(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item := testItem(t, database, "Hoodie", model.CategoryUniform, floatPtr(20))
	if _, err := ReceiveStock(ctx, database, item.ID, 7, "2026-08-01"); err != nil {
		t.Fatalf("ReceiveStock: %v", err)
	}

	if err := UpdateItem(ctx, database, item.ID, "Hoodie v2", model.CategoryUniform, "L", "NewCo", floatPtr(25), intPtr(3)); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got.Name != "Hoodie v2" || *got.UnitCost != 25 {
		t.Errorf("update not applied: %+v", got)
	}
	if got.StockBalance != 7 {
		t.Errorf("expected stock balance 7 untouched by update, got %d", got.StockBalance)
	}
}

func TestUpdateMissingItem(t *testing.T) {
	database := db.NewTestDB(t)

	err := UpdateItem(context.Background(), database, 999, "Ghost", model.CategoryLaptop, "", "", nil, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTotalStockValue(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	hoodie := testItem(t, database, "Hoodie", model.CategoryUniform, floatPtr(20))
	nocost := testItem(t, database, "Mystery Box", model.CategoryAccessory, nil)

	ReceiveStock(ctx, database, hoodie.ID, 3, "2026-08-01")
	ReceiveStock(ctx, database, nocost.ID, 100, "2026-08-01")

	total, err := TotalStockValue(ctx, database)
	if err != nil {
		t.Fatalf("TotalStockValue: %v", err)
	}
	// Items without a unit cost contribute nothing.
	if total != 60 {
		t.Errorf("expected total value 60, got %v", total)
	}
}

func TestListLowStockItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	low, err := CreateItem(ctx, database, "Hoodie", model.CategoryUniform, "", "", nil, intPtr(5))
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	ok, _ := CreateItem(ctx, database, "Laptop", model.CategoryLaptop, "", "", nil, intPtr(2))
	ReceiveStock(ctx, database, low.ID, 5, "2026-08-01")
	ReceiveStock(ctx, database, ok.ID, 10, "2026-08-01")

	// No threshold means never low, regardless of balance.
	testItem(t, database, "Cable", model.CategoryAccessory, nil)

	items, err := ListLowStockItems(ctx, database)
	if err != nil {
		t.Fatalf("ListLowStockItems: %v", err)
	}
	if len(items) != 1 || items[0].ID != low.ID {
		t.Errorf("expected only the hoodie at its threshold, got %+v", items)
	}
}
