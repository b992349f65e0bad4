package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/awnhq/assetportal/internal/model"
)

const itemColumns = `id, name, category, size, supplier, stock_balance, unit_cost, low_stock_threshold, created_at, updated_at`

// CreateItem creates a new catalog item. The stock balance always starts at
// zero; stock only enters through receipts.
func CreateItem(ctx context.Context, db *sql.DB, name, category, size, supplier string, unitCost *float64, lowStockThreshold *int) (*model.Item, error) {
	if name == "" {
		return nil, validationf("item name required")
	}
	if !model.ValidCategory(category) {
		return nil, validationf("invalid category %q", category)
	}
	if unitCost != nil && *unitCost < 0 {
		return nil, validationf("unit cost must not be negative")
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO items (name, category, size, supplier, unit_cost, low_stock_threshold, stock_balance)
		 VALUES (?, ?, ?, ?, ?, ?, 0)`,
		name, category, nullString(size), nullString(supplier), unitCost, lowStockThreshold,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	item := &model.Item{}
	var size, supplier sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
	).Scan(&item.ID, &item.Name, &item.Category, &size, &supplier,
		&item.StockBalance, &item.UnitCost, &item.LowStockThreshold,
		&item.CreatedAt, &item.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	item.Size = size.String
	item.Supplier = supplier.String
	return item, nil
}

// ListItems returns the catalog, optionally filtered by category.
func ListItems(ctx context.Context, db *sql.DB, category string) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	var args []any
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY name`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		var size, supplier sql.NullString
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &size, &supplier,
			&item.StockBalance, &item.UnitCost, &item.LowStockThreshold,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		item.Size = size.String
		item.Supplier = supplier.String
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateItem updates an item's catalog fields. The stock balance is not
// touched here; it belongs to ReceiveStock alone.
func UpdateItem(ctx context.Context, db *sql.DB, id int64, name, category, size, supplier string, unitCost *float64, lowStockThreshold *int) error {
	if name == "" {
		return validationf("item name required")
	}
	if !model.ValidCategory(category) {
		return validationf("invalid category %q", category)
	}
	if unitCost != nil && *unitCost < 0 {
		return validationf("unit cost must not be negative")
	}

	result, err := db.ExecContext(ctx,
		`UPDATE items SET name = ?, category = ?, size = ?, supplier = ?,
		        unit_cost = ?, low_stock_threshold = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		name, category, nullString(size), nullString(supplier), unitCost, lowStockThreshold, id,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	return nil
}

// TotalStockValue sums stock_balance x unit_cost over the full catalog.
// Items without a unit cost contribute nothing.
func TotalStockValue(ctx context.Context, db *sql.DB) (float64, error) {
	var total float64
	err := db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(stock_balance * COALESCE(unit_cost, 0)), 0) FROM items`,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("computing total stock value: %w", err)
	}
	return total, nil
}

// ListLowStockItems returns items at or below their low-stock threshold.
// Items without a threshold are excluded.
func ListLowStockItems(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items
		 WHERE low_stock_threshold IS NOT NULL AND stock_balance <= low_stock_threshold
		 ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing low stock items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		var size, supplier sql.NullString
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &size, &supplier,
			&item.StockBalance, &item.UnitCost, &item.LowStockThreshold,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		item.Size = size.String
		item.Supplier = supplier.String
		items = append(items, item)
	}
	return items, rows.Err()
}
