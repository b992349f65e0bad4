package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/awnhq/assetportal/internal/model"
)

// ReceiveStock appends a stock receipt and increments the owning item's
// balance by the same quantity in a single transaction. This pairing is the
// ledger's core correctness contract: neither half may land without the
// other.
func ReceiveStock(ctx context.Context, db *sql.DB, itemID int64, quantity int, receivedDate string) (*model.StockReceipt, error) {
	if quantity <= 0 {
		return nil, validationf("quantity received must be positive")
	}
	if receivedDate == "" {
		return nil, validationf("received date required")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE items SET stock_balance = stock_balance + ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		quantity, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("incrementing stock balance: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("item %d: %w", itemID, ErrNotFound)
	}

	result, err = tx.ExecContext(ctx,
		`INSERT INTO stock_received (item_id, qty_received, received_date) VALUES (?, ?, ?)`,
		itemID, quantity, receivedDate,
	)
	if err != nil {
		return nil, fmt.Errorf("recording stock receipt: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing stock receipt: %w", err)
	}

	receiptID, _ := result.LastInsertId()
	return GetStockReceipt(ctx, db, receiptID)
}

// GetStockReceipt returns a receipt by ID.
func GetStockReceipt(ctx context.Context, db *sql.DB, id int64) (*model.StockReceipt, error) {
	r := &model.StockReceipt{}
	err := db.QueryRowContext(ctx,
		`SELECT sr.id, sr.item_id, sr.qty_received, sr.received_date, sr.created_at, i.name
		 FROM stock_received sr
		 JOIN items i ON i.id = sr.item_id
		 WHERE sr.id = ?`, id,
	).Scan(&r.ID, &r.ItemID, &r.QtyReceived, &r.ReceivedDate, &r.CreatedAt, &r.ItemName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting stock receipt: %w", err)
	}
	return r, nil
}

// ListStockReceipts returns an item's receipt history, newest first.
func ListStockReceipts(ctx context.Context, db *sql.DB, itemID int64) ([]model.StockReceipt, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT sr.id, sr.item_id, sr.qty_received, sr.received_date, sr.created_at, i.name
		 FROM stock_received sr
		 JOIN items i ON i.id = sr.item_id
		 WHERE sr.item_id = ?
		 ORDER BY sr.created_at DESC, sr.id DESC`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing stock receipts: %w", err)
	}
	defer rows.Close()

	var receipts []model.StockReceipt
	for rows.Next() {
		var r model.StockReceipt
		if err := rows.Scan(&r.ID, &r.ItemID, &r.QtyReceived, &r.ReceivedDate, &r.CreatedAt, &r.ItemName); err != nil {
			return nil, fmt.Errorf("scanning stock receipt: %w", err)
		}
		receipts = append(receipts, r)
	}
	return receipts, rows.Err()
}
