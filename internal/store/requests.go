package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/awnhq/assetportal/internal/model"
)

// LineInput is one cart line of a submission.
type LineInput struct {
	ItemID   int64  `json:"item_id"`
	Quantity int    `json:"quantity"`
	Size     string `json:"size,omitempty"`
}

const requestColumns = `id, user_id, status, notes, total_cost, created_at, approved_at, approved_by, dispatched_at, dispatched_by`

// SubmitRequest creates a pending request with all its line items as one
// transaction: either the request and every line land, or nothing does.
//
// Each line snapshots the item's current catalog unit cost (unset treated
// as 0), so the stored total is immune to later catalog price changes.
// Uniform lines without a selected size get the default size.
func SubmitRequest(ctx context.Context, db *sql.DB, employeeID int64, lines []LineInput, notes string) (*model.Request, error) {
	if len(lines) == 0 {
		return nil, validationf("add at least one item to the cart")
	}
	for _, l := range lines {
		if l.Quantity < model.MinLineQuantity || l.Quantity > model.MaxLineQuantity {
			return nil, validationf("quantity must be between %d and %d", model.MinLineQuantity, model.MaxLineQuantity)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Resolve items and snapshot unit costs inside the transaction.
	type resolvedLine struct {
		input    LineInput
		unitCost float64
	}
	resolved := make([]resolvedLine, 0, len(lines))
	var total float64

	for _, l := range lines {
		var category string
		var unitCost sql.NullFloat64
		err := tx.QueryRowContext(ctx,
			`SELECT category, unit_cost FROM items WHERE id = ?`, l.ItemID,
		).Scan(&category, &unitCost)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("item %d: %w", l.ItemID, ErrNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("resolving item %d: %w", l.ItemID, err)
		}

		if category == model.CategoryUniform {
			if l.Size == "" {
				l.Size = model.DefaultUniformSize()
			} else if !model.ValidUniformSize(l.Size) {
				return nil, validationf("invalid uniform size %q", l.Size)
			}
		}

		resolved = append(resolved, resolvedLine{input: l, unitCost: unitCost.Float64})
		total += unitCost.Float64 * float64(l.Quantity)
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO requests (user_id, status, notes, total_cost) VALUES (?, ?, ?, ?)`,
		employeeID, model.StatusPending, nullString(notes), total,
	)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	requestID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting request id: %w", err)
	}

	for _, rl := range resolved {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO request_items (request_id, item_id, quantity, size, unit_cost)
			 VALUES (?, ?, ?, ?, ?)`,
			requestID, rl.input.ItemID, rl.input.Quantity, nullString(rl.input.Size), rl.unitCost,
		)
		if err != nil {
			return nil, fmt.Errorf("creating request line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing request: %w", err)
	}

	return GetRequest(ctx, db, requestID)
}

// GetRequest returns a request by ID.
func GetRequest(ctx context.Context, db *sql.DB, id int64) (*model.Request, error) {
	r := &model.Request{}
	var notes sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM requests WHERE id = ?`, id,
	).Scan(&r.ID, &r.UserID, &r.Status, &notes, &r.TotalCost, &r.CreatedAt,
		&r.ApprovedAt, &r.ApprovedBy, &r.DispatchedAt, &r.DispatchedBy)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting request: %w", err)
	}
	r.Notes = notes.String
	return r, nil
}

// ListRequestItems returns a request's lines with item names joined.
func ListRequestItems(ctx context.Context, db *sql.DB, requestID int64) ([]model.RequestItem, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT ri.id, ri.request_id, ri.item_id, ri.quantity, ri.size, ri.unit_cost, i.name
		 FROM request_items ri
		 JOIN items i ON i.id = ri.item_id
		 WHERE ri.request_id = ?
		 ORDER BY ri.id`, requestID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing request items: %w", err)
	}
	defer rows.Close()

	var items []model.RequestItem
	for rows.Next() {
		var ri model.RequestItem
		var size sql.NullString
		if err := rows.Scan(&ri.ID, &ri.RequestID, &ri.ItemID, &ri.Quantity, &size, &ri.UnitCost, &ri.ItemName); err != nil {
			return nil, fmt.Errorf("scanning request item: %w", err)
		}
		ri.Size = size.String
		items = append(items, ri)
	}
	return items, rows.Err()
}

// RequestDisplayTotal computes the presented total for a request: line costs
// from the submission-time snapshots plus any ancillary costs. The live
// catalog price plays no part here.
func RequestDisplayTotal(ctx context.Context, db *sql.DB, requestID int64) (float64, error) {
	lines, err := ListRequestItems(ctx, db, requestID)
	if err != nil {
		return 0, err
	}

	costs, err := GetRequestCosts(ctx, db, requestID)
	if err != nil {
		return 0, err
	}

	total := model.ItemsCost(lines)
	if costs != nil {
		total += costs.EmbroideryCost + costs.ShippingCost
	}
	return total, nil
}
