package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/awnhq/assetportal/internal/model"
)

// UpsertRequestCosts sets the ancillary costs on a request. Each field is
// independent: a nil value leaves the stored value alone (or 0 if the row is
// new). Allowed at any request status; last write wins.
func UpsertRequestCosts(ctx context.Context, db *sql.DB, requestID int64, embroideryCost, shippingCost *float64) error {
	if embroideryCost != nil && *embroideryCost < 0 {
		return validationf("embroidery cost must not be negative")
	}
	if shippingCost != nil && *shippingCost < 0 {
		return validationf("shipping cost must not be negative")
	}

	request, err := GetRequest(ctx, db, requestID)
	if err != nil {
		return err
	}
	if request == nil {
		return fmt.Errorf("request %d: %w", requestID, ErrNotFound)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO request_costs (request_id, embroidery_cost, shipping_cost)
		 VALUES (?, COALESCE(?, 0), COALESCE(?, 0))
		 ON CONFLICT (request_id) DO UPDATE SET
		     embroidery_cost = COALESCE(?, embroidery_cost),
		     shipping_cost = COALESCE(?, shipping_cost)`,
		requestID, embroideryCost, shippingCost, embroideryCost, shippingCost,
	)
	if err != nil {
		return fmt.Errorf("upserting request costs: %w", err)
	}
	return nil
}

// GetRequestCosts returns the ancillary costs for a request, or nil if none
// were ever set.
func GetRequestCosts(ctx context.Context, db *sql.DB, requestID int64) (*model.RequestCost, error) {
	c := &model.RequestCost{}
	err := db.QueryRowContext(ctx,
		`SELECT request_id, embroidery_cost, shipping_cost FROM request_costs WHERE request_id = ?`,
		requestID,
	).Scan(&c.RequestID, &c.EmbroideryCost, &c.ShippingCost)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting request costs: %w", err)
	}
	return c, nil
}
