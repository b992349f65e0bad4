package store

import (
	"context"
	"errors"
	"testing"

	"github.com/awnhq/assetportal/internal/db"
	"github.com/awnhq/assetportal/internal/model"
)

func TestUpsertRequestCosts(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	ada := testProfile(t, database, "Ada", "ada@awn.net", model.RoleEmployee, nil)
	hoodie := testItem(t, database, "Hoodie", model.CategoryUniform, nil)
	request := testPendingRequest(t, database, ada.ID, hoodie.ID)

	// Setting one field leaves the other at its default.
	if err := UpsertRequestCosts(ctx, database, request.ID, floatPtr(12.5), nil); err != nil {
		t.Fatalf("UpsertRequestCosts: %v", err)
	}

	costs, err := GetRequestCosts(ctx, database, request.ID)
	if err != nil {
		t.Fatalf("GetRequestCosts: %v", err)
	}
	if costs.EmbroideryCost != 12.5 || costs.ShippingCost != 0 {
		t.Errorf("expected embroidery 12.5 and shipping 0, got %+v", costs)
	}

	// Updating the other field must not clobber the first.
	if err := UpsertRequestCosts(ctx, database, request.ID, nil, floatPtr(4)); err != nil {
		t.Fatalf("UpsertRequestCosts: %v", err)
	}
	costs, _ = GetRequestCosts(ctx, database, request.ID)
	if costs.EmbroideryCost != 12.5 || costs.ShippingCost != 4 {
		t.Errorf("expected embroidery 12.5 and shipping 4, got %+v", costs)
	}

	// Last write wins.
	if err := UpsertRequestCosts(ctx, database, request.ID, floatPtr(3), floatPtr(1)); err != nil {
		t.Fatalf("UpsertRequestCosts: %v", err)
	}
	costs, _ = GetRequestCosts(ctx, database, request.ID)
	if costs.EmbroideryCost != 3 || costs.ShippingCost != 1 {
		t.Errorf("expected embroidery 3 and shipping 1, got %+v", costs)
	}
}

func TestUpsertRequestCostsValidation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	ada := testProfile(t, database, "Ada", "ada@awn.net", model.RoleEmployee, nil)
	hoodie := testItem(t, database, "Hoodie", model.CategoryUniform, nil)
	request := testPendingRequest(t, database, ada.ID, hoodie.ID)

	if err := UpsertRequestCosts(ctx, database, request.ID, floatPtr(-1), nil); !IsValidation(err) {
		t.Errorf("expected validation error for negative embroidery cost, got %v", err)
	}
	if err := UpsertRequestCosts(ctx, database, request.ID, nil, floatPtr(-1)); !IsValidation(err) {
		t.Errorf("expected validation error for negative shipping cost, got %v", err)
	}
}

func TestUpsertRequestCostsMissingRequest(t *testing.T) {
	database := db.NewTestDB(t)

	err := UpsertRequestCosts(context.Background(), database, 999, floatPtr(1), nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetRequestCostsNeverSet(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	ada := testProfile(t, database, "Ada", "ada@awn.net", model.RoleEmployee, nil)
	hoodie := testItem(t, database, "Hoodie", model.CategoryUniform, nil)
	request := testPendingRequest(t, database, ada.ID, hoodie.ID)

	costs, err := GetRequestCosts(ctx, database, request.ID)
	if err != nil {
		t.Fatalf("GetRequestCosts: %v", err)
	}
	if costs != nil {
		t.Errorf("expected nil costs for a request that never had any, got %+v", costs)
	}
}
