package store

import (
	"context"
	"errors"
	"testing"

	"github.com/awnhq/assetportal/internal/db"
	"github.com/awnhq/assetportal/internal/model"
)

func TestSubmitRequestSnapshotsCosts(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	employee := testProfile(t, database, "Ada", "ada@awn.net", model.RoleEmployee, nil)
	hoodie := testItem(t, database, "Hoodie", model.CategoryUniform, floatPtr(20))
	laptop := testItem(t, database, "MacBook", model.CategoryLaptop, floatPtr(800))

	request, err := SubmitRequest(ctx, database, employee.ID, []LineInput{
		{ItemID: hoodie.ID, Quantity: 2, Size: "L"},
		{ItemID: laptop.ID, Quantity: 1},
	}, "for the new starter")
	if err != nil {
		t.Fatalf("SubmitRequest: %v", err)
	}

	if request.Status != model.StatusPending {
		t.Errorf("expected pending, got %q", request.Status)
	}
	if request.TotalCost != 840 {
		t.Errorf("expected total 840, got %v", request.TotalCost)
	}

	// Raising the catalog price must not move the stored total or lines.
	if err := UpdateItem(ctx, database, hoodie.ID, "Hoodie", model.CategoryUniform, "", "", floatPtr(99), nil); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	got, _ := GetRequest(ctx, database, request.ID)
	if got.TotalCost != 840 {
		t.Errorf("expected total to stay 840 after price change, got %v", got.TotalCost)
	}

	lines, err := ListRequestItems(ctx, database, request.ID)
	if err != nil {
		t.Fatalf("ListRequestItems: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].UnitCost != 20 {
		t.Errorf("expected snapshotted unit cost 20, got %v", lines[0].UnitCost)
	}
}

func TestSubmitRequestUncostedItemsCountAsZero(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	employee := testProfile(t, database, "Ada", "ada@awn.net", model.RoleEmployee, nil)
	cable := testItem(t, database, "Cable", model.CategoryAccessory, nil)

	request, err := SubmitRequest(ctx, database, employee.ID,
		[]LineInput{{ItemID: cable.ID, Quantity: 3}}, "")
	if err != nil {
		t.Fatalf("SubmitRequest: %v", err)
	}
	if request.TotalCost != 0 {
		t.Errorf("expected total 0 for uncosted item, got %v", request.TotalCost)
	}
}

func TestSubmitRequestValidation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	employee := testProfile(t, database, "Ada", "ada@awn.net", model.RoleEmployee, nil)
	hoodie := testItem(t, database, "Hoodie", model.CategoryUniform, floatPtr(20))

	if _, err := SubmitRequest(ctx, database, employee.ID, nil, ""); !IsValidation(err) {
		t.Errorf("expected validation error for empty cart, got %v", err)
	}
	if _, err := SubmitRequest(ctx, database, employee.ID,
		[]LineInput{{ItemID: hoodie.ID, Quantity: 0}}, ""); !IsValidation(err) {
		t.Errorf("expected validation error for quantity 0, got %v", err)
	}
	if _, err := SubmitRequest(ctx, database, employee.ID,
		[]LineInput{{ItemID: hoodie.ID, Quantity: 11}}, ""); !IsValidation(err) {
		t.Errorf("expected validation error for quantity 11, got %v", err)
	}
	if _, err := SubmitRequest(ctx, database, employee.ID,
		[]LineInput{{ItemID: hoodie.ID, Quantity: 1, Size: "XXXL"}}, ""); !IsValidation(err) {
		t.Errorf("expected validation error for unknown size, got %v", err)
	}
}

func TestSubmitRequestMissingItemLeavesNothingBehind(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	employee := testProfile(t, database, "Ada", "ada@awn.net", model.RoleEmployee, nil)
	hoodie := testItem(t, database, "Hoodie", model.CategoryUniform, floatPtr(20))

	_, err := SubmitRequest(ctx, database, employee.ID, []LineInput{
		{ItemID: hoodie.ID, Quantity: 1},
		{ItemID: 999, Quantity: 1},
	}, "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// The whole submission rolls back, including the valid line.
	requests, _ := ListEmployeeRequests(ctx, database, employee.ID)
	if len(requests) != 0 {
		t.Errorf("expected no requests after failed submission, got %d", len(requests))
	}
}

func TestSubmitRequestDefaultsUniformSize(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	employee := testProfile(t, database, "Ada", "ada@awn.net", model.RoleEmployee, nil)
	hoodie := testItem(t, database, "Hoodie", model.CategoryUniform, nil)
	laptop := testItem(t, database, "MacBook", model.CategoryLaptop, nil)

	request, err := SubmitRequest(ctx, database, employee.ID, []LineInput{
		{ItemID: hoodie.ID, Quantity: 1},
		{ItemID: laptop.ID, Quantity: 1},
	}, "")
	if err != nil {
		t.Fatalf("SubmitRequest: %v", err)
	}

	lines, _ := ListRequestItems(ctx, database, request.ID)
	if lines[0].Size != "M" {
		t.Errorf("expected uniform line to default to size M, got %q", lines[0].Size)
	}
	if lines[1].Size != "" {
		t.Errorf("expected non-uniform line to have no size, got %q", lines[1].Size)
	}
}

func TestRequestDisplayTotal(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	employee := testProfile(t, database, "Ada", "ada@awn.net", model.RoleEmployee, nil)
	hoodie := testItem(t, database, "Hoodie", model.CategoryUniform, floatPtr(20))

	request, err := SubmitRequest(ctx, database, employee.ID,
		[]LineInput{{ItemID: hoodie.ID, Quantity: 2}}, "")
	if err != nil {
		t.Fatalf("SubmitRequest: %v", err)
	}

	total, err := RequestDisplayTotal(ctx, database, request.ID)
	if err != nil {
		t.Fatalf("RequestDisplayTotal: %v", err)
	}
	if total != 40 {
		t.Errorf("expected display total 40 without ancillary costs, got %v", total)
	}

	if err := UpsertRequestCosts(ctx, database, request.ID, floatPtr(7.5), floatPtr(2.5)); err != nil {
		t.Fatalf("UpsertRequestCosts: %v", err)
	}

	total, _ = RequestDisplayTotal(ctx, database, request.ID)
	if total != 50 {
		t.Errorf("expected display total 50 with ancillary costs, got %v", total)
	}
}
