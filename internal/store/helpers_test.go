package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/awnhq/assetportal/internal/model"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func testProfile(t *testing.T, database *sql.DB, name, email, role string, managerID *int64) *model.Profile {
	t.Helper()
	p, err := CreateProfile(context.Background(), database, name, email, "hash", role, "London", "CC-100", managerID)
	if err != nil {
		t.Fatalf("CreateProfile(%s): %v", email, err)
	}
	return p
}

func testItem(t *testing.T, database *sql.DB, name, category string, unitCost *float64) *model.Item {
	t.Helper()
	item, err := CreateItem(context.Background(), database, name, category, "", "", unitCost, nil)
	if err != nil {
		t.Fatalf("CreateItem(%s): %v", name, err)
	}
	return item
}

// testPendingRequest submits a single-line request for the given employee.
func testPendingRequest(t *testing.T, database *sql.DB, employeeID, itemID int64) *model.Request {
	t.Helper()
	request, err := SubmitRequest(context.Background(), database, employeeID,
		[]LineInput{{ItemID: itemID, Quantity: 1}}, "")
	if err != nil {
		t.Fatalf("SubmitRequest: %v", err)
	}
	return request
}
