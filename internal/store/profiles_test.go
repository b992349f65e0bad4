package store

import (
	"context"
	"errors"
	"testing"

	"github.com/awnhq/assetportal/internal/db"
	"github.com/awnhq/assetportal/internal/model"
)

func TestCreateAndGetProfile(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	mia := testProfile(t, database, "Mia", "mia@awn.net", model.RoleManager, nil)
	ada := testProfile(t, database, "Ada", "ada@awn.net", model.RoleEmployee, &mia.ID)

	if ada.ManagerID == nil || *ada.ManagerID != mia.ID {
		t.Errorf("expected manager id %d, got %v", mia.ID, ada.ManagerID)
	}

	got, err := GetProfileByEmail(ctx, database, "ada@awn.net")
	if err != nil {
		t.Fatalf("GetProfileByEmail: %v", err)
	}
	if got == nil || got.ID != ada.ID {
		t.Errorf("expected to find ada by email, got %+v", got)
	}
}

func TestCreateProfileValidation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateProfile(ctx, database, "", "a@awn.net", "hash", model.RoleEmployee, "", "", nil); !IsValidation(err) {
		t.Errorf("expected validation error for empty name, got %v", err)
	}
	if _, err := CreateProfile(ctx, database, "A", "", "hash", model.RoleEmployee, "", "", nil); !IsValidation(err) {
		t.Errorf("expected validation error for empty email, got %v", err)
	}
	if _, err := CreateProfile(ctx, database, "A", "a@awn.net", "hash", "wizard", "", "", nil); !IsValidation(err) {
		t.Errorf("expected validation error for unknown role, got %v", err)
	}
}

func TestDuplicateEmailRejected(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	testProfile(t, database, "Ada", "ada@awn.net", model.RoleEmployee, nil)
	if _, err := CreateProfile(ctx, database, "Other Ada", "ada@awn.net", "hash", model.RoleEmployee, "", "", nil); err == nil {
		t.Error("expected duplicate active email to fail")
	}
}

func TestListProfilesByRole(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	testProfile(t, database, "Mia", "mia@awn.net", model.RoleManager, nil)
	testProfile(t, database, "Ada", "ada@awn.net", model.RoleEmployee, nil)
	testProfile(t, database, "Omar", "omar@awn.net", model.RoleAdmin, nil)

	all, err := ListProfiles(ctx, database, "")
	if err != nil {
		t.Fatalf("ListProfiles: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 profiles, got %d", len(all))
	}

	admins, _ := ListProfiles(ctx, database, model.RoleAdmin)
	if len(admins) != 1 || admins[0].Email != "omar@awn.net" {
		t.Errorf("expected only omar, got %+v", admins)
	}
}

func TestDeleteProfileOrphansReports(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	mia := testProfile(t, database, "Mia", "mia@awn.net", model.RoleManager, nil)
	ada := testProfile(t, database, "Ada", "ada@awn.net", model.RoleEmployee, &mia.ID)

	if err := DeleteProfile(ctx, database, mia.ID); err != nil {
		t.Fatalf("DeleteProfile: %v", err)
	}

	// The report survives, with its manager reference cleared.
	got, _ := GetProfile(ctx, database, ada.ID)
	if got == nil || got.DeletedAt != nil {
		t.Fatalf("expected ada to survive her manager's deletion, got %+v", got)
	}
	if got.ManagerID != nil {
		t.Errorf("expected manager reference cleared, got %v", *got.ManagerID)
	}

	// Soft-deleted profiles disappear from email lookup but stay fetchable
	// by ID for request history.
	byEmail, _ := GetProfileByEmail(ctx, database, "mia@awn.net")
	if byEmail != nil {
		t.Error("expected deleted profile to be invisible by email")
	}
	byID, _ := GetProfile(ctx, database, mia.ID)
	if byID == nil || byID.DeletedAt == nil {
		t.Error("expected deleted profile to stay fetchable by ID")
	}
}

func TestDeleteMissingProfile(t *testing.T) {
	database := db.NewTestDB(t)

	err := DeleteProfile(context.Background(), database, 999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateProfilePassword(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	ada := testProfile(t, database, "Ada", "ada@awn.net", model.RoleEmployee, nil)

	if err := UpdateProfilePassword(ctx, database, ada.ID, "newhash"); err != nil {
		t.Fatalf("UpdateProfilePassword: %v", err)
	}

	got, _ := GetProfile(ctx, database, ada.ID)
	if got.PasswordHash != "newhash" {
		t.Errorf("expected updated hash, got %q", got.PasswordHash)
	}
}
