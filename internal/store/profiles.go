package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/awnhq/assetportal/internal/model"
)

const profileColumns = `id, full_name, email, password_hash, role, branch, cost_centre, manager_id, created_at, deleted_at`

// CreateProfile creates a new profile.
func CreateProfile(ctx context.Context, db *sql.DB, fullName, email, passwordHash, role, branch, costCentre string, managerID *int64) (*model.Profile, error) {
	if fullName == "" {
		return nil, validationf("full name required")
	}
	if email == "" {
		return nil, validationf("email required")
	}
	if !model.ValidRole(role) {
		return nil, validationf("invalid role %q", role)
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO profiles (full_name, email, password_hash, role, branch, cost_centre, manager_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		fullName, email, passwordHash, role, nullString(branch), nullString(costCentre), managerID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating profile: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting profile id: %w", err)
	}

	return GetProfile(ctx, db, id)
}

// GetProfile returns a profile by ID, including soft-deleted ones.
func GetProfile(ctx context.Context, db *sql.DB, id int64) (*model.Profile, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)
	return scanProfile(row)
}

// GetProfileByEmail returns an active profile by email.
func GetProfileByEmail(ctx context.Context, db *sql.DB, email string) (*model.Profile, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE email = ? AND deleted_at IS NULL`, email)
	return scanProfile(row)
}

// ListProfiles returns all active profiles, optionally filtered by role.
func ListProfiles(ctx context.Context, db *sql.DB, role string) ([]model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE deleted_at IS NULL`
	var args []any
	if role != "" {
		query += ` AND role = ?`
		args = append(args, role)
	}
	query += ` ORDER BY full_name`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	var profiles []model.Profile
	for rows.Next() {
		p, err := scanProfileRow(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

// UpdateProfile updates a profile's mutable fields. The manager reference is
// weak: it may point at any active manager profile or be cleared entirely.
func UpdateProfile(ctx context.Context, db *sql.DB, id int64, fullName, role, branch, costCentre string, managerID *int64) error {
	if fullName == "" {
		return validationf("full name required")
	}
	if !model.ValidRole(role) {
		return validationf("invalid role %q", role)
	}

	result, err := db.ExecContext(ctx,
		`UPDATE profiles SET full_name = ?, role = ?, branch = ?, cost_centre = ?, manager_id = ?
		 WHERE id = ? AND deleted_at IS NULL`,
		fullName, role, nullString(branch), nullString(costCentre), managerID, id,
	)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("profile %d: %w", id, ErrNotFound)
	}
	return nil
}

// UpdateProfilePassword sets a new password hash.
func UpdateProfilePassword(ctx context.Context, db *sql.DB, id int64, passwordHash string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE profiles SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	return nil
}

// DeleteProfile soft-deletes a profile and orphans any reports that pointed
// at it. Reports are never cascade-deleted.
func DeleteProfile(ctx context.Context, db *sql.DB, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE profiles SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("profile %d: %w", id, ErrNotFound)
	}

	// Soft deletion does not fire ON DELETE SET NULL, so clear the
	// references explicitly.
	if _, err := tx.ExecContext(ctx,
		`UPDATE profiles SET manager_id = NULL WHERE manager_id = ?`, id); err != nil {
		return fmt.Errorf("orphaning reports: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing profile deletion: %w", err)
	}
	return nil
}

func scanProfile(row *sql.Row) (*model.Profile, error) {
	p := &model.Profile{}
	var branch, costCentre sql.NullString
	err := row.Scan(&p.ID, &p.FullName, &p.Email, &p.PasswordHash, &p.Role,
		&branch, &costCentre, &p.ManagerID, &p.CreatedAt, &p.DeletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting profile: %w", err)
	}
	p.Branch = branch.String
	p.CostCentre = costCentre.String
	return p, nil
}

func scanProfileRow(rows *sql.Rows) (*model.Profile, error) {
	p := &model.Profile{}
	var branch, costCentre sql.NullString
	err := rows.Scan(&p.ID, &p.FullName, &p.Email, &p.PasswordHash, &p.Role,
		&branch, &costCentre, &p.ManagerID, &p.CreatedAt, &p.DeletedAt)
	if err != nil {
		return nil, fmt.Errorf("scanning profile: %w", err)
	}
	p.Branch = branch.String
	p.CostCentre = costCentre.String
	return p, nil
}

// nullString converts an empty string to NULL for storage.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
