package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/awnhq/assetportal/internal/model"
)

// Role-scoped request views. Each role sees a different slice of the same
// requests table, so the scoping lives here in one place: employees see
// their own orders, managers see their reports' pending requests, admins
// see the dispatch queue. These are pure reads; nothing here mutates.

// ListEmployeeRequests returns an employee's own requests, newest first.
func ListEmployeeRequests(ctx context.Context, db *sql.DB, employeeID int64) ([]model.Request, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+requestColumns+` FROM requests
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`, employeeID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing employee requests: %w", err)
	}
	defer rows.Close()
	return scanRequests(rows)
}

// ListManagerPending returns pending requests whose owner reports to the
// given manager, oldest first. Requests from employees the manager does not
// manage never appear here.
func ListManagerPending(ctx context.Context, db *sql.DB, managerID int64) ([]model.Request, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT r.id, r.user_id, r.status, r.notes, r.total_cost, r.created_at,
		        r.approved_at, r.approved_by, r.dispatched_at, r.dispatched_by,
		        p.full_name, p.branch
		 FROM requests r
		 JOIN profiles p ON p.id = r.user_id
		 WHERE r.status = 'pending' AND p.manager_id = ? AND p.deleted_at IS NULL
		 ORDER BY r.created_at, r.id`, managerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing pending approvals: %w", err)
	}
	defer rows.Close()

	var requests []model.Request
	for rows.Next() {
		var r model.Request
		var notes, branch sql.NullString
		if err := rows.Scan(&r.ID, &r.UserID, &r.Status, &notes, &r.TotalCost, &r.CreatedAt,
			&r.ApprovedAt, &r.ApprovedBy, &r.DispatchedAt, &r.DispatchedBy,
			&r.EmployeeName, &branch); err != nil {
			return nil, fmt.Errorf("scanning pending approval: %w", err)
		}
		r.Notes = notes.String
		r.EmployeeBranch = branch.String
		requests = append(requests, r)
	}
	return requests, rows.Err()
}

// ListDispatchQueue returns approved requests ordered oldest-approved-first,
// falling back to the creation time when the approval time is missing.
// FIFO dispatch is a fairness policy: whoever was approved first ships first.
func ListDispatchQueue(ctx context.Context, db *sql.DB) ([]model.Request, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT r.id, r.user_id, r.status, r.notes, r.total_cost, r.created_at,
		        r.approved_at, r.approved_by, r.dispatched_at, r.dispatched_by,
		        p.full_name, p.branch, p.cost_centre
		 FROM requests r
		 JOIN profiles p ON p.id = r.user_id
		 WHERE r.status = 'approved'
		 ORDER BY COALESCE(r.approved_at, r.created_at), r.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing dispatch queue: %w", err)
	}
	defer rows.Close()

	var requests []model.Request
	for rows.Next() {
		var r model.Request
		var notes, branch, costCentre sql.NullString
		if err := rows.Scan(&r.ID, &r.UserID, &r.Status, &notes, &r.TotalCost, &r.CreatedAt,
			&r.ApprovedAt, &r.ApprovedBy, &r.DispatchedAt, &r.DispatchedBy,
			&r.EmployeeName, &branch, &costCentre); err != nil {
			return nil, fmt.Errorf("scanning dispatch queue entry: %w", err)
		}
		r.Notes = notes.String
		r.EmployeeBranch = branch.String
		r.CostCentre = costCentre.String
		requests = append(requests, r)
	}
	return requests, rows.Err()
}

func scanRequests(rows *sql.Rows) ([]model.Request, error) {
	var requests []model.Request
	for rows.Next() {
		var r model.Request
		var notes sql.NullString
		if err := rows.Scan(&r.ID, &r.UserID, &r.Status, &notes, &r.TotalCost, &r.CreatedAt,
			&r.ApprovedAt, &r.ApprovedBy, &r.DispatchedAt, &r.DispatchedBy); err != nil {
			return nil, fmt.Errorf("scanning request: %w", err)
		}
		r.Notes = notes.String
		requests = append(requests, r)
	}
	return requests, rows.Err()
}
