package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Status transitions are single conditional UPDATEs keyed on the expected
// prior status. Three independent roles mutate requests with no shared lock,
// so a lost conditional update is the signal that someone else got there
// first; it surfaces as ErrInvalidTransition and the caller reloads.
//
// The manager guard is folded into the same statement: a manager can only
// move requests whose owner reports to them. A guard failure is deliberately
// indistinguishable from a stale status.

// ApproveRequest moves a pending request to approved, recording the approver
// and the approval time. Only the owner's manager may approve.
func ApproveRequest(ctx context.Context, db *sql.DB, requestID, managerID int64) error {
	result, err := db.ExecContext(ctx,
		`UPDATE requests
		 SET status = 'approved', approved_by = ?, approved_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status = 'pending'
		   AND EXISTS (SELECT 1 FROM profiles p
		               WHERE p.id = requests.user_id AND p.manager_id = ? AND p.deleted_at IS NULL)`,
		managerID, requestID, managerID,
	)
	if err != nil {
		return fmt.Errorf("approving request: %w", err)
	}
	return checkTransition(ctx, db, result, requestID, "approving")
}

// RejectRequest moves a pending request to rejected. Same ownership guard as
// ApproveRequest. Rejected is terminal.
func RejectRequest(ctx context.Context, db *sql.DB, requestID, managerID int64) error {
	result, err := db.ExecContext(ctx,
		`UPDATE requests
		 SET status = 'rejected'
		 WHERE id = ? AND status = 'pending'
		   AND EXISTS (SELECT 1 FROM profiles p
		               WHERE p.id = requests.user_id AND p.manager_id = ? AND p.deleted_at IS NULL)`,
		requestID, managerID,
	)
	if err != nil {
		return fmt.Errorf("rejecting request: %w", err)
	}
	return checkTransition(ctx, db, result, requestID, "rejecting")
}

// DispatchRequest moves an approved request to dispatched, recording the
// dispatching admin and the dispatch time. Dispatched is terminal; a request
// can never go from pending straight to dispatched, and re-dispatching fails
// rather than silently succeeding, so dispatch side effects fire at most once.
func DispatchRequest(ctx context.Context, db *sql.DB, requestID, adminID int64) error {
	result, err := db.ExecContext(ctx,
		`UPDATE requests
		 SET status = 'dispatched', dispatched_by = ?, dispatched_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status = 'approved'`,
		adminID, requestID,
	)
	if err != nil {
		return fmt.Errorf("dispatching request: %w", err)
	}
	return checkTransition(ctx, db, result, requestID, "dispatching")
}

// checkTransition interprets a conditional update that affected no rows:
// a missing request is ErrNotFound, everything else lost the status race
// (or failed the ownership guard) and is ErrInvalidTransition.
func checkTransition(ctx context.Context, db *sql.DB, result sql.Result, requestID int64, op string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s request: %w", op, err)
	}
	if n > 0 {
		return nil
	}

	existing, err := GetRequest(ctx, db, requestID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("request %d: %w", requestID, ErrNotFound)
	}
	return fmt.Errorf("request %d is %s: %w", requestID, existing.Status, ErrInvalidTransition)
}
