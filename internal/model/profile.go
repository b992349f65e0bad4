package model

import (
	"fmt"
	"time"
)

// Profile represents a portal user: an employee, a manager, or an admin.
// ManagerID is a weak reference: deleting a manager orphans the reference,
// it never cascades to the reports.
type Profile struct {
	ID           int64      `json:"id"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	Branch       string     `json:"branch,omitempty"`
	CostCentre   string     `json:"cost_centre,omitempty"`
	ManagerID    *int64     `json:"manager_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// Roles.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// RoleAtLeast checks if role meets or exceeds the minimum required role.
// Unknown roles fail closed.
func RoleAtLeast(role, minimum string) bool {
	levels := map[string]int{
		RoleAdmin:    3,
		RoleManager:  2,
		RoleEmployee: 1,
	}
	return levels[minimum] > 0 && levels[role] >= levels[minimum]
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleManager || role == RoleEmployee
}

// ValidatePassword checks password requirements.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}
