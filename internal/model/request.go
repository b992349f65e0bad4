package model

import "time"

// Request represents one employee's submitted order, moving through the
// approval lifecycle: pending -> approved -> dispatched, or pending -> rejected.
type Request struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	Status       string     `json:"status"`
	Notes        string     `json:"notes,omitempty"`
	TotalCost    float64    `json:"total_cost"`
	CreatedAt    time.Time  `json:"created_at"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`
	ApprovedBy   *int64     `json:"approved_by,omitempty"`
	DispatchedAt *time.Time `json:"dispatched_at,omitempty"`
	DispatchedBy *int64     `json:"dispatched_by,omitempty"`

	// Joined fields (not always populated).
	EmployeeName   string `json:"employee_name,omitempty"`
	EmployeeBranch string `json:"employee_branch,omitempty"`
	CostCentre     string `json:"cost_centre,omitempty"`
}

// Request statuses. Dispatched and rejected are terminal.
const (
	StatusPending    = "pending"
	StatusApproved   = "approved"
	StatusDispatched = "dispatched"
	StatusRejected   = "rejected"
)

// RequestItem is a line on a request. UnitCost is snapshotted from the
// catalog at submission time and never changes afterwards, so historical
// order totals are unaffected by later catalog price edits.
type RequestItem struct {
	ID        int64   `json:"id"`
	RequestID int64   `json:"request_id"`
	ItemID    int64   `json:"item_id"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
	UnitCost  float64 `json:"unit_cost"`

	// Joined field (not always populated).
	ItemName string `json:"item_name,omitempty"`
}

// RequestCost holds ancillary costs an admin can attach to a request
// independently of its line items. At most one row per request.
type RequestCost struct {
	RequestID      int64   `json:"request_id"`
	EmbroideryCost float64 `json:"embroidery_cost"`
	ShippingCost   float64 `json:"shipping_cost"`
}

// Line-item quantity bounds.
const (
	MinLineQuantity = 1
	MaxLineQuantity = 10
)

// UniformSizes is the standard uniform size set, smallest first.
var UniformSizes = []string{"XS", "S", "M", "L", "XL", "2XL"}

// DefaultUniformSize is assigned when a uniform line has no size selected:
// the middle value of the standard size set.
func DefaultUniformSize() string {
	return UniformSizes[(len(UniformSizes)-1)/2]
}

// ValidUniformSize reports whether size is in the standard size set.
func ValidUniformSize(size string) bool {
	for _, s := range UniformSizes {
		if s == size {
			return true
		}
	}
	return false
}

// ItemsCost sums the snapshotted line costs of a request.
func ItemsCost(lines []RequestItem) float64 {
	var sum float64
	for _, l := range lines {
		sum += l.UnitCost * float64(l.Quantity)
	}
	return sum
}
