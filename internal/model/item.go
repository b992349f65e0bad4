package model

import "time"

// Item represents a catalog entry with its current stock balance.
// The balance is only ever mutated through stock receipts.
type Item struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Category          string    `json:"category"`
	Size              string    `json:"size,omitempty"`
	Supplier          string    `json:"supplier,omitempty"`
	StockBalance      int       `json:"stock_balance"`
	UnitCost          *float64  `json:"unit_cost,omitempty"`
	LowStockThreshold *int      `json:"low_stock_threshold,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Item categories.
const (
	CategoryUniform   = "Uniform"
	CategoryLaptop    = "Laptop"
	CategoryPhone     = "Phone"
	CategoryAccessory = "Accessory"
)

// Categories lists all item categories.
var Categories = []string{CategoryUniform, CategoryLaptop, CategoryPhone, CategoryAccessory}

// ValidCategory reports whether category is a known item category.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// IsLowStock reports whether the item is at or below its low-stock threshold.
// Items without a threshold are never low on stock.
func (i *Item) IsLowStock() bool {
	return i.LowStockThreshold != nil && i.StockBalance <= *i.LowStockThreshold
}

// UnitCostValue returns the unit cost, treating an unset cost as 0.
func (i *Item) UnitCostValue() float64 {
	if i.UnitCost == nil {
		return 0
	}
	return *i.UnitCost
}

// StockReceipt records a quantity of an item received into stock.
// Receipts are append-only; the owning item's balance is incremented
// by the same quantity in the same transaction.
type StockReceipt struct {
	ID           int64     `json:"id"`
	ItemID       int64     `json:"item_id"`
	QtyReceived  int       `json:"qty_received"`
	ReceivedDate string    `json:"received_date"`
	CreatedAt    time.Time `json:"created_at"`

	// Joined field (not always populated).
	ItemName string `json:"item_name,omitempty"`
}
