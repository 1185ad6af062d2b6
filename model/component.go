package model

import "time"

// Component is a packaging part tracked by stock count. Stock only moves
// through pack commits, compensations and manual adjustments.
type Component struct {
	ID            int64     `json:"-"`
	ComponentID   string    `json:"component_id"`
	Name          string    `json:"name"`
	Unit          string    `json:"unit,omitempty"`
	CurrentStock  int64     `json:"current_stock"`
	MinStockAlert int64     `json:"min_stock_alert"`
	CreatedAt     time.Time `json:"created_at"`
}

// StockAdjustment is the audit row written alongside every manual stock
// change. Pack commits and compensations do not write adjustments; they are
// reconstructed from the usage ledger instead.
type StockAdjustment struct {
	ID             int64     `json:"-"`
	AdjustmentID   string    `json:"adjustment_id"`
	ComponentID    string    `json:"component_id"`
	QuantityChange int64     `json:"quantity_change"`
	Reason         string    `json:"reason"`
	AdjustedAt     time.Time `json:"adjusted_at"`
}
