package model

import "time"

// ChecklistItem is one row of the checklist a packer works through for a
// single unit. Required mirrors the BOM entry's optional flag; only required
// rows gate the commit.
type ChecklistItem struct {
	ComponentID     string `json:"component_id"`
	ComponentName   string `json:"component_name"`
	QuantityPerUnit int64  `json:"quantity_per_unit"`
	Required        bool   `json:"required"`
	Checked         bool   `json:"checked"`
	CurrentStock    int64  `json:"current_stock"`
}

// PackingSession is the ephemeral state for packing one unit of one line
// item. It is never persisted; abandoning it has no side effects.
type PackingSession struct {
	OrderID      string          `json:"order_id"`
	LineIndex    int             `json:"line_index"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	UnitNumber   int64           `json:"unit_number"` // 1-based unit about to be packed
	RequestedQty int64           `json:"requested_qty"`
	Checklist    []ChecklistItem `json:"checklist"`
}

// ConsumedComponent is one component/quantity pair touched by a pack commit.
type ConsumedComponent struct {
	ComponentID string `json:"component_id"`
	Quantity    int64  `json:"quantity"`
}

// PendingCompensation captures everything needed to exactly reverse one
// committed pack: the stock decrements to restore and the ledger entries to
// retract. At most one is held per engine instance; registering a new one
// silently discards the previous.
type PendingCompensation struct {
	OrderID        string              `json:"order_id"`
	LineIndex      int                 `json:"line_index"`
	Items          []ConsumedComponent `json:"items"`
	EntryIDs       []string            `json:"entry_ids"`
	CompletedOrder bool                `json:"completed_order"`
	CreatedAt      time.Time           `json:"created_at"`
	ExpiresAt      time.Time           `json:"expires_at"`
}

// Expired reports whether the compensation window has elapsed at the given
// instant. Expiry is evaluated lazily at invocation time.
func (p *PendingCompensation) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

// CommitResult is returned by a successful unit commit. Exactly one of
// NextTargetIndex (>= 0) or OrderCompleted is meaningful.
type CommitResult struct {
	OrderID         string        `json:"order_id"`
	LineIndex       int           `json:"line_index"`
	NextTargetIndex int           `json:"next_target_index"`
	OrderCompleted  bool          `json:"order_completed"`
	Progress        OrderProgress `json:"progress"`
}
