package model

import "time"

// UsageLedgerEntry records one component consumption event for an order.
// The ledger is append-only; entries are only ever removed by a compensating
// reversal, and the reconstruction treats all entries for an order as an
// unattributed pool per component.
type UsageLedgerEntry struct {
	ID           int64     `json:"-"`
	EntryID      string    `json:"entry_id"`
	OrderID      string    `json:"order_id"`
	ComponentID  string    `json:"component_id"`
	QuantityUsed int64     `json:"quantity_used"`
	RecordedAt   time.Time `json:"recorded_at"`
}
