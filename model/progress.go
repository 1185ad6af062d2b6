package model

// LineItemProgress is the reconstructed completion state of one line item.
type LineItemProgress struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	RequestedQty int64  `json:"requested_qty"`
	PackedQty    int64  `json:"packed_qty"`
	IsComplete   bool   `json:"is_complete"`
}

// OrderProgress is the full reconstructed state of an order. NextTargetIndex
// is the index of the first incomplete line item, or -1 when every line item
// is complete.
type OrderProgress struct {
	OrderID         string             `json:"order_id"`
	LineItems       []LineItemProgress `json:"line_items"`
	PercentComplete float64            `json:"percent_complete"`
	NextTargetIndex int                `json:"next_target_index"`
}

// Complete reports whether every line item of the order is fully packed.
func (p *OrderProgress) Complete() bool {
	return p.NextTargetIndex == -1
}

// ReconstructProgress derives how many whole units of each line item are
// fully packed, purely from the usage ledger. The ledger does not attribute
// consumption to units or line items, so all entries for the order are summed
// into a single pool per component and allocated greedily: line items in
// slice order, units in increasing index order. Ties are always broken that
// way, making the result deterministic for a fixed BOM and ledger.
//
// Only non-optional BOM entries participate: they gate completability and
// are debited from the pool when a unit completes. Optional usage stays in
// the pool untouched and has no bearing on completion. A line item whose BOM
// is empty consumes nothing and is trivially complete.
//
// The function is side-effect-free; it mutates only its local copy of the
// pool and may be re-run at any time against the current ledger.
func ReconstructProgress(items []OrderLineItem, boms map[string][]BillOfMaterialsEntry, entries []UsageLedgerEntry) OrderProgress {
	pool := make(map[string]int64, len(entries))
	for _, entry := range entries {
		pool[entry.ComponentID] += entry.QuantityUsed
	}

	progress := OrderProgress{
		LineItems:       make([]LineItemProgress, 0, len(items)),
		NextTargetIndex: -1,
	}

	var totalRequested, totalPacked int64
	for _, item := range items {
		bom := boms[item.ProductID]
		packed := countCompletableUnits(item.RequestedQty, bom, pool)

		status := LineItemProgress{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			RequestedQty: item.RequestedQty,
			PackedQty:    packed,
			IsComplete:   packed >= item.RequestedQty,
		}
		progress.LineItems = append(progress.LineItems, status)

		totalRequested += item.RequestedQty
		totalPacked += packed
	}

	if totalRequested > 0 {
		progress.PercentComplete = float64(totalPacked) / float64(totalRequested)
	}
	for i, status := range progress.LineItems {
		if !status.IsComplete {
			progress.NextTargetIndex = i
			break
		}
	}
	return progress
}

// countCompletableUnits completes units one at a time against the pool,
// debiting non-optional requirements as it goes. The pool only shrinks, so
// the first unit that cannot complete ends the line item.
func countCompletableUnits(requested int64, bom []BillOfMaterialsEntry, pool map[string]int64) int64 {
	if len(bom) == 0 {
		// No kit: the unit consumes nothing and cannot be blocked.
		return requested
	}

	var packed int64
	for unit := int64(0); unit < requested; unit++ {
		if !unitCompletable(bom, pool) {
			break
		}
		for _, entry := range bom {
			if entry.Optional {
				continue
			}
			pool[entry.ComponentID] -= entry.QuantityPerUnit
		}
		packed++
	}
	return packed
}

func unitCompletable(bom []BillOfMaterialsEntry, pool map[string]int64) bool {
	for _, entry := range bom {
		if entry.Optional {
			continue
		}
		if pool[entry.ComponentID] < entry.QuantityPerUnit {
			return false
		}
	}
	return true
}
