package database

import (
	"context"

	"github.com/kitpack/kitpack/internal/apierror"
	"github.com/kitpack/kitpack/model"
)

// GetUsageLedgerEntries returns every usage row recorded against an order,
// oldest first. The slice is the sole input to progress reconstruction so the
// ordering here must stay stable.
func (d Datasource) GetUsageLedgerEntries(ctx context.Context, orderID string) ([]model.UsageLedgerEntry, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT id, entry_id, order_id, component_id, quantity_used, recorded_at
		FROM usage_ledger
		WHERE order_id = $1
		ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve usage ledger entries", err)
	}
	defer rows.Close()

	var entries []model.UsageLedgerEntry
	for rows.Next() {
		entry := model.UsageLedgerEntry{}
		err = rows.Scan(&entry.ID, &entry.EntryID, &entry.OrderID, &entry.ComponentID, &entry.QuantityUsed, &entry.RecordedAt)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan usage ledger row", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error iterating usage ledger rows", err)
	}
	return entries, nil
}
