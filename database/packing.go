/*
Copyright 2025 Kitpack Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/kitpack/kitpack/internal/apierror"
	"github.com/kitpack/kitpack/model"
)

// CommitPack applies one packed unit atomically: every consumed component is
// decremented with a stock guard and one usage ledger row is written per
// component, all inside a single transaction. Either every write lands or
// none do. Returns the ledger entry IDs in item order so a later reversal
// can retract exactly these rows.
func (d Datasource) CommitPack(ctx context.Context, orderID string, items []model.ConsumedComponent) ([]string, error) {
	tx, err := d.Conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to begin packing transaction", err)
	}

	recordedAt := time.Now()
	entryIDs := make([]string, 0, len(items))
	for _, item := range items {
		result, err := tx.ExecContext(ctx,
			`UPDATE components SET current_stock = current_stock - $1 WHERE component_id = $2 AND current_stock >= $1`,
			item.Quantity, item.ComponentID,
		)
		if err != nil {
			_ = tx.Rollback()
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to decrement component stock", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			_ = tx.Rollback()
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to decrement component stock", err)
		}
		if affected == 0 {
			_ = tx.Rollback()
			return nil, apierror.NewAPIError(apierror.ErrInsufficientStock, fmt.Sprintf("Insufficient stock for component '%s'", item.ComponentID), nil)
		}

		entryID := model.GenerateUUIDWithSuffix("usg")
		_, err = tx.ExecContext(ctx,
			`INSERT INTO usage_ledger (entry_id, order_id, component_id, quantity_used, recorded_at) VALUES ($1, $2, $3, $4, $5)`,
			entryID, orderID, item.ComponentID, item.Quantity, recordedAt,
		)
		if err != nil {
			_ = tx.Rollback()
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to record usage ledger entry", err)
		}
		entryIDs = append(entryIDs, entryID)
	}

	if err := tx.Commit(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to commit packing transaction", err)
	}
	return entryIDs, nil
}

// ReversePack is the exact inverse of a prior CommitPack: stock is restored
// and the ledger rows written by that commit are deleted, in one transaction.
// items and entryIDs must be the commit's outputs, index aligned. When the
// commit completed the order, reopenOrder flips it back to pending inside
// the same transaction so the reversal and the status never diverge.
func (d Datasource) ReversePack(ctx context.Context, orderID string, items []model.ConsumedComponent, entryIDs []string, reopenOrder bool) error {
	if len(items) != len(entryIDs) {
		return apierror.NewAPIError(apierror.ErrBadRequest, "Reversal items and ledger entry IDs are misaligned", nil)
	}

	tx, err := d.Conn.BeginTx(ctx, nil)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to begin reversal transaction", err)
	}

	for i, item := range items {
		_, err := tx.ExecContext(ctx,
			`UPDATE components SET current_stock = current_stock + $1 WHERE component_id = $2`,
			item.Quantity, item.ComponentID,
		)
		if err != nil {
			_ = tx.Rollback()
			return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to restore component stock", err)
		}

		result, err := tx.ExecContext(ctx,
			`DELETE FROM usage_ledger WHERE entry_id = $1 AND order_id = $2`,
			entryIDs[i], orderID,
		)
		if err != nil {
			_ = tx.Rollback()
			return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retract usage ledger entry", err)
		}
		deleted, err := result.RowsAffected()
		if err != nil {
			_ = tx.Rollback()
			return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retract usage ledger entry", err)
		}
		if deleted == 0 {
			_ = tx.Rollback()
			return apierror.NewAPIError(apierror.ErrConflict, fmt.Sprintf("Ledger entry '%s' is missing, reversal aborted", entryIDs[i]), nil)
		}
	}

	if reopenOrder {
		_, err := tx.ExecContext(ctx,
			`UPDATE orders SET status = $1 WHERE order_id = $2`,
			model.StatusPending, orderID,
		)
		if err != nil {
			_ = tx.Rollback()
			return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to reopen order", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to commit reversal transaction", err)
	}
	return nil
}
