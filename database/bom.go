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
	"database/sql"
	"fmt"

	"github.com/kitpack/kitpack/internal/apierror"
	"github.com/kitpack/kitpack/model"
)

// ResolveBOM returns the kit definition for a product in stable insertion
// order. Entries referencing a deleted component still resolve with an empty
// component name.
func (d Datasource) ResolveBOM(ctx context.Context, productID string) ([]model.BillOfMaterialsEntry, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT b.id, b.entry_id, b.product_id, b.component_id, COALESCE(c.name, ''), b.quantity_per_unit, b.optional
		FROM bill_of_materials b
		LEFT JOIN components c ON c.component_id = b.component_id
		WHERE b.product_id = $1
		ORDER BY b.id ASC
	`, productID)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to resolve bill of materials", err)
	}
	defer rows.Close()

	var entries []model.BillOfMaterialsEntry
	for rows.Next() {
		entry := model.BillOfMaterialsEntry{}
		err = rows.Scan(&entry.ID, &entry.EntryID, &entry.ProductID, &entry.ComponentID, &entry.ComponentName, &entry.QuantityPerUnit, &entry.Optional)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan bill of materials row", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error iterating bill of materials rows", err)
	}
	return entries, nil
}

func (d Datasource) AddBOMEntry(ctx context.Context, entry model.BillOfMaterialsEntry) (model.BillOfMaterialsEntry, error) {
	entry.EntryID = model.GenerateUUIDWithSuffix("bom")

	err := d.Conn.QueryRowContext(ctx,
		`INSERT INTO bill_of_materials (entry_id, product_id, component_id, quantity_per_unit, optional) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		entry.EntryID, entry.ProductID, entry.ComponentID, entry.QuantityPerUnit, entry.Optional,
	).Scan(&entry.ID)
	if err != nil {
		return model.BillOfMaterialsEntry{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to add bill of materials entry", err)
	}
	return entry, nil
}

func (d Datasource) UpdateBOMEntryQuantity(ctx context.Context, entryID string, quantityPerUnit int64) error {
	result, err := d.Conn.ExecContext(ctx,
		`UPDATE bill_of_materials SET quantity_per_unit = $1 WHERE entry_id = $2`,
		quantityPerUnit, entryID,
	)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update bill of materials entry", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update bill of materials entry", err)
	}
	if affected == 0 {
		return apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Bill of materials entry with ID '%s' not found", entryID), sql.ErrNoRows)
	}
	return nil
}

func (d Datasource) DeleteBOMEntry(ctx context.Context, entryID string) error {
	result, err := d.Conn.ExecContext(ctx, `DELETE FROM bill_of_materials WHERE entry_id = $1`, entryID)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to delete bill of materials entry", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to delete bill of materials entry", err)
	}
	if affected == 0 {
		return apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Bill of materials entry with ID '%s' not found", entryID), sql.ErrNoRows)
	}
	return nil
}
