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

package kitpack

import (
	"context"

	"github.com/kitpack/kitpack/internal/apierror"
	"github.com/kitpack/kitpack/model"
)

// GetBOM resolves the kit definition for a product. An empty slice means the
// product has no kit; its units pack without consuming anything.
func (l *Kitpack) GetBOM(ctx context.Context, productID string) ([]model.BillOfMaterialsEntry, error) {
	ctx, span := tracer.Start(ctx, "GetBOM")
	defer span.End()
	return l.datasource.ResolveBOM(ctx, productID)
}

// AddBOMEntry appends a component requirement to a product's kit. The
// component must exist; the entry lands at the end of the kit's stable
// ordering.
func (l *Kitpack) AddBOMEntry(ctx context.Context, entry model.BillOfMaterialsEntry) (model.BillOfMaterialsEntry, error) {
	ctx, span := tracer.Start(ctx, "AddBOMEntry")
	defer span.End()

	if entry.ProductID == "" {
		return model.BillOfMaterialsEntry{}, apierror.NewAPIError(apierror.ErrInvalidInput, "A kit entry needs a product ID", nil)
	}
	if entry.QuantityPerUnit <= 0 {
		return model.BillOfMaterialsEntry{}, apierror.NewAPIError(apierror.ErrInvalidInput, "Quantity per unit must be positive", nil)
	}
	if _, err := l.datasource.GetComponent(ctx, entry.ComponentID); err != nil {
		return model.BillOfMaterialsEntry{}, err
	}

	return l.datasource.AddBOMEntry(ctx, entry)
}

func (l *Kitpack) UpdateBOMEntryQuantity(ctx context.Context, entryID string, quantityPerUnit int64) error {
	ctx, span := tracer.Start(ctx, "UpdateBOMEntryQuantity")
	defer span.End()

	if quantityPerUnit <= 0 {
		return apierror.NewAPIError(apierror.ErrInvalidInput, "Quantity per unit must be positive", nil)
	}
	return l.datasource.UpdateBOMEntryQuantity(ctx, entryID, quantityPerUnit)
}

func (l *Kitpack) DeleteBOMEntry(ctx context.Context, entryID string) error {
	ctx, span := tracer.Start(ctx, "DeleteBOMEntry")
	defer span.End()
	return l.datasource.DeleteBOMEntry(ctx, entryID)
}
