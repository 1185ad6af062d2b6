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

	"github.com/kitpack/kitpack/model"
)

// GetOrderProgress reconstructs the packing state of an order from its usage
// ledger. Nothing about progress is stored; this derivation is the single
// source of truth.
func (l *Kitpack) GetOrderProgress(ctx context.Context, orderID string) (*model.OrderProgress, error) {
	ctx, span := tracer.Start(ctx, "GetOrderProgress")
	defer span.End()

	_, progress, _, err := l.loadProgress(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return progress, nil
}

// loadProgress fetches the order, its ledger entries and the BOM of every
// distinct product on the order, then runs reconstruction. BOMs are resolved
// once per product even when a product appears on multiple line items.
func (l *Kitpack) loadProgress(ctx context.Context, orderID string) (*model.Order, *model.OrderProgress, map[string][]model.BillOfMaterialsEntry, error) {
	order, err := l.datasource.GetOrder(ctx, orderID)
	if err != nil {
		return nil, nil, nil, err
	}

	entries, err := l.datasource.GetUsageLedgerEntries(ctx, orderID)
	if err != nil {
		return nil, nil, nil, err
	}

	boms := make(map[string][]model.BillOfMaterialsEntry)
	for _, item := range order.LineItems {
		if _, resolved := boms[item.ProductID]; resolved {
			continue
		}
		bom, err := l.datasource.ResolveBOM(ctx, item.ProductID)
		if err != nil {
			return nil, nil, nil, err
		}
		boms[item.ProductID] = bom
	}

	progress := model.ReconstructProgress(order.LineItems, boms, entries)
	progress.OrderID = order.OrderID
	return order, &progress, boms, nil
}
