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
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kitpack/kitpack/internal/apierror"
	"github.com/kitpack/kitpack/model"
)

var tracer = otel.Tracer("kitpack.packing")

// BeginUnit opens a packing session for the next unit of a line item. The
// session is advisory only; nothing is written until CommitUnit, so an
// abandoned session leaves no trace.
func (l *Kitpack) BeginUnit(ctx context.Context, orderID string, lineIndex int) (*model.PackingSession, error) {
	ctx, span := tracer.Start(ctx, "BeginUnit")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", orderID), attribute.Int("line.index", lineIndex))

	order, progress, boms, err := l.loadProgress(ctx, orderID)
	if err != nil {
		return nil, err
	}

	item, status, err := lineItemAt(order, progress, lineIndex)
	if err != nil {
		return nil, err
	}
	if status.IsComplete {
		return nil, apierror.NewAPIError(apierror.ErrPreconditionFailed,
			fmt.Sprintf("Line item %d of order '%s' is already fully packed", lineIndex, orderID), nil)
	}

	bom := boms[item.ProductID]
	checklist := make([]model.ChecklistItem, 0, len(bom))
	for _, entry := range bom {
		stock, err := l.datasource.GetComponentStock(ctx, entry.ComponentID)
		if err != nil {
			if apiErr, ok := err.(apierror.APIError); ok && apiErr.Code == apierror.ErrNotFound {
				// Component was deleted after the kit was defined. Surface
				// the row with zero stock rather than hiding it.
				stock = 0
			} else {
				return nil, err
			}
		}
		checklist = append(checklist, model.ChecklistItem{
			ComponentID:     entry.ComponentID,
			ComponentName:   entry.ComponentName,
			QuantityPerUnit: entry.QuantityPerUnit,
			Required:        !entry.Optional,
			CurrentStock:    stock,
		})
	}

	return &model.PackingSession{
		OrderID:      order.OrderID,
		LineIndex:    lineIndex,
		ProductID:    item.ProductID,
		ProductName:  item.ProductName,
		UnitNumber:   status.PackedQty + 1,
		RequestedQty: item.RequestedQty,
		Checklist:    checklist,
	}, nil
}

// CommitUnit records one packed unit. checklist carries the packer's checked
// state keyed by component ID; every required component must be checked
// before anything is written, optional components are consumed only when
// checked. The stock decrement and the ledger append land in one
// transaction, and the commit becomes the engine's single reversible pack
// until the undo window lapses.
func (l *Kitpack) CommitUnit(ctx context.Context, orderID string, lineIndex int, checklist map[string]bool) (*model.CommitResult, error) {
	ctx, span := tracer.Start(ctx, "CommitUnit")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", orderID), attribute.Int("line.index", lineIndex))

	order, progress, boms, err := l.loadProgress(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == model.StatusCompleted {
		return nil, apierror.NewAPIError(apierror.ErrConflict,
			fmt.Sprintf("Order '%s' is already completed", orderID), nil)
	}

	item, status, err := lineItemAt(order, progress, lineIndex)
	if err != nil {
		return nil, err
	}
	if status.IsComplete {
		return nil, apierror.NewAPIError(apierror.ErrPreconditionFailed,
			fmt.Sprintf("Line item %d of order '%s' is already fully packed", lineIndex, orderID), nil)
	}

	bom := boms[item.ProductID]
	for _, entry := range bom {
		if !entry.Optional && !checklist[entry.ComponentID] {
			return nil, apierror.NewAPIError(apierror.ErrChecklistIncomplete,
				fmt.Sprintf("Required component '%s' is not checked", entry.ComponentID), nil)
		}
	}

	items := consumedForUnit(bom, checklist)

	entryIDs, err := l.datasource.CommitPack(ctx, order.OrderID, items)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id":   order.OrderID,
		"line_index": lineIndex,
		"unit":       status.PackedQty + 1,
		"components": len(items),
	}).Info("unit packed")

	// Recompute from the ledger the commit just appended to.
	_, progress, _, err = l.loadProgress(ctx, orderID)
	if err != nil {
		return nil, err
	}

	completedOrder := false
	if progress.Complete() && order.Status == model.StatusPending {
		if err := l.datasource.UpdateOrderStatus(ctx, order.OrderID, model.StatusCompleted); err != nil {
			return nil, err
		}
		completedOrder = true
	}

	l.registerCompensation(order.OrderID, lineIndex, items, entryIDs, completedOrder)

	go func() {
		err := SendWebhook(NewWebhook{Event: "unit.packed", Payload: map[string]interface{}{
			"order_id":   order.OrderID,
			"line_index": lineIndex,
			"product_id": item.ProductID,
		}})
		if err != nil {
			logrus.Error(err)
		}
		if completedOrder {
			err = SendWebhook(NewWebhook{Event: "order.completed", Payload: map[string]interface{}{
				"order_id": order.OrderID,
			}})
			if err != nil {
				logrus.Error(err)
			}
		}
	}()

	return &model.CommitResult{
		OrderID:         order.OrderID,
		LineIndex:       lineIndex,
		NextTargetIndex: progress.NextTargetIndex,
		OrderCompleted:  completedOrder,
		Progress:        *progress,
	}, nil
}

func lineItemAt(order *model.Order, progress *model.OrderProgress, lineIndex int) (model.OrderLineItem, model.LineItemProgress, error) {
	if lineIndex < 0 || lineIndex >= len(order.LineItems) {
		return model.OrderLineItem{}, model.LineItemProgress{}, apierror.NewAPIError(apierror.ErrBadRequest,
			fmt.Sprintf("Order '%s' has no line item at index %d", order.OrderID, lineIndex), nil)
	}
	return order.LineItems[lineIndex], progress.LineItems[lineIndex], nil
}

// consumedForUnit maps one unit's BOM onto the components a commit will
// consume. Required entries are always included. Optional entries only when
// the packer checked them; they consume stock and appear in the ledger like
// any other usage, but reconstruction ignores them.
func consumedForUnit(bom []model.BillOfMaterialsEntry, checklist map[string]bool) []model.ConsumedComponent {
	var items []model.ConsumedComponent
	for _, entry := range bom {
		if entry.Optional && !checklist[entry.ComponentID] {
			continue
		}
		items = append(items, model.ConsumedComponent{
			ComponentID: entry.ComponentID,
			Quantity:    entry.QuantityPerUnit,
		})
	}
	return items
}
