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

	"github.com/kitpack/kitpack/internal/apierror"
	"github.com/kitpack/kitpack/model"
)

// CreateOrder persists a new order in pending status. Line item order is
// fixed here forever; reconstruction and target advancement depend on it.
func (l *Kitpack) CreateOrder(ctx context.Context, order model.Order) (model.Order, error) {
	ctx, span := tracer.Start(ctx, "CreateOrder")
	defer span.End()

	if len(order.LineItems) == 0 {
		return model.Order{}, apierror.NewAPIError(apierror.ErrInvalidInput, "An order needs at least one line item", nil)
	}
	for i, item := range order.LineItems {
		if item.ProductID == "" {
			return model.Order{}, apierror.NewAPIError(apierror.ErrInvalidInput,
				fmt.Sprintf("Line item %d is missing a product ID", i), nil)
		}
		if item.RequestedQty < 0 {
			return model.Order{}, apierror.NewAPIError(apierror.ErrInvalidInput,
				fmt.Sprintf("Line item %d has a negative requested quantity", i), nil)
		}
	}

	order.Status = model.StatusPending
	return l.datasource.CreateOrder(ctx, order)
}

func (l *Kitpack) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	ctx, span := tracer.Start(ctx, "GetOrder")
	defer span.End()
	return l.datasource.GetOrder(ctx, orderID)
}

func (l *Kitpack) GetAllOrders(ctx context.Context, status string, limit, offset int) ([]model.Order, error) {
	ctx, span := tracer.Start(ctx, "GetAllOrders")
	defer span.End()

	if status != "" && status != model.StatusPending && status != model.StatusCompleted {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput,
			fmt.Sprintf("Unknown order status '%s'", status), nil)
	}
	return l.datasource.GetAllOrders(ctx, status, limit, offset)
}

// GetOrdersPendingPacking returns the packing queue, oldest pending order
// first.
func (l *Kitpack) GetOrdersPendingPacking(ctx context.Context) ([]model.Order, error) {
	ctx, span := tracer.Start(ctx, "GetOrdersPendingPacking")
	defer span.End()
	return l.datasource.GetOrdersPendingPacking(ctx)
}
