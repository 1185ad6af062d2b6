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
package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/kitpack/kitpack/model"
)

type CreateOrder struct {
	OrderNumber  string          `json:"order_number"`
	CustomerName string          `json:"customer_name"`
	LineItems    []OrderLineItem `json:"line_items"`
}

type OrderLineItem struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	SKU          string `json:"sku"`
	RequestedQty int64  `json:"requested_qty"`
}

func (o *CreateOrder) ValidateCreateOrder() error {
	return validation.ValidateStruct(o,
		validation.Field(&o.OrderNumber, validation.Required),
		validation.Field(&o.LineItems, validation.Required, validation.Length(1, 0)),
	)
}

func (o *CreateOrder) ToOrder() model.Order {
	items := make([]model.OrderLineItem, 0, len(o.LineItems))
	for _, item := range o.LineItems {
		items = append(items, model.OrderLineItem{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			SKU:          item.SKU,
			RequestedQty: item.RequestedQty,
		})
	}
	return model.Order{
		OrderNumber:  o.OrderNumber,
		CustomerName: o.CustomerName,
		LineItems:    items,
	}
}

// CommitUnit carries the packer's full checklist state for this unit,
// keyed by component ID. Every required component must be checked; optional
// components are consumed only when checked.
type CommitUnit struct {
	Checklist map[string]bool `json:"checklist"`
}

type CreateComponent struct {
	Name          string `json:"name"`
	Unit          string `json:"unit"`
	CurrentStock  int64  `json:"current_stock"`
	MinStockAlert int64  `json:"min_stock_alert"`
}

func (c *CreateComponent) ValidateCreateComponent() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.CurrentStock, validation.Min(0)),
	)
}

func (c *CreateComponent) ToComponent() model.Component {
	return model.Component{
		Name:          c.Name,
		Unit:          c.Unit,
		CurrentStock:  c.CurrentStock,
		MinStockAlert: c.MinStockAlert,
	}
}

type AdjustStock struct {
	Change int64  `json:"change"`
	Reason string `json:"reason"`
}

func (a *AdjustStock) ValidateAdjustStock() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.Change, validation.Required),
		validation.Field(&a.Reason, validation.Required),
	)
}

type AddKitComponent struct {
	ComponentID     string `json:"component_id"`
	QuantityPerUnit int64  `json:"quantity_per_unit"`
	Optional        bool   `json:"optional"`
}

func (k *AddKitComponent) ValidateAddKitComponent() error {
	return validation.ValidateStruct(k,
		validation.Field(&k.ComponentID, validation.Required),
		validation.Field(&k.QuantityPerUnit, validation.Required, validation.Min(1)),
	)
}

func (k *AddKitComponent) ToBOMEntry(productID string) model.BillOfMaterialsEntry {
	return model.BillOfMaterialsEntry{
		ProductID:       productID,
		ComponentID:     k.ComponentID,
		QuantityPerUnit: k.QuantityPerUnit,
		Optional:        k.Optional,
	}
}

type UpdateKitComponent struct {
	QuantityPerUnit int64 `json:"quantity_per_unit"`
}

func (k *UpdateKitComponent) ValidateUpdateKitComponent() error {
	return validation.ValidateStruct(k,
		validation.Field(&k.QuantityPerUnit, validation.Required, validation.Min(1)),
	)
}
