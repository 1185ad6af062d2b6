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

	"github.com/kitpack/kitpack/model"
)

// IDataSource defines the interface for data source operations, grouping related functionalities.
type IDataSource interface {
	order     // Order persistence and lifecycle
	component // Component stock reads and manual adjustments
	bom       // Bill-of-materials resolution and kit management
	ledger    // Usage ledger reads
	packing   // Atomic pack commit and its reversal
}

// order defines methods for handling orders.
type order interface {
	CreateOrder(ctx context.Context, ord model.Order) (model.Order, error)
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
	GetAllOrders(ctx context.Context, status string, limit, offset int) ([]model.Order, error)
	GetOrdersPendingPacking(ctx context.Context) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status string) error
}

// component defines methods for handling components and their stock.
type component interface {
	CreateComponent(ctx context.Context, cmp model.Component) (model.Component, error)
	GetComponent(ctx context.Context, componentID string) (*model.Component, error)
	GetAllComponents(ctx context.Context) ([]model.Component, error)
	GetComponentStock(ctx context.Context, componentID string) (int64, error)
	GetLowStockComponents(ctx context.Context) ([]model.Component, error)
	AdjustComponentStock(ctx context.Context, componentID string, change int64, reason string) error
}

// bom defines methods for resolving and managing product kits.
type bom interface {
	ResolveBOM(ctx context.Context, productID string) ([]model.BillOfMaterialsEntry, error)
	AddBOMEntry(ctx context.Context, entry model.BillOfMaterialsEntry) (model.BillOfMaterialsEntry, error)
	UpdateBOMEntryQuantity(ctx context.Context, entryID string, quantity int64) error
	DeleteBOMEntry(ctx context.Context, entryID string) error
}

// ledger defines methods for reading the usage ledger. Writes happen only
// through the packing interface so that stock and ledger can never diverge.
type ledger interface {
	GetUsageLedgerEntries(ctx context.Context, orderID string) ([]model.UsageLedgerEntry, error)
}

// packing defines the two atomic operations of the fulfillment engine.
// CommitPack decrements stock and appends ledger entries in one transaction;
// ReversePack restores stock and retracts exactly the entries a commit
// appended. Both are all-or-nothing.
type packing interface {
	CommitPack(ctx context.Context, orderID string, items []model.ConsumedComponent) ([]string, error)
	ReversePack(ctx context.Context, orderID string, items []model.ConsumedComponent, entryIDs []string, reopenOrder bool) error
}
