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
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/kitpack/kitpack/internal/apierror"
	"github.com/kitpack/kitpack/model"
)

func TestGetBOMKeepsDefinitionOrder(t *testing.T) {
	datasource, mock, err := newTestDataSource()
	if err != nil {
		t.Fatalf("Error creating test data source: %s", err)
	}
	d, err := NewKitpack(datasource)
	if err != nil {
		t.Fatalf("Error creating Kitpack instance: %s", err)
	}

	expectResolveBOM(mock, "prd_gift", giftBoxBOMRows())

	entries, err := d.GetBOM(context.Background(), "prd_gift")
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "cmp_box", entries[0].ComponentID)
	assert.False(t, entries[0].Optional)
	assert.True(t, entries[1].Optional)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestAddBOMEntry(t *testing.T) {
	datasource, mock, err := newTestDataSource()
	if err != nil {
		t.Fatalf("Error creating test data source: %s", err)
	}
	d, err := NewKitpack(datasource)
	if err != nil {
		t.Fatalf("Error creating Kitpack instance: %s", err)
	}

	mock.ExpectQuery("SELECT id, component_id, name, unit, current_stock, min_stock_alert, created_at FROM components WHERE component_id =").
		WithArgs("cmp_box").
		WillReturnRows(sqlmock.NewRows([]string{"id", "component_id", "name", "unit", "current_stock", "min_stock_alert", "created_at"}).
			AddRow(1, "cmp_box", "Box", "pcs", 10, 2, time.Now()))

	mock.ExpectQuery("INSERT INTO bill_of_materials").
		WithArgs(sqlmock.AnyArg(), "prd_gift", "cmp_box", int64(2), false).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	entry, err := d.AddBOMEntry(context.Background(), model.BillOfMaterialsEntry{
		ProductID:       "prd_gift",
		ComponentID:     "cmp_box",
		QuantityPerUnit: 2,
	})
	assert.NoError(t, err)
	assert.Contains(t, entry.EntryID, "bom_")
	assert.Equal(t, int64(7), entry.ID)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestAddBOMEntryRejectsUnknownComponent(t *testing.T) {
	datasource, mock, err := newTestDataSource()
	if err != nil {
		t.Fatalf("Error creating test data source: %s", err)
	}
	d, err := NewKitpack(datasource)
	if err != nil {
		t.Fatalf("Error creating Kitpack instance: %s", err)
	}

	mock.ExpectQuery("SELECT id, component_id, name, unit, current_stock, min_stock_alert, created_at FROM components WHERE component_id =").
		WithArgs("cmp_ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "component_id", "name", "unit", "current_stock", "min_stock_alert", "created_at"}))

	_, err = d.AddBOMEntry(context.Background(), model.BillOfMaterialsEntry{
		ProductID:       "prd_gift",
		ComponentID:     "cmp_ghost",
		QuantityPerUnit: 1,
	})
	assert.Error(t, err)

	apiErr, ok := err.(apierror.APIError)
	assert.True(t, ok)
	assert.Equal(t, apierror.ErrNotFound, apiErr.Code)
}

func TestAddBOMEntryRejectsNonPositiveQuantity(t *testing.T) {
	datasource, _, err := newTestDataSource()
	if err != nil {
		t.Fatalf("Error creating test data source: %s", err)
	}
	d, err := NewKitpack(datasource)
	if err != nil {
		t.Fatalf("Error creating Kitpack instance: %s", err)
	}

	_, err = d.AddBOMEntry(context.Background(), model.BillOfMaterialsEntry{
		ProductID:       "prd_gift",
		ComponentID:     "cmp_box",
		QuantityPerUnit: 0,
	})
	assert.Error(t, err)

	apiErr, ok := err.(apierror.APIError)
	assert.True(t, ok)
	assert.Equal(t, apierror.ErrInvalidInput, apiErr.Code)
}

func TestUpdateBOMEntryQuantity(t *testing.T) {
	datasource, mock, err := newTestDataSource()
	if err != nil {
		t.Fatalf("Error creating test data source: %s", err)
	}
	d, err := NewKitpack(datasource)
	if err != nil {
		t.Fatalf("Error creating Kitpack instance: %s", err)
	}

	mock.ExpectExec("UPDATE bill_of_materials SET quantity_per_unit =").
		WithArgs(int64(3), "bom_1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = d.UpdateBOMEntryQuantity(context.Background(), "bom_1", 3)
	assert.NoError(t, err)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestDeleteBOMEntryNotFound(t *testing.T) {
	datasource, mock, err := newTestDataSource()
	if err != nil {
		t.Fatalf("Error creating test data source: %s", err)
	}
	d, err := NewKitpack(datasource)
	if err != nil {
		t.Fatalf("Error creating Kitpack instance: %s", err)
	}

	mock.ExpectExec("DELETE FROM bill_of_materials").
		WithArgs("bom_missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = d.DeleteBOMEntry(context.Background(), "bom_missing")
	assert.Error(t, err)

	apiErr, ok := err.(apierror.APIError)
	assert.True(t, ok)
	assert.Equal(t, apierror.ErrNotFound, apiErr.Code)
}
