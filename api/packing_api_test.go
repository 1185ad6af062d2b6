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

package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/kitpack/kitpack"
	"github.com/kitpack/kitpack/config"
	"github.com/kitpack/kitpack/database"
	"github.com/kitpack/kitpack/model"
)

type TestRequest struct {
	Payload  io.Reader
	Router   *gin.Engine
	Response interface{}
	Method   string
	Route    string
	Header   map[string]string
}

func SetUpTestRequest(s TestRequest) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(s.Method, s.Route, s.Payload)
	for key, value := range s.Header {
		req.Header.Set(key, value)
	}
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	s.Router.ServeHTTP(resp, req)

	err := json.NewDecoder(resp.Body).Decode(&s.Response)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func setupRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	config.MockConfig(&config.Configuration{})

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open stub database: %s", err)
	}
	t.Cleanup(func() { db.Close() })

	engine, err := kitpack.NewKitpack(database.Datasource{Conn: db})
	if err != nil {
		t.Fatalf("failed to create engine: %s", err)
	}
	a, err := NewAPI(engine)
	if err != nil {
		t.Fatalf("failed to create api: %s", err)
	}
	return a.Router(), mock
}

func TestGetOrderProgressEndpoint(t *testing.T) {
	router, mock := setupRouter(t)

	lineItems := `[{"product_id":"prd_gift","product_name":"Gift Box","requested_qty":2}]`
	mock.ExpectQuery("SELECT id, order_id, order_number, customer_name, status, line_items, created_at FROM orders WHERE order_id =").
		WithArgs("ord_1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "order_number", "customer_name", "status", "line_items", "created_at"}).
			AddRow(1, "ord_1", "SO-1001", "Ada", model.StatusPending, lineItems, time.Now()))
	mock.ExpectQuery("SELECT id, entry_id, order_id, component_id, quantity_used, recorded_at FROM usage_ledger WHERE order_id =").
		WithArgs("ord_1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "entry_id", "order_id", "component_id", "quantity_used", "recorded_at"}).
			AddRow(1, "usg_1", "ord_1", "cmp_box", 1, time.Now()))
	mock.ExpectQuery("SELECT b.id, b.entry_id, b.product_id, b.component_id, COALESCE").
		WithArgs("prd_gift").
		WillReturnRows(sqlmock.NewRows([]string{"id", "entry_id", "product_id", "component_id", "name", "quantity_per_unit", "optional"}).
			AddRow(1, "bom_1", "prd_gift", "cmp_box", "Box", 1, false))

	var response model.OrderProgress
	resp, err := SetUpTestRequest(TestRequest{
		Method:   "GET",
		Route:    "/orders/ord_1/progress",
		Router:   router,
		Response: &response,
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "ord_1", response.OrderID)
	assert.Equal(t, int64(1), response.LineItems[0].PackedQty)
	assert.InDelta(t, 0.5, response.PercentComplete, 0.0001)
	assert.Equal(t, 0, response.NextTargetIndex)
}

func TestGetOrderProgressNotFound(t *testing.T) {
	router, mock := setupRouter(t)

	mock.ExpectQuery("SELECT id, order_id, order_number, customer_name, status, line_items, created_at FROM orders WHERE order_id =").
		WithArgs("ord_missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "order_number", "customer_name", "status", "line_items", "created_at"}))

	var response map[string]interface{}
	resp, err := SetUpTestRequest(TestRequest{
		Method:   "GET",
		Route:    "/orders/ord_missing/progress",
		Router:   router,
		Response: &response,
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestInvokeUndoEndpointNothingPending(t *testing.T) {
	router, _ := setupRouter(t)

	var response map[string]interface{}
	resp, err := SetUpTestRequest(TestRequest{
		Method:   "POST",
		Route:    "/undo",
		Router:   router,
		Response: &response,
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCreateOrderEndpointRejectsMissingLineItems(t *testing.T) {
	router, _ := setupRouter(t)

	payload, _ := json.Marshal(map[string]interface{}{"order_number": "SO-1"})

	var response map[string]interface{}
	resp, err := SetUpTestRequest(TestRequest{
		Method:   "POST",
		Route:    "/orders",
		Payload:  bytes.NewBuffer(payload),
		Router:   router,
		Response: &response,
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCommitUnitEndpointBadIndex(t *testing.T) {
	router, _ := setupRouter(t)

	var response map[string]interface{}
	resp, err := SetUpTestRequest(TestRequest{
		Method:   "POST",
		Route:    "/orders/ord_1/pack/not-a-number/commit",
		Router:   router,
		Response: &response,
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
