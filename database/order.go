package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kitpack/kitpack/internal/apierror"
	"github.com/kitpack/kitpack/model"

	_ "github.com/lib/pq"
)

func (d Datasource) CreateOrder(ctx context.Context, ord model.Order) (model.Order, error) {
	ord.OrderID = model.GenerateUUIDWithSuffix("ord")
	ord.CreatedAt = time.Now()
	if ord.Status == "" {
		ord.Status = model.StatusPending
	}

	lineItemsJSON, err := json.Marshal(ord.LineItems)
	if err != nil {
		return model.Order{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to marshal line items", err)
	}

	_, err = d.Conn.ExecContext(ctx,
		`INSERT INTO orders (order_id, order_number, customer_name, status, line_items, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		ord.OrderID, ord.OrderNumber, ord.CustomerName, ord.Status, lineItemsJSON, ord.CreatedAt,
	)
	if err != nil {
		return model.Order{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create order", err)
	}
	return ord, nil
}

func (d Datasource) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	row := d.Conn.QueryRowContext(ctx, `
		SELECT id, order_id, order_number, customer_name, status, line_items, created_at
		FROM orders
		WHERE order_id = $1
	`, orderID)

	ord := &model.Order{}
	var customerName sql.NullString
	var lineItemsJSON []byte
	err := row.Scan(&ord.ID, &ord.OrderID, &ord.OrderNumber, &customerName, &ord.Status, &lineItemsJSON, &ord.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Order with ID '%s' not found", orderID), err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve order", err)
	}
	ord.CustomerName = customerName.String

	err = json.Unmarshal(lineItemsJSON, &ord.LineItems)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to unmarshal line items", err)
	}
	return ord, nil
}

func (d Datasource) GetAllOrders(ctx context.Context, status string, limit, offset int) ([]model.Order, error) {
	var rows *sql.Rows
	var err error
	if status != "" {
		rows, err = d.Conn.QueryContext(ctx, `
			SELECT id, order_id, order_number, customer_name, status, line_items, created_at
			FROM orders
			WHERE status = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3
		`, status, limit, offset)
	} else {
		rows, err = d.Conn.QueryContext(ctx, `
			SELECT id, order_id, order_number, customer_name, status, line_items, created_at
			FROM orders
			ORDER BY created_at DESC
			LIMIT $1 OFFSET $2
		`, limit, offset)
	}
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve orders", err)
	}
	defer rows.Close()

	return scanOrderRows(rows)
}

// GetOrdersPendingPacking returns pending orders oldest first, the queue a
// packer works through.
func (d Datasource) GetOrdersPendingPacking(ctx context.Context) ([]model.Order, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT id, order_id, order_number, customer_name, status, line_items, created_at
		FROM orders
		WHERE status = 'pending'
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve packing queue", err)
	}
	defer rows.Close()

	return scanOrderRows(rows)
}

func (d Datasource) UpdateOrderStatus(ctx context.Context, orderID string, status string) error {
	result, err := d.Conn.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE order_id = $2`, status, orderID)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update order status", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update order status", err)
	}
	if affected == 0 {
		return apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Order with ID '%s' not found", orderID), nil)
	}
	return nil
}

func scanOrderRows(rows *sql.Rows) ([]model.Order, error) {
	var orders []model.Order
	for rows.Next() {
		ord := model.Order{}
		var customerName sql.NullString
		var lineItemsJSON []byte
		err := rows.Scan(&ord.ID, &ord.OrderID, &ord.OrderNumber, &customerName, &ord.Status, &lineItemsJSON, &ord.CreatedAt)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan order row", err)
		}
		ord.CustomerName = customerName.String
		if err := json.Unmarshal(lineItemsJSON, &ord.LineItems); err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to unmarshal line items", err)
		}
		orders = append(orders, ord)
	}
	if err := rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error iterating order rows", err)
	}
	return orders, nil
}
