package model

import (
	"encoding/json"
	"time"
)

// Order statuses. An order moves from pending to completed exactly once,
// when the last unit of its last incomplete line item is packed.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

type Order struct {
	ID           int64           `json:"-"`
	OrderID      string          `json:"order_id"`
	OrderNumber  string          `json:"order_number"`
	CustomerName string          `json:"customer_name,omitempty"`
	Status       string          `json:"status"`
	LineItems    []OrderLineItem `json:"line_items"`
	CreatedAt    time.Time       `json:"created_at"`
}

// OrderLineItem is one product entry within an order. The position of a line
// item in the order's slice is fixed at creation time; reconstruction and
// target advancement both iterate in that order.
type OrderLineItem struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	SKU          string `json:"sku,omitempty"`
	RequestedQty int64  `json:"requested_qty"`
}

func (order *Order) ToJSON() ([]byte, error) {
	return json.Marshal(order)
}

// TotalUnits returns the number of physical units the order asks for.
func (order *Order) TotalUnits() int64 {
	var total int64
	for _, item := range order.LineItems {
		total += item.RequestedQty
	}
	return total
}
