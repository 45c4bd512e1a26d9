package models

import (
	"time"

	"github.com/angelmondragon/stockdesk/pkg/enums"
)

// OrderItem is one line of an order. Product is nil when the reply did not include it.
type OrderItem struct {
	ID             int64    `json:"id"`
	ProductID      int64    `json:"productId"`
	Product        *Product `json:"product,omitempty"`
	Quantity       int      `json:"quantity"`
	UnitPriceMinor int64    `json:"unitPrice"`
}

// TotalPriceMinor is the line total in minor units.
func (i OrderItem) TotalPriceMinor() int64 {
	return i.UnitPriceMinor * int64(i.Quantity)
}

// Order is a customer order and its lines.
type Order struct {
	ID              int64             `json:"id"`
	CustomerName    string            `json:"customerName"`
	Status          enums.OrderStatus `json:"status"`
	TotalPriceMinor int64             `json:"totalPrice"`
	Items           []OrderItem       `json:"items"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// RecomputeTotal sets TotalPriceMinor from the item lines and returns it.
func (o *Order) RecomputeTotal() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.TotalPriceMinor()
	}
	o.TotalPriceMinor = total
	return total
}
