package order

import (
	"time"

	"github.com/MK7-m/qrcodesy/internal/pricing"
)

type Status string

const (
	StatusNew            Status = "new"
	StatusInProgress     Status = "in_progress"
	StatusReady          Status = "ready"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusCompleted      Status = "completed"
	StatusCancelled      Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusReady, StatusOutForDelivery, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Type string

const (
	TypeDineIn   Type = "dine_in"
	TypeDelivery Type = "delivery"
	TypePickup   Type = "pickup"
)

func (t Type) Valid() bool {
	return t == TypeDineIn || t == TypeDelivery || t == TypePickup
}

type Order struct {
	ID              string                  `json:"id"`
	RestaurantID    string                  `json:"restaurant_id"`
	OrderNumber     string                  `json:"order_number"`
	OrderType       Type                    `json:"order_type"`
	TableID         string                  `json:"table_id,omitempty"`
	CustomerName    string                  `json:"customer_name,omitempty"`
	CustomerPhone   string                  `json:"customer_phone,omitempty"`
	CustomerAddress string                  `json:"customer_address,omitempty"`
	Status          Status                  `json:"status"`
	Subtotal        float64                 `json:"subtotal"`
	ExtraFees       []pricing.CalculatedFee `json:"extra_fees"`
	DeliveryFee     float64                 `json:"delivery_fee"`
	Total           float64                 `json:"total"`
	Notes           string                  `json:"notes,omitempty"`
	Items           []Item                  `json:"items"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// Locked orders no longer accept item edits.
func (o *Order) Locked() bool {
	return o.Status == StatusCompleted || o.Status == StatusCancelled
}

// Item snapshots the dish name and price at order time.
type Item struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	DishID    string    `json:"dish_id,omitempty"`
	DishName  string    `json:"dish_name"`
	DishPrice float64   `json:"dish_price"`
	Quantity  int       `json:"quantity"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ItemInput struct {
	DishID   string `json:"dish_id"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

// ItemEdit is a partial line edit. Nil fields are left unchanged.
type ItemEdit struct {
	Quantity *int    `json:"quantity"`
	Notes    *string `json:"notes"`
}

func (e ItemEdit) Empty() bool {
	return e.Quantity == nil && e.Notes == nil
}

// CreateInput is the customer checkout payload.
type CreateInput struct {
	OrderType       Type        `json:"order_type"`
	TableID         string      `json:"table_id"`
	CustomerName    string      `json:"customer_name"`
	CustomerPhone   string      `json:"customer_phone"`
	CustomerAddress string      `json:"customer_address"`
	Notes           string      `json:"notes"`
	Items           []ItemInput `json:"items"`
}

// ListFilter narrows ListOrders. Zero values mean no filter.
type ListFilter struct {
	Status    Status
	OrderType Type
	From      *time.Time
	To        *time.Time
}

// Subtotal is the sum of price times quantity over items.
func Subtotal(items []Item) float64 {
	var sum float64
	for _, it := range items {
		sum += it.DishPrice * float64(it.Quantity)
	}
	return sum
}

func applyTotals(o *Order, totals pricing.OrderTotals) {
	o.Subtotal = totals.Subtotal
	o.ExtraFees = totals.ExtraFees
	o.DeliveryFee = totals.DeliveryFee
	o.Total = totals.Total
}
