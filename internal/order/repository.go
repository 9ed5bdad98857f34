package order

import (
	"context"

	"github.com/MK7-m/qrcodesy/internal/pricing"
)

type Repository interface {
	// Create stores the order with its items and fee rows in one
	// transaction and assigns ID, OrderNumber and timestamps.
	Create(ctx context.Context, o *Order) error

	List(ctx context.Context, restaurantID string, filter ListFilter) ([]*Order, error)
	Get(ctx context.Context, restaurantID, orderID string) (*Order, error)

	UpdateStatus(ctx context.Context, restaurantID, orderID string, status Status) error
	UpdateNotes(ctx context.Context, restaurantID, orderID, notes string) error

	// UpdateItem applies the non-nil fields of edit in one statement.
	UpdateItem(ctx context.Context, orderID, itemID string, edit ItemEdit) error
	DeleteItem(ctx context.Context, orderID, itemID string) error

	// SaveTotals overwrites the order amounts and replaces its fee rows
	// in one transaction.
	SaveTotals(ctx context.Context, orderID string, totals pricing.OrderTotals) error
}
