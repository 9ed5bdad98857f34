package table

import "context"

type Repository interface {
	ListByRestaurant(ctx context.Context, restaurantID string) ([]*Table, error)
	Get(ctx context.Context, restaurantID, tableID string) (*Table, error)
	Create(ctx context.Context, table *Table) error
	Update(ctx context.Context, table *Table) error
	Delete(ctx context.Context, restaurantID, tableID string) error
	ExistsActive(ctx context.Context, restaurantID, tableID string) (bool, error)
}
