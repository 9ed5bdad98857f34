package core

import "context"

// Dish is the priced view of a menu item used when placing orders.
type Dish struct {
	ID          string
	Name        string
	Price       float64
	IsAvailable bool
}

type MenuReader interface {
	// DishesByID returns the dishes of restaurantID among ids, keyed by id.
	// Unknown ids are absent from the map.
	DishesByID(ctx context.Context, restaurantID string, ids []string) (map[string]Dish, error)
}

type TableReader interface {
	ActiveTableExists(ctx context.Context, restaurantID, tableID string) (bool, error)
}
