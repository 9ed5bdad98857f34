package menu

import "context"

// Repository defines all database operations for menus.
// Every lookup is scoped by restaurant id.
type Repository interface {

	// -------------------------------
	// Categories
	// -------------------------------

	ListCategories(ctx context.Context, restaurantID string, activeOnly bool) ([]*Category, error)
	GetCategory(ctx context.Context, restaurantID, categoryID string) (*Category, error)
	CreateCategory(ctx context.Context, category *Category) error
	UpdateCategory(ctx context.Context, category *Category) error
	DeleteCategory(ctx context.Context, restaurantID, categoryID string) error

	// -------------------------------
	// Dishes
	// -------------------------------

	// ListDishes returns dishes ordered by category then sort_order.
	// activeCategoriesOnly hides dishes whose category is inactive.
	ListDishes(ctx context.Context, restaurantID string, activeCategoriesOnly bool) ([]*Dish, error)
	GetDish(ctx context.Context, restaurantID, dishID string) (*Dish, error)
	CreateDish(ctx context.Context, dish *Dish) error
	UpdateDish(ctx context.Context, dish *Dish) error
	UpdateDishImage(ctx context.Context, restaurantID, dishID, imageURL string) error
	DeleteDish(ctx context.Context, restaurantID, dishID string) error

	DishesByID(ctx context.Context, restaurantID string, ids []string) ([]*Dish, error)
}
