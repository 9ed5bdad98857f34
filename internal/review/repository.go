package review

import "context"

type Repository interface {
	// ListByRestaurant returns reviews newest first.
	ListByRestaurant(ctx context.Context, restaurantID string) ([]Review, error)
	Create(ctx context.Context, review *Review) error
	Delete(ctx context.Context, restaurantID, reviewID string) error
}
