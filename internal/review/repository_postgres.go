package review

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]Review, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, restaurant_id, author_name, rating, comment, created_at
		FROM restaurant_reviews
		WHERE restaurant_id = $1
		ORDER BY created_at DESC
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.RestaurantID, &rv.AuthorName, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, review *Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO restaurant_reviews (id, restaurant_id, author_name, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, review.ID, review.RestaurantID, review.AuthorName, review.Rating, review.Comment).Scan(&review.CreatedAt)
}

func (r *PostgresRepository) Delete(ctx context.Context, restaurantID, reviewID string) error {
	cmd, err := r.db.Exec(ctx, `
		DELETE FROM restaurant_reviews WHERE restaurant_id = $1 AND id = $2
	`, restaurantID, reviewID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
