package menu

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const categoryColumns = `
	id, restaurant_id, name, name_en, image_url, sort_order, is_active, created_at, updated_at
`

const dishColumns = `
	d.id, d.restaurant_id, d.category_id, d.name, d.name_en, d.description,
	d.image_url, d.price, d.is_available, d.sort_order, d.created_at, d.updated_at
`

func scanCategory(row pgx.Row) (*Category, error) {
	var c Category
	err := row.Scan(
		&c.ID, &c.RestaurantID, &c.Name, &c.NameEn, &c.ImageURL,
		&c.SortOrder, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	return &c, err
}

func scanDish(row pgx.Row) (*Dish, error) {
	var d Dish
	err := row.Scan(
		&d.ID, &d.RestaurantID, &d.CategoryID, &d.Name, &d.NameEn, &d.Description,
		&d.ImageURL, &d.Price, &d.IsAvailable, &d.SortOrder, &d.CreatedAt, &d.UpdatedAt,
	)
	return &d, err
}

// --------------------------------------------------
// CATEGORIES
// --------------------------------------------------

func (r *PostgresRepository) ListCategories(
	ctx context.Context,
	restaurantID string,
	activeOnly bool,
) ([]*Category, error) {

	rows, err := r.db.Query(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE restaurant_id = $1
		  AND ($2 = FALSE OR is_active)
		ORDER BY sort_order, created_at
	`, restaurantID, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *PostgresRepository) GetCategory(ctx context.Context, restaurantID, categoryID string) (*Category, error) {
	c, err := scanCategory(r.db.QueryRow(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE restaurant_id = $1 AND id = $2
	`, restaurantID, categoryID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, category *Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO categories (id, restaurant_id, name, name_en, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`,
		category.ID,
		category.RestaurantID,
		category.Name,
		category.NameEn,
		category.SortOrder,
		category.IsActive,
	).Scan(&category.CreatedAt, &category.UpdatedAt)
}

func (r *PostgresRepository) UpdateCategory(ctx context.Context, category *Category) error {
	err := r.db.QueryRow(ctx, `
		UPDATE categories
		SET name = $3, name_en = $4, sort_order = $5, is_active = $6, updated_at = NOW()
		WHERE restaurant_id = $1 AND id = $2
		RETURNING updated_at
	`,
		category.RestaurantID,
		category.ID,
		category.Name,
		category.NameEn,
		category.SortOrder,
		category.IsActive,
	).Scan(&category.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrCategoryNotFound
	}
	return err
}

// DeleteCategory removes the category and, through the FK cascade, its dishes.
func (r *PostgresRepository) DeleteCategory(ctx context.Context, restaurantID, categoryID string) error {
	cmd, err := r.db.Exec(ctx, `
		DELETE FROM categories WHERE restaurant_id = $1 AND id = $2
	`, restaurantID, categoryID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// --------------------------------------------------
// DISHES
// --------------------------------------------------

func (r *PostgresRepository) ListDishes(
	ctx context.Context,
	restaurantID string,
	activeCategoriesOnly bool,
) ([]*Dish, error) {

	rows, err := r.db.Query(ctx, `
		SELECT `+dishColumns+`
		FROM dishes d
		JOIN categories c ON c.id = d.category_id
		WHERE d.restaurant_id = $1
		  AND ($2 = FALSE OR c.is_active)
		ORDER BY c.sort_order, d.sort_order, d.created_at
	`, restaurantID, activeCategoriesOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDishes(rows)
}

func (r *PostgresRepository) GetDish(ctx context.Context, restaurantID, dishID string) (*Dish, error) {
	d, err := scanDish(r.db.QueryRow(ctx, `
		SELECT `+dishColumns+`
		FROM dishes d
		WHERE d.restaurant_id = $1 AND d.id = $2
	`, restaurantID, dishID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDishNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *PostgresRepository) CreateDish(ctx context.Context, dish *Dish) error {
	if dish.ID == "" {
		dish.ID = uuid.New().String()
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO dishes (
			id, restaurant_id, category_id, name, name_en, description,
			price, is_available, sort_order
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`,
		dish.ID,
		dish.RestaurantID,
		dish.CategoryID,
		dish.Name,
		dish.NameEn,
		dish.Description,
		dish.Price,
		dish.IsAvailable,
		dish.SortOrder,
	).Scan(&dish.CreatedAt, &dish.UpdatedAt)
}

func (r *PostgresRepository) UpdateDish(ctx context.Context, dish *Dish) error {
	err := r.db.QueryRow(ctx, `
		UPDATE dishes
		SET category_id = $3, name = $4, name_en = $5, description = $6,
		    price = $7, is_available = $8, sort_order = $9, updated_at = NOW()
		WHERE restaurant_id = $1 AND id = $2
		RETURNING updated_at
	`,
		dish.RestaurantID,
		dish.ID,
		dish.CategoryID,
		dish.Name,
		dish.NameEn,
		dish.Description,
		dish.Price,
		dish.IsAvailable,
		dish.SortOrder,
	).Scan(&dish.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrDishNotFound
	}
	return err
}

func (r *PostgresRepository) UpdateDishImage(ctx context.Context, restaurantID, dishID, imageURL string) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE dishes SET image_url = $3, updated_at = NOW()
		WHERE restaurant_id = $1 AND id = $2
	`, restaurantID, dishID, imageURL)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrDishNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteDish(ctx context.Context, restaurantID, dishID string) error {
	cmd, err := r.db.Exec(ctx, `
		DELETE FROM dishes WHERE restaurant_id = $1 AND id = $2
	`, restaurantID, dishID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrDishNotFound
	}
	return nil
}

func (r *PostgresRepository) DishesByID(ctx context.Context, restaurantID string, ids []string) ([]*Dish, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+dishColumns+`
		FROM dishes d
		WHERE d.restaurant_id = $1 AND d.id = ANY($2::uuid[])
	`, restaurantID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDishes(rows)
}

func collectDishes(rows pgx.Rows) ([]*Dish, error) {
	dishes := []*Dish{}
	for rows.Next() {
		d, err := scanDish(rows)
		if err != nil {
			return nil, err
		}
		dishes = append(dishes, d)
	}
	return dishes, rows.Err()
}
