package table

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]*Table, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, restaurant_id, table_number, is_active, created_at
		FROM tables
		WHERE restaurant_id = $1
		ORDER BY created_at
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := []*Table{}
	for rows.Next() {
		var t Table
		if err := rows.Scan(&t.ID, &t.RestaurantID, &t.TableNumber, &t.IsActive, &t.CreatedAt); err != nil {
			return nil, err
		}
		tables = append(tables, &t)
	}
	return tables, rows.Err()
}

func (r *PostgresRepository) Get(ctx context.Context, restaurantID, tableID string) (*Table, error) {
	var t Table
	err := r.db.QueryRow(ctx, `
		SELECT id, restaurant_id, table_number, is_active, created_at
		FROM tables
		WHERE restaurant_id = $1 AND id = $2
	`, restaurantID, tableID).Scan(&t.ID, &t.RestaurantID, &t.TableNumber, &t.IsActive, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PostgresRepository) Create(ctx context.Context, table *Table) error {
	if table.ID == "" {
		table.ID = uuid.New().String()
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO tables (id, restaurant_id, table_number, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, table.ID, table.RestaurantID, table.TableNumber, table.IsActive).Scan(&table.CreatedAt)
	return translate(err)
}

func (r *PostgresRepository) Update(ctx context.Context, table *Table) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE tables SET table_number = $3, is_active = $4
		WHERE restaurant_id = $1 AND id = $2
	`, table.RestaurantID, table.ID, table.TableNumber, table.IsActive)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, restaurantID, tableID string) error {
	cmd, err := r.db.Exec(ctx, `
		DELETE FROM tables WHERE restaurant_id = $1 AND id = $2
	`, restaurantID, tableID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) ExistsActive(ctx context.Context, restaurantID, tableID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM tables
			WHERE restaurant_id = $1 AND id = $2 AND is_active
		)
	`, restaurantID, tableID).Scan(&exists)
	return exists, err
}

func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateNumber
	}
	return err
}
