package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MK7-m/qrcodesy/internal/pricing"

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

const orderColumns = `
	id, restaurant_id, order_number, order_type, table_id, customer_name,
	customer_phone, customer_address, status, subtotal, delivery_fee, total,
	notes, created_at, updated_at
`

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		o                          Order
		orderType, status          string
		tableID, name, phone, addr *string
		notes                      *string
	)
	if err := row.Scan(
		&o.ID,
		&o.RestaurantID,
		&o.OrderNumber,
		&orderType,
		&tableID,
		&name,
		&phone,
		&addr,
		&status,
		&o.Subtotal,
		&o.DeliveryFee,
		&o.Total,
		&notes,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}

	o.OrderType = Type(orderType)
	o.Status = Status(status)
	o.TableID = deref(tableID)
	o.CustomerName = deref(name)
	o.CustomerPhone = deref(phone)
	o.CustomerAddress = deref(addr)
	o.Notes = deref(notes)
	o.Items = []Item{}
	o.ExtraFees = []pricing.CalculatedFee{}
	return &o, nil
}

// --------------------------------------------------
// CREATE (ATOMIC)
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, o *Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// serialize numbering per restaurant
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, o.RestaurantID); err != nil {
		return err
	}

	var count int
	if err := tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM orders WHERE restaurant_id = $1
	`, o.RestaurantID).Scan(&count); err != nil {
		return err
	}

	o.ID = uuid.New().String()
	o.OrderNumber = fmt.Sprintf("ORD-%04d", count+1)

	if err := tx.QueryRow(ctx, `
		INSERT INTO orders (
			id, restaurant_id, order_number, order_type, table_id,
			customer_name, customer_phone, customer_address, status,
			subtotal, delivery_fee, total, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`,
		o.ID,
		o.RestaurantID,
		o.OrderNumber,
		string(o.OrderType),
		nullIfEmpty(o.TableID),
		nullIfEmpty(o.CustomerName),
		nullIfEmpty(o.CustomerPhone),
		nullIfEmpty(o.CustomerAddress),
		string(o.Status),
		o.Subtotal,
		o.DeliveryFee,
		o.Total,
		nullIfEmpty(o.Notes),
	).Scan(&o.CreatedAt, &o.UpdatedAt); err != nil {
		return err
	}

	for i := range o.Items {
		it := &o.Items[i]
		it.ID = uuid.New().String()
		it.OrderID = o.ID
		if err := tx.QueryRow(ctx, `
			INSERT INTO order_items (id, order_id, dish_id, dish_name, dish_price, quantity, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING created_at
		`,
			it.ID,
			it.OrderID,
			nullIfEmpty(it.DishID),
			it.DishName,
			it.DishPrice,
			it.Quantity,
			nullIfEmpty(it.Notes),
		).Scan(&it.CreatedAt); err != nil {
			return err
		}
	}

	if err := insertFees(ctx, tx, o.ID, o.ExtraFees); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func insertFees(ctx context.Context, tx pgx.Tx, orderID string, fees []pricing.CalculatedFee) error {
	for i, fee := range fees {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_fees (id, order_id, label, amount, position)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New().String(), orderID, fee.Label, fee.Amount, i); err != nil {
			return err
		}
	}
	return nil
}

// --------------------------------------------------
// READ
// --------------------------------------------------
func (r *PostgresRepository) List(ctx context.Context, restaurantID string, filter ListFilter) ([]*Order, error) {
	where := []string{"restaurant_id = $1"}
	args := []any{restaurantID}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.OrderType != "" {
		args = append(args, string(filter.OrderType))
		where = append(where, fmt.Sprintf("order_type = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where = append(where, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY created_at DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []*Order{}
	byID := map[string]*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
		byID[o.ID] = o
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadDetails(ctx, byID); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PostgresRepository) Get(ctx context.Context, restaurantID, orderID string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE restaurant_id = $1 AND id = $2
	`, restaurantID, orderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadDetails(ctx, map[string]*Order{o.ID: o}); err != nil {
		return nil, err
	}
	return o, nil
}

// loadDetails attaches items and fee rows to the given orders.
func (r *PostgresRepository) loadDetails(ctx context.Context, byID map[string]*Order) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, dish_id, dish_name, dish_price, quantity, notes, created_at
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY created_at, id
	`, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var (
			it            Item
			dishID, notes *string
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &dishID, &it.DishName, &it.DishPrice, &it.Quantity, &notes, &it.CreatedAt); err != nil {
			rows.Close()
			return err
		}
		it.DishID = deref(dishID)
		it.Notes = deref(notes)
		byID[it.OrderID].Items = append(byID[it.OrderID].Items, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.db.Query(ctx, `
		SELECT order_id, label, amount
		FROM order_fees
		WHERE order_id = ANY($1::uuid[])
		ORDER BY position
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			orderID string
			fee     pricing.CalculatedFee
		)
		if err := rows.Scan(&orderID, &fee.Label, &fee.Amount); err != nil {
			return err
		}
		byID[orderID].ExtraFees = append(byID[orderID].ExtraFees, fee)
	}
	return rows.Err()
}

// --------------------------------------------------
// UPDATE
// --------------------------------------------------
func (r *PostgresRepository) UpdateStatus(ctx context.Context, restaurantID, orderID string, status Status) error {
	return r.execOne(ctx, ErrNotFound, `
		UPDATE orders SET status = $3, updated_at = NOW()
		WHERE restaurant_id = $1 AND id = $2
	`, restaurantID, orderID, string(status))
}

func (r *PostgresRepository) UpdateNotes(ctx context.Context, restaurantID, orderID, notes string) error {
	return r.execOne(ctx, ErrNotFound, `
		UPDATE orders SET notes = $3, updated_at = NOW()
		WHERE restaurant_id = $1 AND id = $2
	`, restaurantID, orderID, nullIfEmpty(notes))
}

func (r *PostgresRepository) UpdateItem(ctx context.Context, orderID, itemID string, edit ItemEdit) error {
	var notes *string
	if edit.Notes != nil {
		notes = nullIfEmpty(*edit.Notes)
	}
	return r.execOne(ctx, ErrItemNotFound, `
		UPDATE order_items
		SET quantity = COALESCE($3::int, quantity),
		    notes = CASE WHEN $4::boolean THEN $5::text ELSE notes END
		WHERE order_id = $1 AND id = $2
	`, orderID, itemID, edit.Quantity, edit.Notes != nil, notes)
}

func (r *PostgresRepository) DeleteItem(ctx context.Context, orderID, itemID string) error {
	return r.execOne(ctx, ErrItemNotFound, `
		DELETE FROM order_items WHERE order_id = $1 AND id = $2
	`, orderID, itemID)
}

func (r *PostgresRepository) SaveTotals(ctx context.Context, orderID string, totals pricing.OrderTotals) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
		UPDATE orders
		SET subtotal = $2, delivery_fee = $3, total = $4, updated_at = NOW()
		WHERE id = $1
	`, orderID, totals.Subtotal, totals.DeliveryFee, totals.Total)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM order_fees WHERE order_id = $1`, orderID); err != nil {
		return err
	}
	if err := insertFees(ctx, tx, orderID, totals.ExtraFees); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) execOne(ctx context.Context, notFound error, query string, args ...any) error {
	cmd, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return notFound
	}
	return nil
}
