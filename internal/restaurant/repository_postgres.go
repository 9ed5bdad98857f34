package restaurant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MK7-m/qrcodesy/internal/hours"
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

const restaurantColumns = `
	id, owner_id, name, name_en, description, logo_url, cover_images, phone, whatsapp,
	city, area, address_landmark, plan, delivery_fee, extra_fees,
	opening_hours, status_override, is_active, created_at, updated_at
`

func scanRestaurant(row pgx.Row) (*Restaurant, error) {
	var (
		res          Restaurant
		override     string
		feesJSON     []byte
		scheduleJSON []byte
		coverJSON    []byte
	)
	if err := row.Scan(
		&res.ID,
		&res.OwnerID,
		&res.Name,
		&res.NameEn,
		&res.Description,
		&res.LogoURL,
		&coverJSON,
		&res.Phone,
		&res.WhatsApp,
		&res.City,
		&res.Area,
		&res.AddressLandmark,
		&res.Plan,
		&res.DeliveryFee,
		&feesJSON,
		&scheduleJSON,
		&override,
		&res.IsActive,
		&res.CreatedAt,
		&res.UpdatedAt,
	); err != nil {
		return nil, err
	}

	res.StatusOverride = hours.Override(override)
	covers, err := NormalizeCoverImages(coverJSON)
	if err != nil {
		return nil, err
	}
	res.CoverImages = covers
	res.ExtraFees = []pricing.ExtraFee{}
	res.OpeningHours = []hours.DailyOpeningHours{}
	if len(feesJSON) > 0 {
		if err := json.Unmarshal(feesJSON, &res.ExtraFees); err != nil {
			return nil, fmt.Errorf("decode extra_fees: %w", err)
		}
	}
	if len(scheduleJSON) > 0 {
		if err := json.Unmarshal(scheduleJSON, &res.OpeningHours); err != nil {
			return nil, fmt.Errorf("decode opening_hours: %w", err)
		}
	}
	return &res, nil
}

// --------------------------------------------------
// Create a new restaurant
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, restaurant *Restaurant) error {
	if restaurant.ID == "" {
		restaurant.ID = uuid.New().String()
	}

	feesJSON, err := json.Marshal(restaurant.ExtraFees)
	if err != nil {
		return err
	}
	scheduleJSON, err := json.Marshal(restaurant.OpeningHours)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO restaurants (
			id, owner_id, name, name_en, description, phone, whatsapp,
			city, area, address_landmark, plan, delivery_fee,
			extra_fees, opening_hours, status_override, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at, updated_at
	`

	return r.db.QueryRow(
		ctx,
		query,
		restaurant.ID,
		restaurant.OwnerID,
		restaurant.Name,
		restaurant.NameEn,
		restaurant.Description,
		restaurant.Phone,
		restaurant.WhatsApp,
		restaurant.City,
		restaurant.Area,
		restaurant.AddressLandmark,
		restaurant.Plan,
		restaurant.DeliveryFee,
		feesJSON,
		scheduleJSON,
		string(restaurant.StatusOverride),
		restaurant.IsActive,
	).Scan(&restaurant.CreatedAt, &restaurant.UpdatedAt)
}

// --------------------------------------------------
// List restaurants owned by a user
// --------------------------------------------------
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Restaurant, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+restaurantColumns+`
		FROM restaurants
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	restaurants := []*Restaurant{}
	for rows.Next() {
		res, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, res)
	}

	return restaurants, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Restaurant, error) {
	res, err := scanRestaurant(r.db.QueryRow(ctx, `
		SELECT `+restaurantColumns+`
		FROM restaurants
		WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return res, err
}

// --------------------------------------------------
// Settings
// --------------------------------------------------
func (r *PostgresRepository) UpdateSettings(ctx context.Context, restaurant *Restaurant) error {
	return r.exec(ctx, `
		UPDATE restaurants
		SET name = $2, name_en = $3, description = $4, phone = $5,
		    whatsapp = $6, city = $7, area = $8, address_landmark = $9,
		    plan = $10, delivery_fee = $11, is_active = $12, updated_at = NOW()
		WHERE id = $1
	`,
		restaurant.ID,
		restaurant.Name,
		restaurant.NameEn,
		restaurant.Description,
		restaurant.Phone,
		restaurant.WhatsApp,
		restaurant.City,
		restaurant.Area,
		restaurant.AddressLandmark,
		restaurant.Plan,
		restaurant.DeliveryFee,
		restaurant.IsActive,
	)
}

func (r *PostgresRepository) UpdateExtraFees(ctx context.Context, id string, fees []pricing.ExtraFee) error {
	data, err := json.Marshal(fees)
	if err != nil {
		return err
	}
	return r.exec(ctx, `
		UPDATE restaurants SET extra_fees = $2, updated_at = NOW() WHERE id = $1
	`, id, data)
}

func (r *PostgresRepository) UpdateOpeningHours(ctx context.Context, id string, days []hours.DailyOpeningHours) error {
	data, err := json.Marshal(days)
	if err != nil {
		return err
	}
	return r.exec(ctx, `
		UPDATE restaurants SET opening_hours = $2, updated_at = NOW() WHERE id = $1
	`, id, data)
}

func (r *PostgresRepository) UpdateStatusOverride(ctx context.Context, id string, override hours.Override) error {
	return r.exec(ctx, `
		UPDATE restaurants SET status_override = $2, updated_at = NOW() WHERE id = $1
	`, id, string(override))
}

func (r *PostgresRepository) UpdateLogo(ctx context.Context, id string, logoURL string) error {
	return r.exec(ctx, `
		UPDATE restaurants SET logo_url = $2, updated_at = NOW() WHERE id = $1
	`, id, logoURL)
}

func (r *PostgresRepository) UpdateCoverImages(ctx context.Context, id string, images []CoverImage) error {
	data, err := json.Marshal(images)
	if err != nil {
		return err
	}
	return r.exec(ctx, `
		UPDATE restaurants SET cover_images = $2, updated_at = NOW() WHERE id = $1
	`, id, data)
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Ownership check (SECURITY)
// --------------------------------------------------
func (r *PostgresRepository) IsOwner(
	ctx context.Context,
	restaurantID string,
	userID string,
) (bool, error) {

	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM restaurants
			WHERE id = $1
			  AND owner_id = $2
		)
	`, restaurantID, userID).Scan(&exists)

	return exists, err
}
