package restaurant

import (
	"context"

	"github.com/MK7-m/qrcodesy/internal/core"
	"github.com/MK7-m/qrcodesy/internal/hours"
	"github.com/MK7-m/qrcodesy/internal/pricing"
)

var ErrNotFound = core.ErrRestaurantNotFound

type Repository interface {
	// core
	Create(ctx context.Context, restaurant *Restaurant) error
	ListByOwner(ctx context.Context, ownerID string) ([]*Restaurant, error)
	GetByID(ctx context.Context, id string) (*Restaurant, error)

	// settings
	UpdateSettings(ctx context.Context, restaurant *Restaurant) error
	UpdateExtraFees(ctx context.Context, id string, fees []pricing.ExtraFee) error
	UpdateOpeningHours(ctx context.Context, id string, days []hours.DailyOpeningHours) error
	UpdateStatusOverride(ctx context.Context, id string, override hours.Override) error
	UpdateLogo(ctx context.Context, id string, logoURL string) error
	UpdateCoverImages(ctx context.Context, id string, images []CoverImage) error

	// ownership
	IsOwner(ctx context.Context, restaurantID string, userID string) (bool, error)
}
