package core

import (
	"context"
	"errors"

	"github.com/MK7-m/qrcodesy/internal/hours"
	"github.com/MK7-m/qrcodesy/internal/pricing"
)

// Subscription plans. Plan a is menu only, b adds dine-in ordering,
// c allows every order type.
const (
	PlanMenuOnly = "a"
	PlanDineIn   = "b"
	PlanFull     = "c"
)

var ErrRestaurantNotFound = errors.New("restaurant not found")

// OrderingConfig is the slice of a restaurant that checkout and
// recalculation need.
type OrderingConfig struct {
	RestaurantID   string
	Name           string
	Plan           string
	IsActive       bool
	DeliveryFee    float64
	ExtraFees      []pricing.ExtraFee
	OpeningHours   []hours.DailyOpeningHours
	StatusOverride hours.Override
}

type RestaurantReader interface {
	IsOwner(ctx context.Context, restaurantID string, userID string) (bool, error)

	GetOrderingConfig(
		ctx context.Context,
		restaurantID string,
	) (*OrderingConfig, error)
}
