package restaurant

import (
	"time"

	"github.com/MK7-m/qrcodesy/internal/hours"
	"github.com/MK7-m/qrcodesy/internal/pricing"
)

type Restaurant struct {
	ID              string                    `json:"id"`
	OwnerID         string                    `json:"owner_id"`
	Name            string                    `json:"name"`
	NameEn          string                    `json:"name_en"`
	Description     string                    `json:"description"`
	LogoURL         string                    `json:"logo_url"`
	CoverImages     []CoverImage              `json:"cover_images"`
	Phone           string                    `json:"phone"`
	WhatsApp        string                    `json:"whatsapp"`
	City            string                    `json:"city"`
	Area            string                    `json:"area"`
	AddressLandmark string                    `json:"address_landmark"`
	Plan            string                    `json:"plan"`
	DeliveryFee     float64                   `json:"delivery_fee"`
	ExtraFees       []pricing.ExtraFee        `json:"extra_fees"`
	OpeningHours    []hours.DailyOpeningHours `json:"opening_hours"`
	StatusOverride  hours.Override            `json:"status_override"`
	IsActive        bool                      `json:"is_active"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

// Settings is the editable profile of a restaurant.
type Settings struct {
	Name            string   `json:"name"`
	NameEn          string   `json:"name_en"`
	Description     string   `json:"description"`
	Phone           string   `json:"phone"`
	WhatsApp        string   `json:"whatsapp"`
	City            string   `json:"city"`
	Area            string   `json:"area"`
	AddressLandmark string   `json:"address_landmark"`
	Plan            string   `json:"plan"`
	DeliveryFee     *float64 `json:"delivery_fee"`
	IsActive        *bool    `json:"is_active"`
}

// PublicView is what the customer menu page receives.
type PublicView struct {
	ID              string                    `json:"id"`
	Name            string                    `json:"name"`
	NameEn          string                    `json:"name_en"`
	Description     string                    `json:"description"`
	LogoURL         string                    `json:"logo_url"`
	CoverImages     []CoverImage              `json:"cover_images"`
	Phone           string                    `json:"phone"`
	WhatsApp        string                    `json:"whatsapp"`
	City            string                    `json:"city"`
	Area            string                    `json:"area"`
	AddressLandmark string                    `json:"address_landmark"`
	Plan            string                    `json:"plan"`
	DeliveryFee     float64                   `json:"delivery_fee"`
	ExtraFees       []pricing.ExtraFee        `json:"extra_fees"`
	OpeningHours    []hours.DailyOpeningHours `json:"opening_hours"`
	Status          hours.Status              `json:"status"`
	HoursSummary    string                    `json:"hours_summary"`
}
