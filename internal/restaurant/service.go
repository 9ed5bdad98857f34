package restaurant

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/MK7-m/qrcodesy/internal/core"
	"github.com/MK7-m/qrcodesy/internal/hours"
	"github.com/MK7-m/qrcodesy/internal/pricing"
	"github.com/MK7-m/qrcodesy/internal/storage"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("you do not own this restaurant")
)

type Service struct {
	repo     Repository
	uploader storage.Uploader
	location *time.Location
	now      func() time.Time
}

func NewService(
	repo Repository,
	uploader storage.Uploader,
	location *time.Location,
) *Service {
	if uploader == nil {
		uploader = storage.Disabled{}
	}
	if location == nil {
		location = time.UTC
	}
	return &Service{
		repo:     repo,
		uploader: uploader,
		location: location,
		now:      time.Now,
	}
}

// --------------------------------------------------
// Create restaurant
// --------------------------------------------------
func (s *Service) CreateRestaurant(
	ctx context.Context,
	ownerID string,
	input Settings,
) (*Restaurant, error) {

	restaurant := &Restaurant{
		OwnerID:        ownerID,
		Plan:           core.PlanMenuOnly,
		ExtraFees:      []pricing.ExtraFee{},
		OpeningHours:   []hours.DailyOpeningHours{},
		CoverImages:    []CoverImage{},
		StatusOverride: hours.OverrideAuto,
		IsActive:       true,
	}
	if err := applySettings(restaurant, input); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, restaurant); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"restaurant_id": restaurant.ID,
		"owner_id":      ownerID,
	}).Info("restaurant created")

	return restaurant, nil
}

// --------------------------------------------------
// List restaurants owned by user
// --------------------------------------------------
func (s *Service) ListMyRestaurants(ctx context.Context, ownerID string) ([]*Restaurant, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// GetForOwner loads a restaurant and enforces ownership.
func (s *Service) GetForOwner(ctx context.Context, id, userID string) (*Restaurant, error) {
	restaurant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if restaurant.OwnerID != userID {
		return nil, ErrForbidden
	}
	return restaurant, nil
}

// --------------------------------------------------
// Settings
// --------------------------------------------------
func (s *Service) UpdateSettings(
	ctx context.Context,
	id string,
	userID string,
	input Settings,
) (*Restaurant, error) {

	restaurant, err := s.GetForOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if err := applySettings(restaurant, input); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateSettings(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

func (s *Service) UpdateExtraFees(
	ctx context.Context,
	id string,
	userID string,
	fees []pricing.ExtraFee,
) ([]pricing.ExtraFee, error) {

	clean, err := ValidateExtraFees(fees)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetForOwner(ctx, id, userID); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateExtraFees(ctx, id, clean); err != nil {
		return nil, err
	}
	return clean, nil
}

func (s *Service) UpdateOpeningHours(
	ctx context.Context,
	id string,
	userID string,
	days []hours.DailyOpeningHours,
) ([]hours.DailyOpeningHours, error) {

	clean, err := ValidateOpeningHours(days)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetForOwner(ctx, id, userID); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateOpeningHours(ctx, id, clean); err != nil {
		return nil, err
	}
	return clean, nil
}

func (s *Service) SetStatusOverride(
	ctx context.Context,
	id string,
	userID string,
	override hours.Override,
) error {

	if err := validateOverride(override); err != nil {
		return err
	}
	if _, err := s.GetForOwner(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.UpdateStatusOverride(ctx, id, override)
}

// --------------------------------------------------
// POST /restaurants/:id/logo
// --------------------------------------------------
func (s *Service) UploadLogo(
	ctx context.Context,
	id string,
	userID string,
	file *multipart.FileHeader,
) (string, error) {

	if _, err := s.GetForOwner(ctx, id, userID); err != nil {
		return "", err
	}

	url, err := storage.UploadFileHeader(ctx, s.uploader, "logos", id, file)
	if err != nil {
		return "", err
	}

	if err := s.repo.UpdateLogo(ctx, id, url); err != nil {
		return "", err
	}
	return url, nil
}

// --------------------------------------------------
// Public (customer facing)
// --------------------------------------------------
func (s *Service) GetPublicView(ctx context.Context, id string) (*PublicView, error) {
	restaurant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !restaurant.IsActive {
		return nil, ErrNotFound
	}

	return &PublicView{
		ID:              restaurant.ID,
		Name:            restaurant.Name,
		NameEn:          restaurant.NameEn,
		Description:     restaurant.Description,
		LogoURL:         restaurant.LogoURL,
		CoverImages:     restaurant.CoverImages,
		Phone:           restaurant.Phone,
		WhatsApp:        restaurant.WhatsApp,
		City:            restaurant.City,
		Area:            restaurant.Area,
		AddressLandmark: restaurant.AddressLandmark,
		Plan:            restaurant.Plan,
		DeliveryFee:     restaurant.DeliveryFee,
		ExtraFees:       restaurant.ExtraFees,
		OpeningHours:    restaurant.OpeningHours,
		Status: hours.ComputeStatus(
			restaurant.OpeningHours,
			restaurant.StatusOverride,
			s.now().In(s.location),
		),
		HoursSummary: hours.FormatOpeningHours(restaurant.OpeningHours),
	}, nil
}

// --------------------------------------------------
// core.RestaurantReader
// --------------------------------------------------
func (s *Service) IsOwner(ctx context.Context, restaurantID string, userID string) (bool, error) {
	return s.repo.IsOwner(ctx, restaurantID, userID)
}

func (s *Service) GetOrderingConfig(ctx context.Context, restaurantID string) (*core.OrderingConfig, error) {
	restaurant, err := s.repo.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	return &core.OrderingConfig{
		RestaurantID:   restaurant.ID,
		Name:           restaurant.Name,
		Plan:           restaurant.Plan,
		IsActive:       restaurant.IsActive,
		DeliveryFee:    restaurant.DeliveryFee,
		ExtraFees:      restaurant.ExtraFees,
		OpeningHours:   restaurant.OpeningHours,
		StatusOverride: restaurant.StatusOverride,
	}, nil
}

func applySettings(restaurant *Restaurant, input Settings) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	plan := strings.ToLower(strings.TrimSpace(input.Plan))
	if plan == "" {
		plan = restaurant.Plan
	}
	if err := validatePlan(plan); err != nil {
		return err
	}
	if input.DeliveryFee != nil {
		if err := validateDeliveryFee(*input.DeliveryFee); err != nil {
			return err
		}
	}

	restaurant.Name = name
	restaurant.NameEn = strings.TrimSpace(input.NameEn)
	restaurant.Description = strings.TrimSpace(input.Description)
	restaurant.Phone = strings.TrimSpace(input.Phone)
	restaurant.WhatsApp = strings.TrimSpace(input.WhatsApp)
	restaurant.City = strings.TrimSpace(input.City)
	restaurant.Area = strings.TrimSpace(input.Area)
	restaurant.AddressLandmark = strings.TrimSpace(input.AddressLandmark)
	restaurant.Plan = plan
	if input.DeliveryFee != nil {
		restaurant.DeliveryFee = *input.DeliveryFee
	}
	if input.IsActive != nil {
		restaurant.IsActive = *input.IsActive
	}
	return nil
}
