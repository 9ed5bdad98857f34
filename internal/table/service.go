package table

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MK7-m/qrcodesy/internal/core"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotFound        = errors.New("table not found")
	ErrDuplicateNumber = errors.New("table number already exists for this restaurant")
	ErrForbidden       = errors.New("you do not own this restaurant")
	ErrInvalidInput    = errors.New("invalid input")
)

type Service struct {
	repo        Repository
	restaurants core.RestaurantReader
	menuBaseURL string
}

func NewService(repo Repository, restaurants core.RestaurantReader, menuBaseURL string) *Service {
	return &Service{repo: repo, restaurants: restaurants, menuBaseURL: menuBaseURL}
}

func (s *Service) authorize(ctx context.Context, restaurantID, userID string) error {
	isOwner, err := s.restaurants.IsOwner(ctx, restaurantID, userID)
	if err != nil {
		return err
	}
	if !isOwner {
		return ErrForbidden
	}
	return nil
}

func (s *Service) List(ctx context.Context, restaurantID, userID string) ([]*Table, error) {
	if err := s.authorize(ctx, restaurantID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByRestaurant(ctx, restaurantID)
}

func (s *Service) Create(ctx context.Context, restaurantID, userID, tableNumber string) (*Table, error) {
	number := strings.TrimSpace(tableNumber)
	if number == "" {
		return nil, fmt.Errorf("%w: table_number is required", ErrInvalidInput)
	}
	if err := s.authorize(ctx, restaurantID, userID); err != nil {
		return nil, err
	}

	t := &Table{RestaurantID: restaurantID, TableNumber: number, IsActive: true}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"restaurant_id": restaurantID,
		"table_id":      t.ID,
	}).Info("table created")
	return t, nil
}

// Update renames and/or toggles a table.
func (s *Service) Update(ctx context.Context, restaurantID, userID, tableID string, input UpdateInput) (*Table, error) {
	if err := s.authorize(ctx, restaurantID, userID); err != nil {
		return nil, err
	}

	t, err := s.repo.Get(ctx, restaurantID, tableID)
	if err != nil {
		return nil, err
	}
	if input.TableNumber != nil {
		number := strings.TrimSpace(*input.TableNumber)
		if number == "" {
			return nil, fmt.Errorf("%w: table_number is required", ErrInvalidInput)
		}
		t.TableNumber = number
	}
	if input.IsActive != nil {
		t.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, restaurantID, userID, tableID string) error {
	if err := s.authorize(ctx, restaurantID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, restaurantID, tableID)
}

// QRLinks builds the restaurant link plus one link per active table.
func (s *Service) QRLinks(ctx context.Context, restaurantID, userID string) (*QRLinks, error) {
	tables, err := s.List(ctx, restaurantID, userID)
	if err != nil {
		return nil, err
	}

	links := &QRLinks{
		Restaurant: newQRLink(s.menuBaseURL, restaurantID, nil),
		Tables:     make([]QRLink, 0, len(tables)),
	}
	for _, t := range tables {
		if t.IsActive {
			links.Tables = append(links.Tables, newQRLink(s.menuBaseURL, restaurantID, t))
		}
	}
	return links, nil
}

// ActiveTableExists implements core.TableReader.
func (s *Service) ActiveTableExists(ctx context.Context, restaurantID, tableID string) (bool, error) {
	if uuid.Validate(tableID) != nil {
		return false, nil
	}
	return s.repo.ExistsActive(ctx, restaurantID, tableID)
}
