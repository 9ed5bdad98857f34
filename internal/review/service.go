package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MK7-m/qrcodesy/internal/core"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	MinRating        = 1
	MaxRating        = 5
	maxAuthorLength  = 120
	maxCommentLength = 1000
)

var (
	ErrNotFound           = errors.New("review not found")
	ErrRestaurantNotFound = core.ErrRestaurantNotFound
	ErrForbidden          = errors.New("you do not own this restaurant")
	ErrInvalidInput       = errors.New("invalid input")
)

type Service struct {
	repo        Repository
	restaurants core.RestaurantReader
}

func NewService(repo Repository, restaurants core.RestaurantReader) *Service {
	return &Service{repo: repo, restaurants: restaurants}
}

// activeRestaurant hides inactive restaurants from customers.
func (s *Service) activeRestaurant(ctx context.Context, restaurantID string) error {
	cfg, err := s.restaurants.GetOrderingConfig(ctx, restaurantID)
	if err != nil {
		return err
	}
	if !cfg.IsActive {
		return ErrRestaurantNotFound
	}
	return nil
}

func (s *Service) ListPublic(ctx context.Context, restaurantID string) (*Listing, error) {
	if err := s.activeRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}

	reviews, err := s.repo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return summarize(reviews), nil
}

func summarize(reviews []Review) *Listing {
	listing := &Listing{Reviews: reviews, RatingCount: len(reviews)}
	if listing.Reviews == nil {
		listing.Reviews = []Review{}
	}
	if len(reviews) == 0 {
		return listing
	}

	sum := 0
	for _, rv := range reviews {
		sum += rv.Rating
	}
	listing.Rating = decimal.NewFromInt(int64(sum)).
		Div(decimal.NewFromInt(int64(len(reviews)))).
		Round(1).
		InexactFloat64()
	return listing
}

// Create stores a customer review for an active restaurant.
func (s *Service) Create(ctx context.Context, restaurantID string, input CreateInput) (*Review, error) {
	rv := &Review{
		RestaurantID: restaurantID,
		AuthorName:   strings.TrimSpace(input.AuthorName),
		Rating:       input.Rating,
		Comment:      strings.TrimSpace(input.Comment),
	}
	if err := validate(rv); err != nil {
		return nil, err
	}
	if err := s.activeRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"restaurant_id": restaurantID,
		"review_id":     rv.ID,
		"rating":        rv.Rating,
	}).Info("review added")
	return rv, nil
}

func validate(rv *Review) error {
	switch {
	case rv.AuthorName == "":
		return fmt.Errorf("%w: author_name is required", ErrInvalidInput)
	case utf8.RuneCountInString(rv.AuthorName) > maxAuthorLength:
		return fmt.Errorf("%w: author_name is too long", ErrInvalidInput)
	case rv.Rating < MinRating || rv.Rating > MaxRating:
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, MinRating, MaxRating)
	case utf8.RuneCountInString(rv.Comment) > maxCommentLength:
		return fmt.Errorf("%w: comment is too long", ErrInvalidInput)
	}
	return nil
}

// Delete lets the owner moderate reviews of their restaurant.
func (s *Service) Delete(ctx context.Context, restaurantID, userID, reviewID string) error {
	isOwner, err := s.restaurants.IsOwner(ctx, restaurantID, userID)
	if err != nil {
		return err
	}
	if !isOwner {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, restaurantID, reviewID); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"restaurant_id": restaurantID,
		"review_id":     reviewID,
	}).Info("review removed")
	return nil
}
