package menu

import (
	"context"
	"errors"
	"fmt"
	"math"
	"mime/multipart"
	"strings"

	"github.com/MK7-m/qrcodesy/internal/core"
	"github.com/MK7-m/qrcodesy/internal/storage"

	"github.com/google/uuid"
)

var (
	ErrCategoryNotFound   = errors.New("category not found")
	ErrDishNotFound       = errors.New("dish not found")
	ErrRestaurantNotFound = core.ErrRestaurantNotFound
	ErrForbidden          = errors.New("you do not own this restaurant")
	ErrInvalidInput       = errors.New("invalid input")
)

type Service struct {
	repo        Repository
	restaurants core.RestaurantReader
	uploader    storage.Uploader
}

func NewService(
	repo Repository,
	restaurants core.RestaurantReader,
	uploader storage.Uploader,
) *Service {
	if uploader == nil {
		uploader = storage.Disabled{}
	}
	return &Service{repo: repo, restaurants: restaurants, uploader: uploader}
}

func (s *Service) authorize(ctx context.Context, restaurantID, userID string) error {
	// 🔒 Ownership enforced here
	isOwner, err := s.restaurants.IsOwner(ctx, restaurantID, userID)
	if err != nil {
		return err
	}
	if !isOwner {
		return ErrForbidden
	}
	return nil
}

// --------------------------------------------------
// Categories
// --------------------------------------------------

func (s *Service) ListCategories(ctx context.Context, restaurantID, userID string) ([]*Category, error) {
	if err := s.authorize(ctx, restaurantID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListCategories(ctx, restaurantID, false)
}

func (s *Service) CreateCategory(
	ctx context.Context,
	restaurantID string,
	userID string,
	input CategoryInput,
) (*Category, error) {

	if err := s.authorize(ctx, restaurantID, userID); err != nil {
		return nil, err
	}

	category := &Category{RestaurantID: restaurantID, IsActive: true}
	if err := applyCategory(category, input); err != nil {
		return nil, err
	}

	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Service) UpdateCategory(
	ctx context.Context,
	restaurantID string,
	userID string,
	categoryID string,
	input CategoryInput,
) (*Category, error) {

	if err := s.authorize(ctx, restaurantID, userID); err != nil {
		return nil, err
	}

	category, err := s.repo.GetCategory(ctx, restaurantID, categoryID)
	if err != nil {
		return nil, err
	}
	if err := applyCategory(category, input); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Service) DeleteCategory(ctx context.Context, restaurantID, userID, categoryID string) error {
	if err := s.authorize(ctx, restaurantID, userID); err != nil {
		return err
	}
	return s.repo.DeleteCategory(ctx, restaurantID, categoryID)
}

// --------------------------------------------------
// Dishes
// --------------------------------------------------

func (s *Service) ListDishes(ctx context.Context, restaurantID, userID string) ([]*Dish, error) {
	if err := s.authorize(ctx, restaurantID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListDishes(ctx, restaurantID, false)
}

func (s *Service) CreateDish(
	ctx context.Context,
	restaurantID string,
	userID string,
	input DishInput,
) (*Dish, error) {

	if err := s.authorize(ctx, restaurantID, userID); err != nil {
		return nil, err
	}

	dish := &Dish{RestaurantID: restaurantID, IsAvailable: true}
	if err := s.applyDish(ctx, dish, input); err != nil {
		return nil, err
	}

	if err := s.repo.CreateDish(ctx, dish); err != nil {
		return nil, err
	}
	return dish, nil
}

func (s *Service) UpdateDish(
	ctx context.Context,
	restaurantID string,
	userID string,
	dishID string,
	input DishInput,
) (*Dish, error) {

	if err := s.authorize(ctx, restaurantID, userID); err != nil {
		return nil, err
	}

	dish, err := s.repo.GetDish(ctx, restaurantID, dishID)
	if err != nil {
		return nil, err
	}
	if input.CategoryID == "" {
		input.CategoryID = dish.CategoryID
	}
	if err := s.applyDish(ctx, dish, input); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateDish(ctx, dish); err != nil {
		return nil, err
	}
	return dish, nil
}

func (s *Service) DeleteDish(ctx context.Context, restaurantID, userID, dishID string) error {
	if err := s.authorize(ctx, restaurantID, userID); err != nil {
		return err
	}
	return s.repo.DeleteDish(ctx, restaurantID, dishID)
}

// --------------------------------------------------
// POST /restaurants/:id/dishes/:dishID/image
// --------------------------------------------------
func (s *Service) UploadDishImage(
	ctx context.Context,
	restaurantID string,
	userID string,
	dishID string,
	file *multipart.FileHeader,
) (string, error) {

	if err := s.authorize(ctx, restaurantID, userID); err != nil {
		return "", err
	}
	if _, err := s.repo.GetDish(ctx, restaurantID, dishID); err != nil {
		return "", err
	}

	url, err := storage.UploadFileHeader(ctx, s.uploader, "dishes", restaurantID, file)
	if err != nil {
		return "", err
	}

	if err := s.repo.UpdateDishImage(ctx, restaurantID, dishID, url); err != nil {
		return "", err
	}
	return url, nil
}

// --------------------------------------------------
// Public menu
// --------------------------------------------------

// GetPublicMenu returns the active categories of an active restaurant with
// their dishes nested in display order.
func (s *Service) GetPublicMenu(ctx context.Context, restaurantID string) ([]*PublicCategory, error) {
	cfg, err := s.restaurants.GetOrderingConfig(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if !cfg.IsActive {
		return nil, ErrRestaurantNotFound
	}

	categories, err := s.repo.ListCategories(ctx, restaurantID, true)
	if err != nil {
		return nil, err
	}
	dishes, err := s.repo.ListDishes(ctx, restaurantID, true)
	if err != nil {
		return nil, err
	}

	sections := make([]*PublicCategory, 0, len(categories))
	byID := make(map[string]*PublicCategory, len(categories))
	for _, c := range categories {
		section := &PublicCategory{
			ID:        c.ID,
			Name:      c.Name,
			NameEn:    c.NameEn,
			ImageURL:  c.ImageURL,
			SortOrder: c.SortOrder,
			Dishes:    []*Dish{},
		}
		sections = append(sections, section)
		byID[c.ID] = section
	}
	for _, d := range dishes {
		if section, ok := byID[d.CategoryID]; ok {
			section.Dishes = append(section.Dishes, d)
		}
	}

	return sections, nil
}

// --------------------------------------------------
// core.MenuReader
// --------------------------------------------------
func (s *Service) DishesByID(ctx context.Context, restaurantID string, ids []string) (map[string]core.Dish, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if uuid.Validate(id) == nil {
			valid = append(valid, id)
		}
	}

	out := make(map[string]core.Dish, len(valid))
	if len(valid) == 0 {
		return out, nil
	}

	dishes, err := s.repo.DishesByID(ctx, restaurantID, valid)
	if err != nil {
		return nil, err
	}
	for _, d := range dishes {
		out[d.ID] = core.Dish{
			ID:          d.ID,
			Name:        d.Name,
			Price:       d.Price,
			IsAvailable: d.IsAvailable,
		}
	}
	return out, nil
}

func applyCategory(category *Category, input CategoryInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}

	category.Name = name
	category.NameEn = strings.TrimSpace(input.NameEn)
	category.SortOrder = input.SortOrder
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	return nil
}

func (s *Service) applyDish(ctx context.Context, dish *Dish, input DishInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return fmt.Errorf("%w: dish name is required", ErrInvalidInput)
	}
	if math.IsNaN(input.Price) || math.IsInf(input.Price, 0) || input.Price < 0 {
		return fmt.Errorf("%w: price must be zero or more", ErrInvalidInput)
	}
	if uuid.Validate(input.CategoryID) != nil {
		return fmt.Errorf("%w: category_id is required", ErrInvalidInput)
	}

	// the category must belong to the same restaurant
	if _, err := s.repo.GetCategory(ctx, dish.RestaurantID, input.CategoryID); err != nil {
		return err
	}

	dish.CategoryID = input.CategoryID
	dish.Name = name
	dish.NameEn = strings.TrimSpace(input.NameEn)
	dish.Description = strings.TrimSpace(input.Description)
	dish.Price = input.Price
	dish.SortOrder = input.SortOrder
	if input.IsAvailable != nil {
		dish.IsAvailable = *input.IsAvailable
	}
	return nil
}
