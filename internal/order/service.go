package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MK7-m/qrcodesy/internal/core"
	"github.com/MK7-m/qrcodesy/internal/hours"
	"github.com/MK7-m/qrcodesy/internal/pricing"

	"github.com/sirupsen/logrus"
)

var (
	ErrNotFound            = errors.New("order not found")
	ErrItemNotFound        = errors.New("order item not found")
	ErrRestaurantNotFound  = core.ErrRestaurantNotFound
	ErrForbidden           = errors.New("you do not own this restaurant")
	ErrInvalidInput        = errors.New("invalid input")
	ErrOrderingDisabled    = errors.New("online ordering is not available for this restaurant")
	ErrOrderTypeNotAllowed = errors.New("order type is not available for this restaurant")
	ErrRestaurantClosed    = errors.New("restaurant is closed")
	ErrTableNotFound       = errors.New("table not found or inactive")
	ErrDishUnavailable     = errors.New("dish is unavailable")
	ErrOrderLocked         = errors.New("order is completed or cancelled")
)

const notifyTimeout = 5 * time.Second

// Notifier is told about new orders once they are committed.
type Notifier interface {
	OrderPlaced(ctx context.Context, restaurantName string, o *Order) error
}

type Service struct {
	repo        Repository
	restaurants core.RestaurantReader
	menu        core.MenuReader
	tables      core.TableReader
	notifier    Notifier
	location    *time.Location
	now         func() time.Time
}

func NewService(
	repo Repository,
	restaurants core.RestaurantReader,
	menu core.MenuReader,
	tables core.TableReader,
	notifier Notifier,
	location *time.Location,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		repo:        repo,
		restaurants: restaurants,
		menu:        menu,
		tables:      tables,
		notifier:    notifier,
		location:    location,
		now:         time.Now,
	}
}

// --------------------------------------------------
// Checkout (public)
// --------------------------------------------------

// CreateOrder validates a customer order against the restaurant's plan,
// schedule, tables and menu, prices it from the menu and stores it.
func (s *Service) CreateOrder(ctx context.Context, restaurantID string, input CreateInput) (*Order, error) {
	cfg, err := s.restaurants.GetOrderingConfig(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if !cfg.IsActive {
		return nil, ErrRestaurantNotFound
	}

	if !input.OrderType.Valid() {
		return nil, fmt.Errorf("%w: order_type must be dine_in, delivery or pickup", ErrInvalidInput)
	}
	if err := checkPlan(cfg.Plan, input.OrderType); err != nil {
		return nil, err
	}

	status := hours.ComputeStatus(cfg.OpeningHours, cfg.StatusOverride, s.now().In(s.location))
	if status == hours.StatusClosed {
		return nil, ErrRestaurantClosed
	}

	o := &Order{
		RestaurantID:    restaurantID,
		OrderType:       input.OrderType,
		CustomerName:    strings.TrimSpace(input.CustomerName),
		CustomerPhone:   strings.TrimSpace(input.CustomerPhone),
		CustomerAddress: strings.TrimSpace(input.CustomerAddress),
		Notes:           strings.TrimSpace(input.Notes),
		Status:          StatusNew,
	}
	if err := s.checkCustomer(ctx, restaurantID, o, strings.TrimSpace(input.TableID)); err != nil {
		return nil, err
	}

	items, err := s.priceItems(ctx, restaurantID, input.Items)
	if err != nil {
		return nil, err
	}
	o.Items = items

	deliveryFee := 0.0
	if o.OrderType == TypeDelivery {
		deliveryFee = cfg.DeliveryFee
	}
	applyTotals(o, pricing.CalculateOrderTotals(Subtotal(items), cfg.ExtraFees, deliveryFee))

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"restaurant_id": restaurantID,
		"order_id":      o.ID,
		"order_number":  o.OrderNumber,
		"order_type":    o.OrderType,
		"total":         o.Total,
	}).Info("order created")

	s.notify(ctx, cfg.Name, o)
	return o, nil
}

func checkPlan(plan string, orderType Type) error {
	switch plan {
	case core.PlanFull:
		return nil
	case core.PlanDineIn:
		if orderType != TypeDineIn {
			return ErrOrderTypeNotAllowed
		}
		return nil
	default:
		return ErrOrderingDisabled
	}
}

func (s *Service) checkCustomer(ctx context.Context, restaurantID string, o *Order, tableID string) error {
	switch o.OrderType {
	case TypeDineIn:
		if tableID == "" {
			return fmt.Errorf("%w: table_id is required for dine-in orders", ErrInvalidInput)
		}
		ok, err := s.tables.ActiveTableExists(ctx, restaurantID, tableID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrTableNotFound
		}
		o.TableID = tableID
	case TypeDelivery:
		if o.CustomerName == "" || o.CustomerPhone == "" || o.CustomerAddress == "" {
			return fmt.Errorf("%w: name, phone and address are required for delivery", ErrInvalidInput)
		}
	case TypePickup:
		if o.CustomerName == "" || o.CustomerPhone == "" {
			return fmt.Errorf("%w: name and phone are required for pickup", ErrInvalidInput)
		}
	}
	return nil
}

// priceItems snapshots menu names and prices; client prices are never trusted.
func (s *Service) priceItems(ctx context.Context, restaurantID string, inputs []ItemInput) ([]Item, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", ErrInvalidInput)
	}

	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
		}
		ids = append(ids, in.DishID)
	}

	dishes, err := s.menu.DishesByID(ctx, restaurantID, ids)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(inputs))
	for _, in := range inputs {
		dish, ok := dishes[in.DishID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrDishUnavailable, in.DishID)
		}
		if !dish.IsAvailable {
			return nil, fmt.Errorf("%w: %s", ErrDishUnavailable, dish.Name)
		}
		items = append(items, Item{
			DishID:    dish.ID,
			DishName:  dish.Name,
			DishPrice: dish.Price,
			Quantity:  in.Quantity,
			Notes:     strings.TrimSpace(in.Notes),
		})
	}
	return items, nil
}

func (s *Service) notify(ctx context.Context, restaurantName string, o *Order) {
	if s.notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	if err := s.notifier.OrderPlaced(ctx, restaurantName, o); err != nil {
		logrus.WithError(err).WithField("order_id", o.ID).Warn("new order notification failed")
	}
}

// --------------------------------------------------
// Dashboard (owner)
// --------------------------------------------------

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

func (s *Service) ListOrders(ctx context.Context, restaurantID, userID string, filter ListFilter) ([]*Order, error) {
	if err := s.authorize(ctx, restaurantID, userID); err != nil {
		return nil, err
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, filter.Status)
	}
	if filter.OrderType != "" && !filter.OrderType.Valid() {
		return nil, fmt.Errorf("%w: unknown order type %q", ErrInvalidInput, filter.OrderType)
	}
	return s.repo.List(ctx, restaurantID, filter)
}

func (s *Service) GetOrder(ctx context.Context, restaurantID, orderID, userID string) (*Order, error) {
	if err := s.authorize(ctx, restaurantID, userID); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, restaurantID, orderID)
}

func (s *Service) UpdateStatus(ctx context.Context, restaurantID, orderID, userID string, status Status) (*Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	if err := s.authorize(ctx, restaurantID, userID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, restaurantID, orderID, status); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id": orderID,
		"status":   status,
	}).Info("order status changed")

	return s.repo.Get(ctx, restaurantID, orderID)
}

// UpdateNotes replaces the order notes; blank notes are cleared.
func (s *Service) UpdateNotes(ctx context.Context, restaurantID, orderID, userID, notes string) (*Order, error) {
	if err := s.authorize(ctx, restaurantID, userID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateNotes(ctx, restaurantID, orderID, strings.TrimSpace(notes)); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, restaurantID, orderID)
}

// --------------------------------------------------
// Item edits
// --------------------------------------------------

// editableOrder loads an owned order that still accepts item edits.
func (s *Service) editableOrder(ctx context.Context, restaurantID, orderID, userID string) (*Order, error) {
	if err := s.authorize(ctx, restaurantID, userID); err != nil {
		return nil, err
	}
	o, err := s.repo.Get(ctx, restaurantID, orderID)
	if err != nil {
		return nil, err
	}
	if o.Locked() {
		return nil, ErrOrderLocked
	}
	return o, nil
}

// EditItem applies quantity and notes together so a request never lands
// half way. A quantity of zero or less removes the item and drops the notes.
func (s *Service) EditItem(ctx context.Context, restaurantID, orderID, userID, itemID string, edit ItemEdit) (*Order, error) {
	if edit.Empty() {
		return nil, fmt.Errorf("%w: quantity or notes is required", ErrInvalidInput)
	}
	if _, err := s.editableOrder(ctx, restaurantID, orderID, userID); err != nil {
		return nil, err
	}

	if edit.Notes != nil {
		notes := strings.TrimSpace(*edit.Notes)
		edit.Notes = &notes
	}

	switch {
	case edit.Quantity != nil && *edit.Quantity <= 0:
		if err := s.repo.DeleteItem(ctx, orderID, itemID); err != nil {
			return nil, err
		}
	default:
		if err := s.repo.UpdateItem(ctx, orderID, itemID, edit); err != nil {
			return nil, err
		}
	}

	if edit.Quantity == nil {
		return s.repo.Get(ctx, restaurantID, orderID)
	}
	return s.Recalculate(ctx, restaurantID, orderID)
}

// UpdateItemQuantity sets an item's quantity. Zero or less removes the item.
func (s *Service) UpdateItemQuantity(ctx context.Context, restaurantID, orderID, userID, itemID string, quantity int) (*Order, error) {
	return s.EditItem(ctx, restaurantID, orderID, userID, itemID, ItemEdit{Quantity: &quantity})
}

func (s *Service) UpdateItemNotes(ctx context.Context, restaurantID, orderID, userID, itemID, notes string) (*Order, error) {
	return s.EditItem(ctx, restaurantID, orderID, userID, itemID, ItemEdit{Notes: &notes})
}

func (s *Service) DeleteItem(ctx context.Context, restaurantID, orderID, userID, itemID string) (*Order, error) {
	if _, err := s.editableOrder(ctx, restaurantID, orderID, userID); err != nil {
		return nil, err
	}
	if err := s.repo.DeleteItem(ctx, orderID, itemID); err != nil {
		return nil, err
	}
	return s.Recalculate(ctx, restaurantID, orderID)
}

// Recalculate reprices an order from its current items and the
// restaurant's current fee settings, then stores the new totals.
func (s *Service) Recalculate(ctx context.Context, restaurantID, orderID string) (*Order, error) {
	o, err := s.repo.Get(ctx, restaurantID, orderID)
	if err != nil {
		return nil, err
	}
	cfg, err := s.restaurants.GetOrderingConfig(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	deliveryFee := 0.0
	if o.OrderType == TypeDelivery {
		deliveryFee = cfg.DeliveryFee
	}
	totals := pricing.CalculateOrderTotals(Subtotal(o.Items), cfg.ExtraFees, deliveryFee)

	if err := s.repo.SaveTotals(ctx, orderID, totals); err != nil {
		return nil, err
	}
	applyTotals(o, totals)

	logrus.WithFields(logrus.Fields{
		"order_id": orderID,
		"total":    o.Total,
	}).Debug("order recalculated")

	return o, nil
}
