package restaurant

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/MK7-m/qrcodesy/internal/core"
	"github.com/MK7-m/qrcodesy/internal/hours"
	"github.com/MK7-m/qrcodesy/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --------------------------------------------------
// Mock Repository
// --------------------------------------------------

type MockRepository struct {
	byID      map[string]*Restaurant
	createErr error
	nextID    int
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		byID:   make(map[string]*Restaurant),
		nextID: 1,
	}
}

func (m *MockRepository) Create(ctx context.Context, restaurant *Restaurant) error {
	if m.createErr != nil {
		return m.createErr
	}

	restaurant.ID = "00000000-0000-0000-0000-00000000000" + strconv.Itoa(m.nextID)
	m.nextID++
	restaurant.CreatedAt = time.Now()
	restaurant.UpdatedAt = restaurant.CreatedAt

	stored := *restaurant
	m.byID[restaurant.ID] = &stored
	return nil
}

func (m *MockRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Restaurant, error) {
	out := []*Restaurant{}
	for _, r := range m.byID {
		if r.OwnerID == ownerID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Restaurant, error) {
	r, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *MockRepository) UpdateSettings(ctx context.Context, restaurant *Restaurant) error {
	if _, ok := m.byID[restaurant.ID]; !ok {
		return ErrNotFound
	}
	cp := *restaurant
	m.byID[restaurant.ID] = &cp
	return nil
}

func (m *MockRepository) UpdateExtraFees(ctx context.Context, id string, fees []pricing.ExtraFee) error {
	r, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	r.ExtraFees = fees
	return nil
}

func (m *MockRepository) UpdateOpeningHours(ctx context.Context, id string, days []hours.DailyOpeningHours) error {
	r, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	r.OpeningHours = days
	return nil
}

func (m *MockRepository) UpdateStatusOverride(ctx context.Context, id string, override hours.Override) error {
	r, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	r.StatusOverride = override
	return nil
}

func (m *MockRepository) UpdateLogo(ctx context.Context, id string, logoURL string) error {
	r, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	r.LogoURL = logoURL
	return nil
}

func (m *MockRepository) UpdateCoverImages(ctx context.Context, id string, images []CoverImage) error {
	r, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	r.CoverImages = append([]CoverImage{}, images...)
	return nil
}

func (m *MockRepository) IsOwner(ctx context.Context, restaurantID string, userID string) (bool, error) {
	r, ok := m.byID[restaurantID]
	return ok && r.OwnerID == userID, nil
}

func newTestService(t *testing.T) (*Service, *MockRepository) {
	t.Helper()
	repo := NewMockRepository()
	return NewService(repo, nil, time.UTC), repo
}

func createTestRestaurant(t *testing.T, service *Service, ownerID string) *Restaurant {
	t.Helper()
	restaurant, err := service.CreateRestaurant(context.Background(), ownerID, Settings{Name: "Taj Palace"})
	require.NoError(t, err)
	return restaurant
}

// --------------------------------------------------
// TESTS
// --------------------------------------------------

var _ core.RestaurantReader = (*Service)(nil)

func fee(v float64) *float64 { return &v }

func TestCreateRestaurant_Success(t *testing.T) {
	service, _ := newTestService(t)

	restaurant, err := service.CreateRestaurant(context.Background(), "owner-123", Settings{
		Name:        "  Taj Palace ",
		City:        "Riyadh",
		DeliveryFee: fee(15),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, restaurant.ID)
	assert.Equal(t, "Taj Palace", restaurant.Name)
	assert.Equal(t, core.PlanMenuOnly, restaurant.Plan)
	assert.Equal(t, hours.OverrideAuto, restaurant.StatusOverride)
	assert.True(t, restaurant.IsActive)
	assert.NotNil(t, restaurant.ExtraFees)
	assert.NotNil(t, restaurant.OpeningHours)
}

func TestCreateRestaurant_Validation(t *testing.T) {
	service, _ := newTestService(t)

	cases := map[string]Settings{
		"missing name":          {City: "Riyadh"},
		"unknown plan":          {Name: "X", Plan: "z"},
		"negative delivery fee": {Name: "X", DeliveryFee: fee(-1)},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := service.CreateRestaurant(context.Background(), "owner", input)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestListMyRestaurants(t *testing.T) {
	service, _ := newTestService(t)
	createTestRestaurant(t, service, "owner-123")
	createTestRestaurant(t, service, "owner-123")
	createTestRestaurant(t, service, "owner-456")

	mine, err := service.ListMyRestaurants(context.Background(), "owner-123")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	none, err := service.ListMyRestaurants(context.Background(), "no-restaurants")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetForOwner(t *testing.T) {
	service, _ := newTestService(t)
	restaurant := createTestRestaurant(t, service, "owner-1")

	_, err := service.GetForOwner(context.Background(), restaurant.ID, "owner-2")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = service.GetForOwner(context.Background(), "missing", "owner-1")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := service.GetForOwner(context.Background(), restaurant.ID, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, restaurant.ID, got.ID)
}

func TestUpdateSettings_KeepsPlanWhenOmitted(t *testing.T) {
	service, _ := newTestService(t)
	restaurant := createTestRestaurant(t, service, "owner-1")

	inactive := false
	updated, err := service.UpdateSettings(context.Background(), restaurant.ID, "owner-1", Settings{
		Name:     "Renamed",
		Plan:     "C",
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, core.PlanFull, updated.Plan)
	assert.False(t, updated.IsActive)

	updated, err = service.UpdateSettings(context.Background(), restaurant.ID, "owner-1", Settings{Name: "Again"})
	require.NoError(t, err)
	assert.Equal(t, core.PlanFull, updated.Plan)
	assert.False(t, updated.IsActive)
}

func TestUpdateSettings_KeepsDeliveryFeeWhenOmitted(t *testing.T) {
	service, _ := newTestService(t)
	restaurant := createTestRestaurant(t, service, "owner-1")

	updated, err := service.UpdateSettings(context.Background(), restaurant.ID, "owner-1", Settings{
		Name:        "Renamed",
		DeliveryFee: fee(12.5),
	})
	require.NoError(t, err)
	assert.Equal(t, 12.5, updated.DeliveryFee)

	updated, err = service.UpdateSettings(context.Background(), restaurant.ID, "owner-1", Settings{Name: "Again"})
	require.NoError(t, err)
	assert.Equal(t, 12.5, updated.DeliveryFee)

	updated, err = service.UpdateSettings(context.Background(), restaurant.ID, "owner-1", Settings{Name: "Free", DeliveryFee: fee(0)})
	require.NoError(t, err)
	assert.Zero(t, updated.DeliveryFee)
}

func TestUpdateExtraFees(t *testing.T) {
	service, repo := newTestService(t)
	restaurant := createTestRestaurant(t, service, "owner-1")

	fees, err := service.UpdateExtraFees(context.Background(), restaurant.ID, "owner-1", []pricing.ExtraFee{
		{Label: " Service ", Percentage: 10},
		{Label: "VAT", Percentage: 15},
	})
	require.NoError(t, err)
	assert.Equal(t, "Service", fees[0].Label)
	assert.Equal(t, fees, repo.byID[restaurant.ID].ExtraFees)

	_, err = service.UpdateExtraFees(context.Background(), restaurant.ID, "intruder", fees)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestValidateExtraFees(t *testing.T) {
	tests := []struct {
		name    string
		fees    []pricing.ExtraFee
		wantErr bool
	}{
		{"nil is fine", nil, false},
		{"boundaries", []pricing.ExtraFee{{Label: "a", Percentage: 0}, {Label: "b", Percentage: 100}}, false},
		{"blank label", []pricing.ExtraFee{{Label: "   ", Percentage: 5}}, true},
		{"negative", []pricing.ExtraFee{{Label: "a", Percentage: -1}}, true},
		{"over 100", []pricing.ExtraFee{{Label: "a", Percentage: 100.5}}, true},
		{"too many", make6Fees(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ValidateExtraFees(tt.fees)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, out)
		})
	}
}

func make6Fees() []pricing.ExtraFee {
	fees := make([]pricing.ExtraFee, MaxExtraFees+1)
	for i := range fees {
		fees[i] = pricing.ExtraFee{Label: "fee " + strconv.Itoa(i), Percentage: 1}
	}
	return fees
}

func TestValidateOpeningHours(t *testing.T) {
	tests := []struct {
		name    string
		days    []hours.DailyOpeningHours
		wantErr bool
	}{
		{"empty", nil, false},
		{"valid", []hours.DailyOpeningHours{
			{Day: "sat", Ranges: []hours.TimeRange{{From: "09:00", To: "12:00"}, {From: "16:00", To: "23:59"}}},
			{Day: "fri"},
		}, false},
		{"unknown day", []hours.DailyOpeningHours{{Day: "monday"}}, true},
		{"duplicate day", []hours.DailyOpeningHours{{Day: "mon"}, {Day: "mon"}}, true},
		{"not padded", []hours.DailyOpeningHours{{Day: "mon", Ranges: []hours.TimeRange{{From: "9:00", To: "17:00"}}}}, true},
		{"bad hour", []hours.DailyOpeningHours{{Day: "mon", Ranges: []hours.TimeRange{{From: "09:00", To: "24:00"}}}}, true},
		{"overnight", []hours.DailyOpeningHours{{Day: "mon", Ranges: []hours.TimeRange{{From: "22:00", To: "02:00"}}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateOpeningHours(tt.days)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSetStatusOverride(t *testing.T) {
	service, repo := newTestService(t)
	restaurant := createTestRestaurant(t, service, "owner-1")

	require.NoError(t, service.SetStatusOverride(context.Background(), restaurant.ID, "owner-1", hours.OverrideBusy))
	assert.Equal(t, hours.OverrideBusy, repo.byID[restaurant.ID].StatusOverride)

	err := service.SetStatusOverride(context.Background(), restaurant.ID, "owner-1", hours.Override("sleeping"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetPublicView(t *testing.T) {
	service, _ := newTestService(t)
	restaurant := createTestRestaurant(t, service, "owner-1")

	_, err := service.UpdateOpeningHours(context.Background(), restaurant.ID, "owner-1", []hours.DailyOpeningHours{
		{Day: "mon", Ranges: []hours.TimeRange{{From: "09:00", To: "17:00"}}},
	})
	require.NoError(t, err)

	riyadh, err := time.LoadLocation("Asia/Riyadh")
	require.NoError(t, err)
	service.location = riyadh

	// Monday 07:00 UTC is 10:00 in Riyadh.
	service.now = func() time.Time { return time.Date(2024, 1, 15, 7, 0, 0, 0, time.UTC) }

	view, err := service.GetPublicView(context.Background(), restaurant.ID)
	require.NoError(t, err)
	assert.Equal(t, hours.StatusOpen, view.Status)
	assert.Equal(t, "09:00 – 17:00", view.HoursSummary)

	// 15:00 UTC is 18:00 in Riyadh.
	service.now = func() time.Time { return time.Date(2024, 1, 15, 15, 0, 0, 0, time.UTC) }
	view, err = service.GetPublicView(context.Background(), restaurant.ID)
	require.NoError(t, err)
	assert.Equal(t, hours.StatusClosed, view.Status)
}

func TestGetPublicView_InactiveIsNotFound(t *testing.T) {
	service, _ := newTestService(t)
	restaurant := createTestRestaurant(t, service, "owner-1")

	inactive := false
	_, err := service.UpdateSettings(context.Background(), restaurant.ID, "owner-1", Settings{Name: "X", IsActive: &inactive})
	require.NoError(t, err)

	_, err = service.GetPublicView(context.Background(), restaurant.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetOrderingConfig(t *testing.T) {
	service, _ := newTestService(t)
	restaurant := createTestRestaurant(t, service, "owner-1")
	_, err := service.UpdateExtraFees(context.Background(), restaurant.ID, "owner-1", []pricing.ExtraFee{{Label: "VAT", Percentage: 15}})
	require.NoError(t, err)

	cfg, err := service.GetOrderingConfig(context.Background(), restaurant.ID)
	require.NoError(t, err)
	assert.Equal(t, "Taj Palace", cfg.Name)
	assert.Equal(t, []pricing.ExtraFee{{Label: "VAT", Percentage: 15}}, cfg.ExtraFees)

	_, err = service.GetOrderingConfig(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrRestaurantNotFound)
}
