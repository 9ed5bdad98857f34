package review

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MK7-m/qrcodesy/internal/core"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testRestaurant = "11111111-1111-1111-1111-111111111111"
	testOwner      = "owner-1"
)

type fakeRestaurants struct {
	active bool
}

func (f *fakeRestaurants) IsOwner(ctx context.Context, restaurantID, userID string) (bool, error) {
	return restaurantID == testRestaurant && userID == testOwner, nil
}

func (f *fakeRestaurants) GetOrderingConfig(ctx context.Context, restaurantID string) (*core.OrderingConfig, error) {
	if restaurantID != testRestaurant {
		return nil, core.ErrRestaurantNotFound
	}
	return &core.OrderingConfig{RestaurantID: restaurantID, IsActive: f.active}, nil
}

type memoryRepository struct {
	reviews []Review
	clock   time.Time
}

func (m *memoryRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]Review, error) {
	out := []Review{}
	for i := len(m.reviews) - 1; i >= 0; i-- {
		if m.reviews[i].RestaurantID == restaurantID {
			out = append(out, m.reviews[i])
		}
	}
	return out, nil
}

func (m *memoryRepository) Create(ctx context.Context, review *Review) error {
	review.ID = uuid.New().String()
	m.clock = m.clock.Add(time.Minute)
	review.CreatedAt = m.clock
	m.reviews = append(m.reviews, *review)
	return nil
}

func (m *memoryRepository) Delete(ctx context.Context, restaurantID, reviewID string) error {
	for i, rv := range m.reviews {
		if rv.RestaurantID == restaurantID && rv.ID == reviewID {
			m.reviews = append(m.reviews[:i], m.reviews[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func newTestService() (*Service, *memoryRepository, *fakeRestaurants) {
	repo := &memoryRepository{clock: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)}
	restaurants := &fakeRestaurants{active: true}
	return NewService(repo, restaurants), repo, restaurants
}

func TestCreateAndList(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	for _, rating := range []int{5, 4, 4} {
		_, err := service.Create(ctx, testRestaurant, CreateInput{AuthorName: " Sara ", Rating: rating})
		require.NoError(t, err)
	}

	listing, err := service.ListPublic(ctx, testRestaurant)
	require.NoError(t, err)
	assert.Equal(t, 3, listing.RatingCount)
	assert.Equal(t, 4.3, listing.Rating)
	assert.Equal(t, "Sara", listing.Reviews[0].AuthorName)
	assert.True(t, listing.Reviews[0].CreatedAt.After(listing.Reviews[2].CreatedAt))
}

func TestListPublic_Empty(t *testing.T) {
	service, _, _ := newTestService()

	listing, err := service.ListPublic(context.Background(), testRestaurant)
	require.NoError(t, err)
	assert.NotNil(t, listing.Reviews)
	assert.Zero(t, listing.Rating)
	assert.Zero(t, listing.RatingCount)
}

func TestCreate_Validation(t *testing.T) {
	cases := map[string]CreateInput{
		"missing author":  {Rating: 5},
		"rating too low":  {AuthorName: "A", Rating: 0},
		"rating too high": {AuthorName: "A", Rating: 6},
		"long comment":    {AuthorName: "A", Rating: 3, Comment: strings.Repeat("x", maxCommentLength+1)},
		"long author":     {AuthorName: strings.Repeat("a", maxAuthorLength+1), Rating: 3},
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			service, repo, _ := newTestService()
			_, err := service.Create(context.Background(), testRestaurant, input)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, repo.reviews)
		})
	}
}

func TestInactiveRestaurantIsHidden(t *testing.T) {
	service, _, restaurants := newTestService()
	restaurants.active = false
	ctx := context.Background()

	_, err := service.ListPublic(ctx, testRestaurant)
	assert.ErrorIs(t, err, ErrRestaurantNotFound)

	_, err = service.Create(ctx, testRestaurant, CreateInput{AuthorName: "A", Rating: 5})
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestDelete_OwnerOnly(t *testing.T) {
	service, repo, _ := newTestService()
	ctx := context.Background()

	rv, err := service.Create(ctx, testRestaurant, CreateInput{AuthorName: "A", Rating: 1})
	require.NoError(t, err)

	assert.ErrorIs(t, service.Delete(ctx, testRestaurant, "intruder", rv.ID), ErrForbidden)
	require.NoError(t, service.Delete(ctx, testRestaurant, testOwner, rv.ID))
	assert.Empty(t, repo.reviews)
	assert.ErrorIs(t, service.Delete(ctx, testRestaurant, testOwner, rv.ID), ErrNotFound)
}

func TestHandler(t *testing.T) {
	service, _, _ := newTestService()
	handler := NewHandler(service)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/public/restaurants/:id/reviews", handler.ListPublic)
	r.POST("/public/restaurants/:id/reviews", handler.Create)
	r.DELETE("/restaurants/:id/reviews/:reviewID", func(c *gin.Context) { c.Set("userID", testOwner) }, handler.Delete)

	send := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}
	base := "/public/restaurants/" + testRestaurant + "/reviews"

	w := send(http.MethodPost, base, `{"author_name":"Sara","rating":5,"comment":"great kabsa"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created Review
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	assert.Equal(t, http.StatusBadRequest, send(http.MethodPost, base, `{"author_name":"Sara","rating":9}`).Code)
	assert.Equal(t, http.StatusBadRequest, send(http.MethodGet, "/public/restaurants/nope/reviews", "").Code)
	assert.Equal(t, http.StatusNotFound,
		send(http.MethodGet, "/public/restaurants/"+uuid.New().String()+"/reviews", "").Code)

	w = send(http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, w.Code)
	var listing Listing
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Equal(t, 5.0, listing.Rating)
	require.Len(t, listing.Reviews, 1)
	assert.Equal(t, "great kabsa", listing.Reviews[0].Comment)

	path := "/restaurants/" + testRestaurant + "/reviews/" + created.ID
	assert.Equal(t, http.StatusNoContent, send(http.MethodDelete, path, "").Code)
	assert.Equal(t, http.StatusNotFound, send(http.MethodDelete, path, "").Code)
}
