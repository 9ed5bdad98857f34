package order

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MK7-m/qrcodesy/internal/hours"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(f *fixture) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(f.service)

	r.POST("/public/restaurants/:id/orders", h.Create)

	owner := r.Group("/restaurants/:id/orders", func(c *gin.Context) {
		c.Set("userID", testOwner)
	})
	owner.GET("", h.List)
	owner.GET("/:orderID", h.Get)
	owner.PATCH("/:orderID/status", h.UpdateStatus)
	owner.PATCH("/:orderID/items/:itemID", h.UpdateItem)
	owner.DELETE("/:orderID/items/:itemID", h.DeleteItem)
	return r
}

func send(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_CreateOrder(t *testing.T) {
	f := newFixture()
	r := newTestRouter(f)

	w := send(r, http.MethodPost, "/public/restaurants/"+testRestaurant+"/orders", deliveryInput(
		ItemInput{DishID: dishKabsa, Quantity: 1},
	))
	require.Equal(t, http.StatusCreated, w.Code)

	var o Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &o))
	assert.Equal(t, "ORD-0001", o.OrderNumber)
	assert.Equal(t, 72.5, o.Total)

	assert.Equal(t, http.StatusBadRequest,
		send(r, http.MethodPost, "/public/restaurants/nope/orders", deliveryInput()).Code)
	assert.Equal(t, http.StatusBadRequest,
		send(r, http.MethodPost, "/public/restaurants/"+testRestaurant+"/orders", deliveryInput()).Code)
}

func TestHandler_CreateOrder_Closed(t *testing.T) {
	f := newFixture()
	f.restaurants.cfg.StatusOverride = hours.OverrideClosed
	r := newTestRouter(f)

	w := send(r, http.MethodPost, "/public/restaurants/"+testRestaurant+"/orders", deliveryInput(
		ItemInput{DishID: dishKabsa, Quantity: 1},
	))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHandler_ItemEdits(t *testing.T) {
	f := newFixture()
	o := placeOrder(t, f)
	r := newTestRouter(f)
	base := "/restaurants/" + testRestaurant + "/orders/" + o.ID

	w := send(r, http.MethodPatch, base+"/items/"+o.Items[0].ID, gin.H{"quantity": 1, "notes": "spicy"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 70.0, updated.Subtotal)
	assert.Equal(t, "spicy", updated.Items[0].Notes)

	assert.Equal(t, http.StatusBadRequest, send(r, http.MethodPatch, base+"/items/"+o.Items[0].ID, gin.H{}).Code)

	require.Equal(t, http.StatusOK, send(r, http.MethodPatch, base+"/status", gin.H{"status": "completed"}).Code)
	assert.Equal(t, http.StatusConflict, send(r, http.MethodDelete, base+"/items/"+o.Items[0].ID, nil).Code)

	w = send(r, http.MethodPatch, base+"/items/"+o.Items[0].ID, gin.H{"quantity": 3, "notes": "mild"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "spicy", f.repo.orders[o.ID].Items[0].Notes)
}

func TestHandler_ListFilters(t *testing.T) {
	f := newFixture()
	placeOrder(t, f)
	r := newTestRouter(f)
	base := "/restaurants/" + testRestaurant + "/orders"

	assert.Equal(t, http.StatusOK, send(r, http.MethodGet, base+"?status=new&from=2024-01-01&to=2024-01-31", nil).Code)
	assert.Equal(t, http.StatusBadRequest, send(r, http.MethodGet, base+"?from=yesterday", nil).Code)
	assert.Equal(t, http.StatusBadRequest, send(r, http.MethodGet, base+"?status=lost", nil).Code)
}
