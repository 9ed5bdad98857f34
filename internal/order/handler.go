package order

import (
	"errors"
	"net/http"
	"time"

	"github.com/MK7-m/qrcodesy/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// POST /public/restaurants/:id/orders
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	o, err := h.service.CreateOrder(c.Request.Context(), restaurantID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// --------------------------------------------------
// GET /restaurants/:id/orders?status=&order_type=&from=&to=
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	restaurantID, userID, ok := ownerRequest(c)
	if !ok {
		return
	}

	filter := ListFilter{
		Status:    Status(c.Query("status")),
		OrderType: Type(c.Query("order_type")),
	}
	var err error
	if filter.From, err = h.parseTime(c.Query("from"), false); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from, use RFC3339 or YYYY-MM-DD"})
		return
	}
	if filter.To, err = h.parseTime(c.Query("to"), true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to, use RFC3339 or YYYY-MM-DD"})
		return
	}

	orders, err := h.service.ListOrders(c.Request.Context(), restaurantID, userID, filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// parseTime accepts RFC3339 or a calendar date in the service timezone.
// A date used as an upper bound covers the whole day.
func (h *Handler) parseTime(value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, h.service.location)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &t, nil
}

// --------------------------------------------------
// GET /restaurants/:id/orders/:orderID
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	restaurantID, userID, ok := ownerRequest(c)
	if !ok {
		return
	}
	orderID, ok := pathID(c, "orderID")
	if !ok {
		return
	}

	o, err := h.service.GetOrder(c.Request.Context(), restaurantID, orderID, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// --------------------------------------------------
// PATCH /restaurants/:id/orders/:orderID/status
// --------------------------------------------------
func (h *Handler) UpdateStatus(c *gin.Context) {
	restaurantID, userID, ok := ownerRequest(c)
	if !ok {
		return
	}
	orderID, ok := pathID(c, "orderID")
	if !ok {
		return
	}

	var req struct {
		Status Status `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	o, err := h.service.UpdateStatus(c.Request.Context(), restaurantID, orderID, userID, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// --------------------------------------------------
// PATCH /restaurants/:id/orders/:orderID/notes
// --------------------------------------------------
func (h *Handler) UpdateNotes(c *gin.Context) {
	restaurantID, userID, ok := ownerRequest(c)
	if !ok {
		return
	}
	orderID, ok := pathID(c, "orderID")
	if !ok {
		return
	}

	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	o, err := h.service.UpdateNotes(c.Request.Context(), restaurantID, orderID, userID, req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// --------------------------------------------------
// PATCH /restaurants/:id/orders/:orderID/items/:itemID
// --------------------------------------------------
func (h *Handler) UpdateItem(c *gin.Context) {
	restaurantID, userID, ok := ownerRequest(c)
	if !ok {
		return
	}
	orderID, ok := pathID(c, "orderID")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemID")
	if !ok {
		return
	}

	var req ItemEdit
	if err := c.ShouldBindJSON(&req); err != nil || req.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity or notes is required"})
		return
	}

	o, err := h.service.EditItem(c.Request.Context(), restaurantID, orderID, userID, itemID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// --------------------------------------------------
// DELETE /restaurants/:id/orders/:orderID/items/:itemID
// --------------------------------------------------
func (h *Handler) DeleteItem(c *gin.Context) {
	restaurantID, userID, ok := ownerRequest(c)
	if !ok {
		return
	}
	orderID, ok := pathID(c, "orderID")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemID")
	if !ok {
		return
	}

	o, err := h.service.DeleteItem(c.Request.Context(), restaurantID, orderID, userID, itemID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func pathID(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if uuid.Validate(id) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return "", false
	}
	return id, true
}

func ownerRequest(c *gin.Context) (restaurantID, userID string, ok bool) {
	restaurantID, ok = pathID(c, "id")
	if !ok {
		return "", "", false
	}

	userID, ok = middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", "", false
	}
	return restaurantID, userID, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrTableNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrItemNotFound), errors.Is(err, ErrRestaurantNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrOrderLocked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrOrderingDisabled),
		errors.Is(err, ErrOrderTypeNotAllowed),
		errors.Is(err, ErrRestaurantClosed),
		errors.Is(err, ErrDishUnavailable):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("order request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
