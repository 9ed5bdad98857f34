package table

import (
	"errors"
	"net/http"

	"github.com/MK7-m/qrcodesy/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GET /restaurants/:id/tables
func (h *Handler) List(c *gin.Context) {
	restaurantID, userID, ok := ownerRequest(c)
	if !ok {
		return
	}

	tables, err := h.service.List(c.Request.Context(), restaurantID, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tables)
}

// POST /restaurants/:id/tables
func (h *Handler) Create(c *gin.Context) {
	restaurantID, userID, ok := ownerRequest(c)
	if !ok {
		return
	}

	var req struct {
		TableNumber string `json:"table_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	t, err := h.service.Create(c.Request.Context(), restaurantID, userID, req.TableNumber)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// PATCH /restaurants/:id/tables/:tableID
func (h *Handler) Update(c *gin.Context) {
	restaurantID, userID, ok := ownerRequest(c)
	if !ok {
		return
	}
	tableID := c.Param("tableID")
	if uuid.Validate(tableID) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid table id"})
		return
	}

	var req UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	t, err := h.service.Update(c.Request.Context(), restaurantID, userID, tableID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DELETE /restaurants/:id/tables/:tableID
func (h *Handler) Delete(c *gin.Context) {
	restaurantID, userID, ok := ownerRequest(c)
	if !ok {
		return
	}
	tableID := c.Param("tableID")
	if uuid.Validate(tableID) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid table id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), restaurantID, userID, tableID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /restaurants/:id/qr
func (h *Handler) QRLinks(c *gin.Context) {
	restaurantID, userID, ok := ownerRequest(c)
	if !ok {
		return
	}

	links, err := h.service.QRLinks(c.Request.Context(), restaurantID, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, links)
}

func ownerRequest(c *gin.Context) (restaurantID, userID string, ok bool) {
	restaurantID = c.Param("id")
	if uuid.Validate(restaurantID) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
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
	case errors.Is(err, ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrDuplicateNumber):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("table request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
