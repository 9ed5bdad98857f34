package menu

import (
	"errors"
	"net/http"

	"github.com/MK7-m/qrcodesy/internal/middleware"
	"github.com/MK7-m/qrcodesy/internal/storage"

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

// --------------------------------------------------
// Categories
// --------------------------------------------------

func (h *Handler) ListCategories(c *gin.Context) {
	restaurantID, userID, ok := ownerRequest(c)
	if !ok {
		return
	}

	categories, err := h.service.ListCategories(c.Request.Context(), restaurantID, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	restaurantID, userID, ok := ownerRequest(c)
	if !ok {
		return
	}

	var req CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	category, err := h.service.CreateCategory(c.Request.Context(), restaurantID, userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	restaurantID, userID, ok := ownerRequest(c)
	if !ok {
		return
	}
	categoryID, ok := pathID(c, "categoryID")
	if !ok {
		return
	}

	var req CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	category, err := h.service.UpdateCategory(c.Request.Context(), restaurantID, userID, categoryID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	restaurantID, userID, ok := ownerRequest(c)
	if !ok {
		return
	}
	categoryID, ok := pathID(c, "categoryID")
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), restaurantID, userID, categoryID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --------------------------------------------------
// Dishes
// --------------------------------------------------

func (h *Handler) ListDishes(c *gin.Context) {
	restaurantID, userID, ok := ownerRequest(c)
	if !ok {
		return
	}

	dishes, err := h.service.ListDishes(c.Request.Context(), restaurantID, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dishes)
}

func (h *Handler) CreateDish(c *gin.Context) {
	restaurantID, userID, ok := ownerRequest(c)
	if !ok {
		return
	}

	var req DishInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	dish, err := h.service.CreateDish(c.Request.Context(), restaurantID, userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dish)
}

func (h *Handler) UpdateDish(c *gin.Context) {
	restaurantID, userID, ok := ownerRequest(c)
	if !ok {
		return
	}
	dishID, ok := pathID(c, "dishID")
	if !ok {
		return
	}

	var req DishInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	dish, err := h.service.UpdateDish(c.Request.Context(), restaurantID, userID, dishID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dish)
}

func (h *Handler) DeleteDish(c *gin.Context) {
	restaurantID, userID, ok := ownerRequest(c)
	if !ok {
		return
	}
	dishID, ok := pathID(c, "dishID")
	if !ok {
		return
	}

	if err := h.service.DeleteDish(c.Request.Context(), restaurantID, userID, dishID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --------------------------------------------------
// POST /restaurants/:id/dishes/:dishID/image
// --------------------------------------------------
func (h *Handler) UploadDishImage(c *gin.Context) {
	restaurantID, userID, ok := ownerRequest(c)
	if !ok {
		return
	}
	dishID, ok := pathID(c, "dishID")
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	url, err := h.service.UploadDishImage(c.Request.Context(), restaurantID, userID, dishID, file)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

// --------------------------------------------------
// GET /public/restaurants/:id/menu
// --------------------------------------------------
func (h *Handler) PublicMenu(c *gin.Context) {
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return
	}

	sections, err := h.service.GetPublicMenu(c.Request.Context(), restaurantID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": sections})
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
	case errors.Is(err, ErrInvalidInput), errors.Is(err, storage.ErrInvalidImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrCategoryNotFound), errors.Is(err, ErrDishNotFound), errors.Is(err, ErrRestaurantNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrStorageDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("menu request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
