package restaurant

import (
	"errors"
	"net/http"

	"github.com/MK7-m/qrcodesy/internal/hours"
	"github.com/MK7-m/qrcodesy/internal/middleware"
	"github.com/MK7-m/qrcodesy/internal/pricing"
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
// POST /restaurants
// --------------------------------------------------
func (h *Handler) CreateRestaurant(c *gin.Context) {
	var req Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	restaurant, err := h.service.CreateRestaurant(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, restaurant)
}

// --------------------------------------------------
// GET /restaurants/me
// --------------------------------------------------
func (h *Handler) ListMyRestaurants(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	restaurants, err := h.service.ListMyRestaurants(c.Request.Context(), userID)
	if err != nil {
		logrus.WithError(err).Error("list restaurants failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch restaurants"})
		return
	}

	c.JSON(http.StatusOK, restaurants)
}

// --------------------------------------------------
// GET /restaurants/:id
// --------------------------------------------------
func (h *Handler) GetRestaurant(c *gin.Context) {
	restaurantID, userID, ok := ownerRequest(c)
	if !ok {
		return
	}

	restaurant, err := h.service.GetForOwner(c.Request.Context(), restaurantID, userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, restaurant)
}

// --------------------------------------------------
// PUT /restaurants/:id
// --------------------------------------------------
func (h *Handler) UpdateSettings(c *gin.Context) {
	restaurantID, userID, ok := ownerRequest(c)
	if !ok {
		return
	}

	var req Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	restaurant, err := h.service.UpdateSettings(c.Request.Context(), restaurantID, userID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, restaurant)
}

// --------------------------------------------------
// PUT /restaurants/:id/extra-fees
// --------------------------------------------------
func (h *Handler) UpdateExtraFees(c *gin.Context) {
	restaurantID, userID, ok := ownerRequest(c)
	if !ok {
		return
	}

	var req struct {
		ExtraFees []pricing.ExtraFee `json:"extra_fees"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	fees, err := h.service.UpdateExtraFees(c.Request.Context(), restaurantID, userID, req.ExtraFees)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"extra_fees": fees})
}

// --------------------------------------------------
// PUT /restaurants/:id/opening-hours
// --------------------------------------------------
func (h *Handler) UpdateOpeningHours(c *gin.Context) {
	restaurantID, userID, ok := ownerRequest(c)
	if !ok {
		return
	}

	var req struct {
		OpeningHours []hours.DailyOpeningHours `json:"opening_hours"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	days, err := h.service.UpdateOpeningHours(c.Request.Context(), restaurantID, userID, req.OpeningHours)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"opening_hours": days,
		"hours_summary": hours.FormatOpeningHours(days),
	})
}

// --------------------------------------------------
// PUT /restaurants/:id/status-override
// --------------------------------------------------
func (h *Handler) SetStatusOverride(c *gin.Context) {
	restaurantID, userID, ok := ownerRequest(c)
	if !ok {
		return
	}

	var req struct {
		StatusOverride string `json:"status_override"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	override := hours.Override(req.StatusOverride)
	if err := h.service.SetStatusOverride(c.Request.Context(), restaurantID, userID, override); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status_override": override})
}

// --------------------------------------------------
// POST /restaurants/:id/logo
// --------------------------------------------------
func (h *Handler) UploadLogo(c *gin.Context) {
	restaurantID, userID, ok := ownerRequest(c)
	if !ok {
		return
	}

	file, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "logo file is required"})
		return
	}

	url, err := h.service.UploadLogo(c.Request.Context(), restaurantID, userID, file)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logo_url": url})
}

// --------------------------------------------------
// POST /restaurants/:id/cover-images
// --------------------------------------------------
func (h *Handler) UploadCoverImage(c *gin.Context) {
	restaurantID, userID, ok := ownerRequest(c)
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	images, err := h.service.UploadCoverImage(c.Request.Context(), restaurantID, userID, file)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"cover_images": images})
}

// --------------------------------------------------
// PUT /restaurants/:id/cover-images
// --------------------------------------------------
func (h *Handler) ReorderCoverImages(c *gin.Context) {
	restaurantID, userID, ok := ownerRequest(c)
	if !ok {
		return
	}

	var req struct {
		URLs []string `json:"urls"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	images, err := h.service.ReorderCoverImages(c.Request.Context(), restaurantID, userID, req.URLs)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cover_images": images})
}

// --------------------------------------------------
// DELETE /restaurants/:id/cover-images?url=
// --------------------------------------------------
func (h *Handler) DeleteCoverImage(c *gin.Context) {
	restaurantID, userID, ok := ownerRequest(c)
	if !ok {
		return
	}

	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	images, err := h.service.DeleteCoverImage(c.Request.Context(), restaurantID, userID, url)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cover_images": images})
}

// --------------------------------------------------
// GET /public/restaurants/:id
// --------------------------------------------------
func (h *Handler) GetPublic(c *gin.Context) {
	restaurantID := c.Param("id")
	if uuid.Validate(restaurantID) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
		return
	}

	view, err := h.service.GetPublicView(c.Request.Context(), restaurantID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
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
	case errors.Is(err, ErrInvalidInput), errors.Is(err, storage.ErrInvalidImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrCoverImageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrStorageDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("restaurant request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
