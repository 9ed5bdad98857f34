package router

import (
	"net/http"
	"time"

	"github.com/MK7-m/qrcodesy/internal/auth"
	"github.com/MK7-m/qrcodesy/internal/config"
	"github.com/MK7-m/qrcodesy/internal/menu"
	"github.com/MK7-m/qrcodesy/internal/middleware"
	"github.com/MK7-m/qrcodesy/internal/order"
	"github.com/MK7-m/qrcodesy/internal/restaurant"
	"github.com/MK7-m/qrcodesy/internal/review"
	"github.com/MK7-m/qrcodesy/internal/table"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth       *auth.Handler
	Restaurant *restaurant.Handler
	Menu       *menu.Handler
	Table      *table.Handler
	Order      *order.Handler
	Review     *review.Handler
}

func New(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
	}

	// ───────────────────────── PUBLIC (CUSTOMER MENU) ─────────────────────────
	public := r.Group("/public/restaurants/:id")
	{
		public.GET("", h.Restaurant.GetPublic)
		public.GET("/menu", h.Menu.PublicMenu)
		public.POST("/orders", h.Order.Create)
		public.GET("/reviews", h.Review.ListPublic)
		public.POST("/reviews", h.Review.Create)
	}

	// ───────────────────────── OWNER DASHBOARD ─────────────────────────
	restaurants := r.Group("/restaurants")
	restaurants.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleRestaurant, auth.RoleAdmin),
	)
	{
		restaurants.POST("", h.Restaurant.CreateRestaurant)
		restaurants.GET("/me", h.Restaurant.ListMyRestaurants)
		restaurants.GET("/:id", h.Restaurant.GetRestaurant)
		restaurants.PUT("/:id", h.Restaurant.UpdateSettings)
		restaurants.PUT("/:id/extra-fees", h.Restaurant.UpdateExtraFees)
		restaurants.PUT("/:id/opening-hours", h.Restaurant.UpdateOpeningHours)
		restaurants.PUT("/:id/status-override", h.Restaurant.SetStatusOverride)
		restaurants.POST("/:id/logo", h.Restaurant.UploadLogo)
		restaurants.POST("/:id/cover-images", h.Restaurant.UploadCoverImage)
		restaurants.PUT("/:id/cover-images", h.Restaurant.ReorderCoverImages)
		restaurants.DELETE("/:id/cover-images", h.Restaurant.DeleteCoverImage)
		restaurants.DELETE("/:id/reviews/:reviewID", h.Review.Delete)

		// Menu
		restaurants.GET("/:id/categories", h.Menu.ListCategories)
		restaurants.POST("/:id/categories", h.Menu.CreateCategory)
		restaurants.PUT("/:id/categories/:categoryID", h.Menu.UpdateCategory)
		restaurants.DELETE("/:id/categories/:categoryID", h.Menu.DeleteCategory)
		restaurants.GET("/:id/dishes", h.Menu.ListDishes)
		restaurants.POST("/:id/dishes", h.Menu.CreateDish)
		restaurants.PUT("/:id/dishes/:dishID", h.Menu.UpdateDish)
		restaurants.DELETE("/:id/dishes/:dishID", h.Menu.DeleteDish)
		restaurants.POST("/:id/dishes/:dishID/image", h.Menu.UploadDishImage)

		// Tables + QR
		restaurants.GET("/:id/tables", h.Table.List)
		restaurants.POST("/:id/tables", h.Table.Create)
		restaurants.PATCH("/:id/tables/:tableID", h.Table.Update)
		restaurants.DELETE("/:id/tables/:tableID", h.Table.Delete)
		restaurants.GET("/:id/qr", h.Table.QRLinks)

		// Orders
		restaurants.GET("/:id/orders", h.Order.List)
		restaurants.GET("/:id/orders/:orderID", h.Order.Get)
		restaurants.PATCH("/:id/orders/:orderID/status", h.Order.UpdateStatus)
		restaurants.PATCH("/:id/orders/:orderID/notes", h.Order.UpdateNotes)
		restaurants.PATCH("/:id/orders/:orderID/items/:itemID", h.Order.UpdateItem)
		restaurants.DELETE("/:id/orders/:orderID/items/:itemID", h.Order.DeleteItem)
	}

	return r
}
