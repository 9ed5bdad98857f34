package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MK7-m/qrcodesy/internal/auth"
	"github.com/MK7-m/qrcodesy/internal/config"
	"github.com/MK7-m/qrcodesy/internal/db"
	"github.com/MK7-m/qrcodesy/internal/logging"
	"github.com/MK7-m/qrcodesy/internal/menu"
	"github.com/MK7-m/qrcodesy/internal/notify"
	"github.com/MK7-m/qrcodesy/internal/order"
	"github.com/MK7-m/qrcodesy/internal/restaurant"
	"github.com/MK7-m/qrcodesy/internal/review"
	"github.com/MK7-m/qrcodesy/internal/router"
	"github.com/MK7-m/qrcodesy/internal/storage"
	"github.com/MK7-m/qrcodesy/internal/table"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// ───────────────────────── ENV ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config load failed")
	}
	logging.Setup(cfg.Env, cfg.LogLevel)
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── DATABASE ─────────────────────────
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("database connection failed")
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		logrus.WithError(err).Fatal("migrations failed")
	}

	// ───────────────────────── STORAGE (R2) ─────────────────────────
	var uploader storage.Uploader = storage.Disabled{}
	if cfg.R2.Enabled() {
		r2, err := storage.NewR2Client(ctx, cfg.R2)
		if err != nil {
			logrus.WithError(err).Fatal("r2 client init failed")
		}
		uploader = r2
	} else {
		logrus.Warn("R2 not configured, image uploads disabled")
	}

	// ───────────────────────── NOTIFICATIONS ─────────────────────────
	var notifier order.Notifier = notify.Noop{}
	if cfg.Telegram.Enabled() {
		tg, err := notify.NewTelegram(cfg.Telegram)
		if err != nil {
			logrus.WithError(err).Error("telegram init failed, order notifications disabled")
		} else {
			notifier = tg
		}
	}

	// ───────────────────────── SERVICES ─────────────────────────
	authService := auth.NewService(auth.NewPostgresUserRepository(pool))

	restaurantService := restaurant.NewService(
		restaurant.NewPostgresRepository(pool),
		uploader,
		cfg.Location,
	)

	menuService := menu.NewService(
		menu.NewPostgresRepository(pool),
		restaurantService,
		uploader,
	)

	tableService := table.NewService(
		table.NewPostgresRepository(pool),
		restaurantService,
		cfg.PublicMenuBaseURL,
	)

	orderService := order.NewService(
		order.NewPostgresRepository(pool),
		restaurantService,
		menuService,
		tableService,
		notifier,
		cfg.Location,
	)

	reviewService := review.NewService(
		review.NewPostgresRepository(pool),
		restaurantService,
	)

	// ───────────────────────── ROUTER ─────────────────────────
	r := router.New(cfg, router.Handlers{
		Auth:       auth.NewHandler(authService),
		Restaurant: restaurant.NewHandler(restaurantService),
		Menu:       menu.NewHandler(menuService),
		Table:      table.NewHandler(tableService),
		Order:      order.NewHandler(orderService),
		Review:     review.NewHandler(reviewService),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.WithField("port", cfg.Port).Info("🚀 server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}
}
