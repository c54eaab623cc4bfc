package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/flicky/storefront/internal/config"
	"github.com/flicky/storefront/internal/handler"
	"github.com/flicky/storefront/internal/kv"
	"github.com/flicky/storefront/internal/llm"
	"github.com/flicky/storefront/internal/objectstore"
	"github.com/flicky/storefront/internal/repository"
	"github.com/flicky/storefront/internal/service"
	"github.com/flicky/storefront/internal/worker"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Storage
	medium, err := kv.Open(ctx, cfg, log)
	if err != nil {
		log.Error("open storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer medium.Close()
	log.Info("storage ready", "driver", cfg.Storage.Driver)

	store := repository.New(medium, log)
	if err := store.Seed(ctx); err != nil {
		log.Error("seed storage", "error", err)
		os.Exit(1)
	}
	tokens := repository.NewTokenStore(medium)

	// Notifications
	var notifier worker.Notifier = worker.NewLogNotifier(log)
	var notificationWorker *worker.NotificationWorker
	if cfg.RabbitMQ.URL != "" {
		amqpConn, err := amqp.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			log.Error("connect to RabbitMQ", "error", err)
			os.Exit(1)
		}
		defer amqpConn.Close()

		amqpCh, err := amqpConn.Channel()
		if err != nil {
			log.Error("open RabbitMQ channel", "error", err)
			os.Exit(1)
		}
		defer amqpCh.Close()

		if err := worker.SetupRabbitMQ(amqpCh); err != nil {
			log.Error("setup RabbitMQ", "error", err)
			os.Exit(1)
		}
		log.Info("connected to RabbitMQ")

		notificationWorker = worker.NewNotificationWorker(amqpCh, medium, worker.NewLogNotifier(log), log)
		notifier = worker.NewPublisher(amqpCh)
	}

	// Assistant
	var generator llm.Generator
	if gemini, err := llm.NewGemini(ctx, cfg.Assistant.APIKey, cfg.Assistant.Model); err != nil {
		log.Warn("assistant disabled, serving fallback replies", "error", err)
	} else {
		generator = gemini
	}

	// Backups
	var uploader service.BackupUploader
	if up, err := objectstore.New(ctx, cfg.Backup); err != nil {
		if !errors.Is(err, objectstore.ErrNotConfigured) {
			log.Error("configure backups", "error", err)
			os.Exit(1)
		}
		log.Info("backups disabled")
	} else {
		uploader = up
	}

	// Services
	catalogSvc := service.NewCatalogService(store.Products)
	bannerSvc := service.NewBannerService(store.Banners)
	wishlistSvc := service.NewWishlistService(store.Wishlist, store.Products)
	checkoutSvc := service.NewCheckoutService(store.Products, store.Orders, notifier, log)
	orderSvc := service.NewOrderService(store.Orders)
	authSvc := service.NewAuthService(store.Users, store.Session, tokens, notifier,
		cfg.Verification.CodeTTL, cfg.Verification.FlagTTL, log)
	adminSvc, err := service.NewAdminService(store.Users, store.Products, store.Orders, store, uploader,
		service.AdminCredentials{Email: cfg.Admin.Email, Password: cfg.Admin.Password},
		cfg.JWT.Secret, cfg.JWT.Expiration)
	if err != nil {
		log.Error("create admin service", "error", err)
		os.Exit(1)
	}
	assistantSvc := service.NewAssistantService(generator, store.Products, cfg.Assistant.Timeout, log)

	// Router
	router := handler.NewRouter(handler.Handlers{
		Health:    handler.NewHealthHandler(store, cfg.Storage.Driver),
		Product:   handler.NewProductHandler(catalogSvc),
		Banner:    handler.NewBannerHandler(bannerSvc),
		Wishlist:  handler.NewWishlistHandler(wishlistSvc),
		Order:     handler.NewOrderHandler(checkoutSvc, orderSvc, authSvc),
		Auth:      handler.NewAuthHandler(authSvc),
		Admin:     handler.NewAdminHandler(adminSvc),
		Assistant: handler.NewAssistantHandler(assistantSvc),
	}, handler.RouterConfig{
		JWTSecret:      cfg.JWT.Secret,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, log)

	if notificationWorker != nil {
		if err := notificationWorker.Start(ctx); err != nil {
			log.Error("start notification worker", "error", err)
			os.Exit(1)
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting HTTP server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}

	if notificationWorker != nil {
		notificationWorker.Stop()
		time.Sleep(500 * time.Millisecond)
	}
	cancel()
	log.Info("server stopped")
}
