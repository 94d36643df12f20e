package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqpAdapter "github.com/pratofeito/pratofeito/internal/adapter/amqp"
	httpAdapter "github.com/pratofeito/pratofeito/internal/adapter/http"
	"github.com/pratofeito/pratofeito/internal/adapter/logger"
	"github.com/pratofeito/pratofeito/internal/adapter/postgres"
	"github.com/pratofeito/pratofeito/internal/adapter/rabbitmq"
	"github.com/pratofeito/pratofeito/internal/app/location"
	"github.com/pratofeito/pratofeito/internal/app/order"
	"github.com/pratofeito/pratofeito/internal/auth"
	"github.com/pratofeito/pratofeito/internal/config"
	"github.com/pratofeito/pratofeito/internal/geocode"
)

func main() {
	mode := flag.String("mode", "", "Service mode: api, notification-subscriber, geocode-backfill, migrate")
	port := flag.Int("port", 0, "HTTP port (overrides config, api mode only)")
	flag.Parse()

	if *mode == "" {
		log.Fatal("--mode flag is required")
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.HTTP.Port = *port
	}

	ctx := context.Background()
	lgr := logger.New(*mode)

	switch *mode {
	case "migrate":
		if err := postgres.Migrate(cfg.Database); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		lgr.Info("migrations_applied", "Database schema is up to date", "startup", nil)

	case "api":
		runAPI(ctx, cfg, lgr)

	case "notification-subscriber":
		runNotificationSubscriber(ctx, cfg, lgr)

	case "geocode-backfill":
		runGeocodeBackfill(ctx, cfg, lgr)

	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}
}

func runAPI(ctx context.Context, cfg *config.Config, lgr logger.Logger) {
	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	lgr.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]interface{}{
		"host": cfg.Database.Host,
		"db":   cfg.Database.Database,
	})

	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
		"host": cfg.RabbitMQ.Host,
	})

	orderRepo := postgres.NewOrderRepository(db)
	restaurantRepo := postgres.NewRestaurantRepository(db)
	productRepo := postgres.NewProductRepository(db)

	publisher := rabbitmq.NewPublisher(mqConn)
	geocoder := geocode.NewResolver(cfg.Geocoding, lgr)
	tokens := auth.NewTokenManager(cfg.Auth.TokenSecret)

	orderService := order.NewService(orderRepo, restaurantRepo, productRepo, publisher, lgr)
	locationService := location.NewService(restaurantRepo, geocoder, lgr,
		time.Duration(cfg.Geocoding.ThrottleMillis)*time.Millisecond)

	orderHandler := httpAdapter.NewOrderHandler(orderService, lgr)
	locationHandler := httpAdapter.NewLocationHandler(locationService, lgr)
	router := httpAdapter.NewRouter(orderHandler, locationHandler, tokens, lgr)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lgr.Info("service_started", fmt.Sprintf("API started on port %d", cfg.HTTP.Port), "startup", map[string]interface{}{
		"port": cfg.HTTP.Port,
	})

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lgr.Info("shutdown_initiated", "Shutting down API", "shutdown", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "shutdown", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lgr.Error("server_error", "Server error", "runtime", nil, err)
	}
}

func runNotificationSubscriber(ctx context.Context, cfg *config.Config, lgr logger.Logger) {
	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	consumer := rabbitmq.NewConsumer(mqConn, lgr)
	handler := amqpAdapter.NewStatusUpdateHandler(lgr)

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	lgr.Info("service_started", "Notification subscriber started", "startup", nil)

	if err := consumer.ConsumeStatusUpdates(ctx, handler.Handle); err != nil && ctx.Err() == nil {
		lgr.Error("consumer_error", "Consumer stopped", "runtime", nil, err)
	}

	lgr.Info("shutdown_complete", "Notification subscriber stopped", "shutdown", nil)
}

func runGeocodeBackfill(ctx context.Context, cfg *config.Config, lgr logger.Logger) {
	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	restaurantRepo := postgres.NewRestaurantRepository(db)
	geocoder := geocode.NewResolver(cfg.Geocoding, lgr)
	locationService := location.NewService(restaurantRepo, geocoder, lgr,
		time.Duration(cfg.Geocoding.ThrottleMillis)*time.Millisecond)

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	updated, err := locationService.BackfillPlaceNames(ctx)
	if err != nil {
		lgr.Error("backfill_failed", "Place name backfill stopped early", "runtime", map[string]interface{}{
			"updated": updated,
		}, err)
		os.Exit(1)
	}

	lgr.Info("backfill_complete", "Place name backfill finished", "runtime", map[string]interface{}{
		"updated": updated,
	})
}
