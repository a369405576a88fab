package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/events"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/handlers"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/logging"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/repository"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/server"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	cfg := config.Load()

	logger := logging.NewLoggerV2("freeshipping-service")
	defer logging.Sync()

	logging.Infof("Starting freeshipping-service on port %d", cfg.Server.Port)

	db, err := initDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", logging.Fields{"error": err.Error()})
	}
	defer db.Close()

	redisClient := repository.NewRedisClient(cfg.Redis)
	defer redisClient.Close()

	configRepo := repository.NewPostgresConfigRepository(db, logger)
	configCache := repository.NewRedisConfigCache(redisClient, cfg.Redis.ConfigTTL)
	quoteRepo := repository.NewPostgresQuoteRepository(db, logger)
	sessionStore := repository.NewRedisSessionStore(redisClient)

	var publisher service.ConfigEventPublisher
	if cfg.Features.EnableConfigEvents {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka, logger)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	scopeConfig := service.NewScopeConfig(configRepo, configCache, publisher)
	checkoutSession := service.NewCheckoutSession(sessionStore, quoteRepo)
	formatter := service.NewPriceFormatter(cfg.Currency)
	calculator := service.NewProgressCalculator(scopeConfig, checkoutSession, formatter)

	checks := []handlers.ReadinessCheck{
		{Name: "postgres", Check: configRepo.Ping},
		{Name: "redis", Check: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}},
	}

	h := handlers.NewHandlers(calculator, scopeConfig, checks, cfg)

	srv := server.New(h, cfg)

	go func() {
		logger.Info("Server starting", logging.Fields{
			"port":                 cfg.Server.Port,
			"currency":             cfg.Currency.Code,
			"enable_config_events": cfg.Features.EnableConfigEvents,
			"enable_admin_api":     cfg.Features.EnableAdminAPI,
		})
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", logging.Fields{"error": err.Error()})
		}
	}()

	var eventConsumer *events.KafkaConsumer
	if cfg.Features.EnableConfigEvents {
		eventConsumer = events.NewKafkaConsumer(cfg.Kafka, scopeConfig, logger)
		go func() {
			if err := eventConsumer.Start(context.Background()); err != nil {
				logger.Error("Event consumer failed", logging.Fields{"error": err.Error()})
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if eventConsumer != nil {
		eventConsumer.Stop()
	}

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", logging.Fields{"error": err.Error()})
	}

	logger.Info("Server exited")
}

func initDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	logging.Info("Database connected", logging.Fields{
		"host": cfg.Database.Host,
		"name": cfg.Database.Name,
	})

	return db, nil
}
