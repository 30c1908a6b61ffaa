package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lifeshare/internal/config"
	"lifeshare/internal/database"
	"lifeshare/internal/services"
	"lifeshare/pkg/logger"
	"lifeshare/pkg/rabbitmq"
	"lifeshare/pkg/sessionstore"

	"github.com/sirupsen/logrus"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load configuration")
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	if cfg.UsesDefaultSecret() {
		logger.Log.Warn("JWT_SECRET is not set, sessions are signed with the public default key")
	}

	// --- Database ---
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logger.Log.WithError(err).Fatal("Failed to migrate database")
	}

	// --- Session revocation store ---
	var sessions sessionstore.Store = sessionstore.NewMemoryStore()
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisStore, err := sessionstore.NewRedisStore(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer redisStore.Close()
		sessions = redisStore
	} else {
		logger.Log.Warn("REDIS_URL not set, session revocation is kept in memory")
	}

	// --- Event publisher ---
	// Events are optional; without a broker the services skip publishing.
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			logger.Log.WithError(err).Error("Failed to initialize RabbitMQ client, story events disabled")
		} else {
			defer mqClient.Close()
			events = mqClient
		}
	}

	app := newApp(cfg, db, sessions, events)

	// --- Start HTTP Server ---
	logger.Log.WithFields(logrus.Fields{
		"port":      cfg.AppPort,
		"db_driver": cfg.DBDriver,
	}).Info("Starting server")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			logger.Log.WithError(err).Fatal("Server failed to start")
		}
	}()

	<-quit
	logger.Log.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Log.WithError(err).Error("Error during Fiber shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server gracefully stopped")
}
