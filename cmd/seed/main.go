package main

import (
	"context"
	"flag"

	"lifeshare/internal/config"
	"lifeshare/internal/database"
	"lifeshare/pkg/logger"

	"github.com/sirupsen/logrus"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of users to create")
	numStories := flag.Int("stories", 40, "Number of stories to create")
	password := flag.String("password", "password123", "Password shared by every seeded user")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load configuration")
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logger.Log.WithError(err).Fatal("Failed to migrate database")
	}

	seeder := NewSeeder(db, cfg.JWTSecret, Options{
		Users:    *numUsers,
		Stories:  *numStories,
		Password: *password,
	})
	summary, err := seeder.Run(context.Background())
	if err != nil {
		logger.Log.WithError(err).Fatal("Seeding failed")
	}

	logger.Log.WithFields(logrus.Fields{
		"users":    summary.Users,
		"stories":  summary.Stories,
		"likes":    summary.Likes,
		"comments": summary.Comments,
	}).Info("Seeding complete")
}
