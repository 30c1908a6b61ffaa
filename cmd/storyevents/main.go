// Command storyevents consumes story events from RabbitMQ and logs them.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"lifeshare/internal/config"
	"lifeshare/internal/models"
	"lifeshare/pkg/logger"
	"lifeshare/pkg/rabbitmq"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load configuration")
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	if cfg.RabbitMQURL == "" {
		logger.Log.Fatal("RABBITMQ_URL must be set")
	}

	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to initialize RabbitMQ client")
	}

	done := make(chan error, 1)
	go func() {
		logger.Log.WithField("queue", rabbitmq.QueueName).Info("Starting story event consumer...")
		done <- mqClient.ConsumeStoryEvents(logEvent)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Log.Info("Shutting down consumer...")
	case err := <-done:
		if err != nil {
			logger.Log.WithError(err).Error("Consumer stopped")
		} else {
			logger.Log.Warn("Delivery channel closed")
		}
	}

	if err := mqClient.Close(); err != nil {
		logger.Log.WithError(err).Error("Error closing RabbitMQ client")
	}
}

// logEvent writes one structured log line per event.
func logEvent(event models.StoryEvent) error {
	fields := logrus.Fields{
		"event_id":    event.ID,
		"event_type":  event.Type,
		"username":    event.Username,
		"occurred_at": event.OccurredAt,
	}
	if event.StoryID != 0 {
		fields["story_id"] = event.StoryID
	}
	if event.CommentID != 0 {
		fields["comment_id"] = event.CommentID
	}
	if event.Category != "" {
		fields["category"] = event.Category
	}
	if event.Type == models.EventStoryLiked || event.Type == models.EventStoryUnliked {
		fields["likes"] = event.Likes
	}
	logger.Log.WithFields(fields).Info("Story event")
	return nil
}
