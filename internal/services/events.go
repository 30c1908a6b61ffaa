package services

import (
	"time"

	"lifeshare/internal/models"
	"lifeshare/pkg/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// EventPublisher sends domain events to interested consumers.
type EventPublisher interface {
	PublishStoryEvent(event models.StoryEvent) error
}

// publishEvent stamps and sends event. Publishing is best effort: the write
// it describes has already committed, so failures are only logged.
func publishEvent(publisher EventPublisher, event models.StoryEvent) {
	if publisher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.OccurredAt = time.Now().UTC()

	if err := publisher.PublishStoryEvent(event); err != nil {
		logger.Log.WithError(err).WithFields(logrus.Fields{
			"event_type": event.Type,
			"event_id":   event.ID,
		}).Warn("Failed to publish story event")
	}
}
