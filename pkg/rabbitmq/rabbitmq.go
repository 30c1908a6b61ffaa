package rabbitmq

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"lifeshare/internal/models"
	"lifeshare/pkg/logger"

	amqp "github.com/streadway/amqp"
)

// QueueName is the durable queue story events are published to.
const QueueName = "story_events"

// Client holds the RabbitMQ connection and channel.
// An amqp.Channel is not safe for concurrent publishing, hence mu.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel and declares the
// story events queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := declareQueue(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	logger.Log.WithField("queue", QueueName).Info("RabbitMQ client connected")

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

func declareQueue(ch *amqp.Channel) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		QueueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return q, fmt.Errorf("failed to declare %s: %w", QueueName, err)
	}
	return q, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// PublishStoryEvent publishes event as a persistent JSON message.
func (c *Client) PublishStoryEvent(event models.StoryEvent) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err = c.channel.Publish(
		"",        // default exchange
		QueueName, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         event.Type,
			MessageId:    event.ID,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// ConsumeStoryEvents delivers queued events to handler until the channel
// closes. A handler error nacks the message without requeueing it, so a
// malformed event cannot loop forever.
func (c *Client) ConsumeStoryEvents(handler func(event models.StoryEvent) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	queue, err := declareQueue(c.channel)
	if err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		queue.Name,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	for msg := range msgs {
		if err := handle(msg, handler); err != nil {
			logger.Log.WithError(err).WithField("delivery_tag", msg.DeliveryTag).Warn("Rejecting story event")
			if nackErr := msg.Nack(false, false); nackErr != nil {
				logger.Log.WithError(nackErr).Error("Failed to nack story event")
			}
			continue
		}
		if ackErr := msg.Ack(false); ackErr != nil {
			logger.Log.WithError(ackErr).Error("Failed to ack story event")
		}
	}
	return nil
}

func handle(msg amqp.Delivery, handler func(event models.StoryEvent) error) error {
	var event models.StoryEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return fmt.Errorf("failed to decode event: %w", err)
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = msg.Timestamp
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	return handler(event)
}
