package produce

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	MediaCleanupQueue      = "media.cleanup"
	MediaCleanupExchange   = "media.exchange"
	MediaCleanupRoutingKey = "media.cleanup"
)

// MediaCleanupMessage asks the consumer to remove an orphaned blob after
// its image row has been deleted.
type MediaCleanupMessage struct {
	ImageID   string `json:"image_id"`
	Source    string `json:"source"`
	Timestamp int64  `json:"timestamp"`
}

// MediaCleanupService publishes blob cleanup work for deleted images.
type MediaCleanupService struct {
	channel *amqp.Channel
}

func InitMediaCleanupService(channel *amqp.Channel) *MediaCleanupService {
	service := &MediaCleanupService{
		channel: channel,
	}

	err := channel.ExchangeDeclare(
		MediaCleanupExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to declare Media exchange: " + err.Error())
	}

	_, err = channel.QueueDeclare(
		MediaCleanupQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		panic("Failed to declare Media Cleanup queue: " + err.Error())
	}

	err = channel.QueueBind(
		MediaCleanupQueue,
		MediaCleanupRoutingKey,
		MediaCleanupExchange,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to bind Media Cleanup queue: " + err.Error())
	}

	return service
}

func (s *MediaCleanupService) PublishMediaCleanup(ctx context.Context, imageID, source string) error {
	msg := MediaCleanupMessage{
		ImageID:   imageID,
		Source:    source,
		Timestamp: time.Now().Unix(),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return s.channel.PublishWithContext(
		ctx,
		MediaCleanupExchange,
		MediaCleanupRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
}
