package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/memecataloger/catalog-api/infra"
	"github.com/memecataloger/catalog-api/infra/produce"
	amqp "github.com/rabbitmq/amqp091-go"
)

// MediaConsumer deletes blobs for images whose rows are already gone.
// Deliveries are acked manually; a storage failure requeues the message
// once so a transient outage does not drop the cleanup.
type MediaConsumer struct {
	channel *amqp.Channel
	infra   *infra.Infra
}

func NewMediaConsumer(channel *amqp.Channel, infra *infra.Infra) *MediaConsumer {
	return &MediaConsumer{
		channel: channel,
		infra:   infra,
	}
}

func (c *MediaConsumer) Start(ctx context.Context) error {
	msgs, err := c.channel.Consume(
		produce.MediaCleanupQueue,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register media cleanup consumer: %w", err)
	}

	c.infra.Logger.InfoWithContextf(ctx, "[Media Consumer] Started listening for cleanup jobs on queue: %s", produce.MediaCleanupQueue)

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.infra.Logger.InfoWithContextf(ctx, "[Media Consumer] Shutting down...")
				return
			case msg, ok := <-msgs:
				if !ok {
					c.infra.Logger.WarningWithContextf(ctx, "[Media Consumer] Channel closed")
					return
				}
				c.handleCleanup(ctx, msg)
			}
		}
	}()

	return nil
}

func (c *MediaConsumer) handleCleanup(ctx context.Context, msg amqp.Delivery) {
	var payload produce.MediaCleanupMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Media Consumer] Failed to unmarshal message")
		_ = msg.Nack(false, false)
		return
	}

	if err := c.ProcessCleanup(ctx, payload); err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Media Consumer] Failed to clean up blob %s for image %s", payload.Source, payload.ImageID)
		_ = msg.Nack(false, !msg.Redelivered)
		return
	}

	c.infra.Logger.InfoWithContextf(ctx, "[Media Consumer] Cleaned up blob %s for image %s", payload.Source, payload.ImageID)
	_ = msg.Ack(false)
}

// ProcessCleanup deletes the blob. A blob that is already gone counts as
// success so redelivered messages stay idempotent.
func (c *MediaConsumer) ProcessCleanup(ctx context.Context, payload produce.MediaCleanupMessage) error {
	if payload.Source == "" {
		return fmt.Errorf("cleanup message for image %s has no source", payload.ImageID)
	}

	exists, err := c.infra.Storage.Exists(ctx, payload.Source)
	if err != nil {
		return fmt.Errorf("failed to check blob %s: %w", payload.Source, err)
	}
	if !exists {
		return nil
	}

	return c.infra.Storage.Delete(ctx, payload.Source)
}
