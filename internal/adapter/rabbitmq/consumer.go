package rabbitmq

import (
	"context"
	"fmt"
	"time"

	"github.com/pratofeito/pratofeito/internal/adapter/logger"
	"github.com/pratofeito/pratofeito/internal/interfaces"
)

const reconnectDelay = 5 * time.Second

type consumer struct {
	conn   Connection
	logger logger.Logger
}

func NewConsumer(conn Connection, lgr logger.Logger) interfaces.MessageConsumer {
	return &consumer{conn: conn, logger: lgr}
}

// ConsumeStatusUpdates subscribes to the status-update fanout and feeds each
// delivery to the handler. The loop reconnects until the context is done.
func (c *consumer) ConsumeStatusUpdates(ctx context.Context, handler interfaces.StatusUpdateHandler) error {
	for {
		err := c.consumeOnce(ctx, handler)

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err == nil {
			return nil
		}

		c.logger.Error("consumer_disconnected", "Status update consumer disconnected", "", map[string]interface{}{
			"retry_in": reconnectDelay.String(),
		}, err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(reconnectDelay):
		}
	}
}

func (c *consumer) consumeOnce(ctx context.Context, handler interfaces.StatusUpdateHandler) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	closeChan := ch.NotifyClose()

	if err := ch.ExchangeDeclare(updatesExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	// A temporary exclusive queue per subscriber: every listener gets its
	// own copy of each update.
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, "", updatesExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	msgs, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-closeChan:
			if err != nil {
				return fmt.Errorf("channel closed: %w", err)
			}
			return fmt.Errorf("channel closed gracefully")

		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("messages channel closed")
			}
			// Handler failures only affect that one update.
			_ = handler(ctx, msg.Body)
		}
	}
}
