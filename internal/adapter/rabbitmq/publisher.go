package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/pratofeito/pratofeito/internal/interfaces"
)

const (
	ordersExchange  = "orders_topic"
	updatesExchange = "order_updates_fanout"
)

type publisher struct {
	conn Connection
}

func NewPublisher(conn Connection) interfaces.EventPublisher {
	return &publisher{conn: conn}
}

// PublishOrderCreated routes new orders by restaurant and delivery type so
// restaurant-side consumers can bind to their own slice of the stream.
func (p *publisher) PublishOrderCreated(ctx context.Context, msg interfaces.OrderCreatedMessage) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(ordersExchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	routingKey := fmt.Sprintf("restaurant.%d.%s", msg.RestaurantID, msg.DeliveryType)

	err = ch.Publish(ordersExchange, routingKey, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

func (p *publisher) PublishStatusUpdate(ctx context.Context, msg interfaces.StatusUpdateMessage) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(updatesExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = ch.Publish(updatesExchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}
