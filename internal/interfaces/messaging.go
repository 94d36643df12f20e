package interfaces

import (
	"context"
	"time"

	"github.com/pratofeito/pratofeito/internal/domain"
)

// Messages published to the notification channel.

type OrderCreatedMessage struct {
	OrderNumber      string               `json:"order_number"`
	CustomerID       int                  `json:"customer_id"`
	RestaurantID     int                  `json:"restaurant_id"`
	DeliveryType     domain.DeliveryType  `json:"delivery_type"`
	PaymentMethod    domain.PaymentMethod `json:"payment_method"`
	Total            float64              `json:"total"`
	EstimatedReadyAt time.Time            `json:"estimated_ready_at"`
}

type StatusUpdateMessage struct {
	OrderNumber string        `json:"order_number"`
	OldStatus   domain.Status `json:"old_status"`
	NewStatus   domain.Status `json:"new_status"`
	ChangedBy   string        `json:"changed_by"`
	Timestamp   time.Time     `json:"timestamp"`
	Notes       *string       `json:"notes,omitempty"`
}

// EventPublisher broadcasts order events to interested listeners. Publishing
// is best effort: the order write is already committed when these run.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, msg OrderCreatedMessage) error
	PublishStatusUpdate(ctx context.Context, msg StatusUpdateMessage) error
}

// MessageConsumer subscribes to the fanout of order updates.
type MessageConsumer interface {
	ConsumeStatusUpdates(ctx context.Context, handler StatusUpdateHandler) error
}

type StatusUpdateHandler func(ctx context.Context, body []byte) error
