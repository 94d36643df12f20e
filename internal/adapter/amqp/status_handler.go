package amqp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pratofeito/pratofeito/internal/adapter/logger"
	"github.com/pratofeito/pratofeito/internal/interfaces"
)

// StatusUpdateHandler consumes order status updates from the fanout and
// prints them. It stands in for customer-facing push notifications.
type StatusUpdateHandler struct {
	logger logger.Logger
}

func NewStatusUpdateHandler(lgr logger.Logger) *StatusUpdateHandler {
	return &StatusUpdateHandler{logger: lgr}
}

func (h *StatusUpdateHandler) Handle(ctx context.Context, body []byte) error {
	var msg interfaces.StatusUpdateMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse status update", "", nil, err)
		return err
	}

	h.logger.Debug("status_update_received", fmt.Sprintf("Received status update for order %s", msg.OrderNumber),
		msg.OrderNumber, map[string]interface{}{
			"order_number": msg.OrderNumber,
			"old_status":   msg.OldStatus,
			"new_status":   msg.NewStatus,
		})

	fmt.Printf("Order %s: status changed from '%s' to '%s' by %s\n",
		msg.OrderNumber, msg.OldStatus, msg.NewStatus, msg.ChangedBy)

	return nil
}
