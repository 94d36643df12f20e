package order

import (
	"context"
	"fmt"
	"time"

	"github.com/pratofeito/pratofeito/internal/adapter/logger"
	"github.com/pratofeito/pratofeito/internal/domain"
	"github.com/pratofeito/pratofeito/internal/interfaces"
)

type Service struct {
	orders      interfaces.OrderRepository
	restaurants interfaces.RestaurantRepository
	products    interfaces.ProductRepository
	publisher   interfaces.EventPublisher
	logger      logger.Logger
}

func NewService(
	orders interfaces.OrderRepository,
	restaurants interfaces.RestaurantRepository,
	products interfaces.ProductRepository,
	publisher interfaces.EventPublisher,
	lgr logger.Logger,
) *Service {
	return &Service{
		orders:      orders,
		restaurants: restaurants,
		products:    products,
		publisher:   publisher,
		logger:      lgr,
	}
}

// CreateOrder validates the cart, snapshots prices, computes totals and ETA
// and persists the order in status pending with its first history entry.
func (s *Service) CreateOrder(ctx context.Context, actor domain.Actor, cmd interfaces.CreateOrderCommand) (*domain.Order, error) {
	restaurant, err := s.restaurants.FindByID(ctx, cmd.RestaurantID)
	if err != nil {
		return nil, domain.ErrRestaurantNotFound
	}

	items := make([]domain.OrderItem, 0, len(cmd.Items))
	prepMinutes := make([]int, 0, len(cmd.Items))
	for _, ic := range cmd.Items {
		product, err := s.products.FindByID(ctx, ic.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: product %d", domain.ErrProductNotFound, ic.ProductID)
		}
		if product.RestaurantID != restaurant.ID {
			return nil, domain.ErrMixedRestaurantCart
		}
		if !product.Available {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductUnavailable, product.Name)
		}

		items = append(items, domain.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  ic.Quantity,
			Notes:     ic.Notes,
		})
		prep := 0
		if product.PrepMinutes != nil {
			prep = *product.PrepMinutes
		}
		prepMinutes = append(prepMinutes, prep)
	}

	now := time.Now()
	o := &domain.Order{
		Number:        domain.NewOrderNumber(now),
		CustomerID:    actor.ID,
		RestaurantID:  restaurant.ID,
		Items:         items,
		DeliveryType:  domain.DeliveryType(cmd.DeliveryType),
		PaymentMethod: domain.PaymentMethod(cmd.PaymentMethod),
		Status:        domain.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if cmd.DeliveryAddress != nil {
		o.DeliveryAddress = cmd.DeliveryAddress.ToDomain()
	}
	if cmd.PickupAddress != nil {
		o.PickupAddress = cmd.PickupAddress.ToDomain()
	}

	if err := o.Validate(); err != nil {
		return nil, err
	}

	o.ComputeTotals(restaurant.DeliveryFee)
	if o.Subtotal < restaurant.MinimumOrder {
		return nil, fmt.Errorf("%w: minimum is %.2f", domain.ErrBelowMinimumOrder, restaurant.MinimumOrder)
	}

	var note string
	if o.DeliveryType == domain.DeliveryTypePickup {
		o.EstimatedReadyAt = domain.PickupETA(now, prepMinutes)
		note = "pickup order placed"
	} else {
		o.EstimatedReadyAt = domain.DeliveryETA(now, restaurant.AvgDeliveryMinutes)
		note = "delivery order placed"
	}

	o.History = []domain.StatusEntry{{
		Status:    domain.StatusPending,
		ChangedBy: actorLabel(actor),
		ChangedAt: now,
		Notes:     &note,
	}}

	if err := s.orders.Create(ctx, o); err != nil {
		s.logger.Error("order_create_failed", "Failed to persist order", "", nil, err)
		return nil, err
	}

	// The write is committed; notification is best effort.
	if err := s.publisher.PublishOrderCreated(ctx, interfaces.OrderCreatedMessage{
		OrderNumber:      o.Number,
		CustomerID:       o.CustomerID,
		RestaurantID:     o.RestaurantID,
		DeliveryType:     o.DeliveryType,
		PaymentMethod:    o.PaymentMethod,
		Total:            o.Total,
		EstimatedReadyAt: o.EstimatedReadyAt,
	}); err != nil {
		s.logger.Error("publish_failed", "Failed to publish order created event", o.Number, nil, err)
	}

	s.logger.Debug("order_created", "Order created", o.Number, map[string]interface{}{
		"order_number": o.Number,
		"total":        o.Total,
	})
	return o, nil
}

// GetOrder returns the order with its status history after the read policy
// passes.
func (s *Service) GetOrder(ctx context.Context, actor domain.Actor, orderID int) (*domain.Order, error) {
	o, restaurant, err := s.loadOrderWithRestaurant(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !CanRead(actor, o, restaurant.OwnerID) {
		return nil, domain.ErrForbidden
	}
	return s.withHistory(ctx, o)
}

// GetInvoice builds the read-only invoice projection of an order. Same
// authorization as GetOrder.
func (s *Service) GetInvoice(ctx context.Context, actor domain.Actor, orderID int) (*interfaces.Invoice, error) {
	o, restaurant, err := s.loadOrderWithRestaurant(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !CanRead(actor, o, restaurant.OwnerID) {
		return nil, domain.ErrForbidden
	}

	lines := make([]interfaces.InvoiceLine, len(o.Items))
	for i, item := range o.Items {
		lines[i] = interfaces.InvoiceLine{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
			LineTotal: item.Price * float64(item.Quantity),
		}
	}

	return &interfaces.Invoice{
		OrderNumber:    o.Number,
		IssuedAt:       o.CreatedAt,
		CustomerID:     o.CustomerID,
		RestaurantName: restaurant.Name,
		Items:          lines,
		Subtotal:       o.Subtotal,
		DeliveryFee:    o.DeliveryFee,
		Total:          o.Total,
		DeliveryType:   o.DeliveryType,
		PaymentMethod:  o.PaymentMethod,
		Status:         o.Status,
	}, nil
}

// UpdateStatus applies one status transition: authorization first, then the
// terminal-state and delivery-type guards, then a conditional update that
// also appends the history entry.
func (s *Service) UpdateStatus(ctx context.Context, actor domain.Actor, orderID int, newStatus domain.Status, notes *string) (*domain.Order, error) {
	if !domain.ValidStatus(newStatus) {
		return nil, domain.ErrInvalidStatus
	}

	o, restaurant, err := s.loadOrderWithRestaurant(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(actor, o, restaurant.OwnerID, newStatus) {
		return nil, domain.ErrForbidden
	}
	if err := transitionAllowed(o, newStatus); err != nil {
		return nil, err
	}

	oldStatus := o.Status
	changedBy := actorLabel(actor)
	if err := s.orders.UpdateStatus(ctx, o.ID, oldStatus, newStatus, changedBy, notes); err != nil {
		return nil, err
	}

	if err := s.publisher.PublishStatusUpdate(ctx, interfaces.StatusUpdateMessage{
		OrderNumber: o.Number,
		OldStatus:   oldStatus,
		NewStatus:   newStatus,
		ChangedBy:   changedBy,
		Timestamp:   time.Now(),
		Notes:       notes,
	}); err != nil {
		s.logger.Error("publish_failed", "Failed to publish status update", o.Number, nil, err)
	}

	updated, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.withHistory(ctx, updated)
}

// CancelOrder is the convenience cancellation path. Orders that are already
// out for delivery or terminal can no longer be cancelled here, regardless
// of the actor.
func (s *Service) CancelOrder(ctx context.Context, actor domain.Actor, orderID int, notes *string) (*domain.Order, error) {
	o, _, err := s.loadOrderWithRestaurant(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !domain.CustomerCanCancelFrom(o.Status) {
		return nil, domain.ErrInvalidStatusTransition
	}
	return s.UpdateStatus(ctx, actor, orderID, domain.StatusCancelled, notes)
}

// ListOrders returns the calling customer's orders; administrators see all.
func (s *Service) ListOrders(ctx context.Context, actor domain.Actor) ([]*domain.Order, error) {
	if actor.IsAdmin() {
		return s.orders.ListAll(ctx)
	}
	return s.orders.ListByCustomer(ctx, actor.ID)
}

// ListRestaurantOrders returns a restaurant's orders for its owner or an
// administrator.
func (s *Service) ListRestaurantOrders(ctx context.Context, actor domain.Actor, restaurantID int) ([]*domain.Order, error) {
	restaurant, err := s.restaurants.FindByID(ctx, restaurantID)
	if err != nil {
		return nil, domain.ErrRestaurantNotFound
	}
	if !actor.IsAdmin() && !(actor.Role == domain.RoleRestaurant && actor.ID == restaurant.OwnerID) {
		return nil, domain.ErrForbidden
	}
	return s.orders.ListByRestaurant(ctx, restaurantID)
}

// transitionAllowed enforces the state-machine guards that apply regardless
// of the actor: terminal statuses are frozen, and the courier/pickup
// branches stay on their own delivery type. Backward moves between
// non-terminal statuses are deliberately allowed for authorized staff.
func transitionAllowed(o *domain.Order, newStatus domain.Status) error {
	if o.Status.IsTerminal() {
		return domain.ErrInvalidStatusTransition
	}
	switch newStatus {
	case domain.StatusInDelivery, domain.StatusDelivered:
		if o.DeliveryType != domain.DeliveryTypeDelivery {
			return domain.ErrInvalidStatusTransition
		}
	case domain.StatusPickedUp:
		if o.DeliveryType != domain.DeliveryTypePickup {
			return domain.ErrInvalidStatusTransition
		}
	}
	return nil
}

func (s *Service) loadOrderWithRestaurant(ctx context.Context, orderID int) (*domain.Order, *domain.Restaurant, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, nil, domain.ErrOrderNotFound
	}
	restaurant, err := s.restaurants.FindByID(ctx, o.RestaurantID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load order restaurant: %w", err)
	}
	return o, restaurant, nil
}

func (s *Service) withHistory(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	entries, err := s.orders.GetStatusHistory(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.History = make([]domain.StatusEntry, len(entries))
	for i, e := range entries {
		o.History[i] = *e
	}
	return o, nil
}

func actorLabel(a domain.Actor) string {
	return fmt.Sprintf("%s:%d", a.Role, a.ID)
}
