package domain

import "time"

type DeliveryType string

const (
	DeliveryTypeDelivery DeliveryType = "delivery"
	DeliveryTypePickup   DeliveryType = "pickup"
)

type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentPix        PaymentMethod = "pix"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusPreparing  Status = "preparing"
	StatusReady      Status = "ready"
	StatusInDelivery Status = "in_delivery"
	StatusPickedUp   Status = "picked_up"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady,
		StatusInDelivery, StatusPickedUp, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition may leave s.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusPickedUp || s == StatusCancelled
}

// CustomerCanCancelFrom reports whether a customer may still cancel an order
// currently in s. Once the order is out for delivery the customer loses
// that right.
func CustomerCanCancelFrom(s Status) bool {
	switch s {
	case StatusInDelivery, StatusDelivered, StatusPickedUp, StatusCancelled:
		return false
	}
	return true
}

// StatusEntry is one row of an order's append-only status history.
type StatusEntry struct {
	ID        int
	OrderID   int
	Status    Status
	ChangedBy string
	ChangedAt time.Time
	Notes     *string
}
