package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const orderNumberPrefix = "ORD"

const (
	// defaultPrepMinutes applies when a product has no preparation time set.
	defaultPrepMinutes = 20
	// pickupBufferMinutes is added on top of the longest preparation time.
	pickupBufferMinutes = 15
)

// Order represents a marketplace order entity.
type Order struct {
	ID               int
	Number           string
	CustomerID       int
	RestaurantID     int
	Items            []OrderItem
	Subtotal         float64
	DeliveryFee      float64
	Total            float64
	DeliveryType     DeliveryType
	DeliveryAddress  *Address
	PickupAddress    *Address
	PaymentMethod    PaymentMethod
	Status           Status
	EstimatedReadyAt time.Time
	History          []StatusEntry
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// OrderItem is a line item with name and price captured at order time.
type OrderItem struct {
	ID        int
	OrderID   int
	ProductID int
	Name      string
	Price     float64
	Quantity  int
	Notes     *string
}

// NewOrderNumber builds a human-readable, globally unique order number:
// prefix, base-36 millisecond timestamp, 4-character random suffix.
func NewOrderNumber(now time.Time) string {
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return fmt.Sprintf("%s-%s-%s", orderNumberPrefix, ts, suffix)
}

// Validate applies the structural rules that need no repository access.
func (o *Order) Validate() error {
	if o.DeliveryType != DeliveryTypeDelivery && o.DeliveryType != DeliveryTypePickup {
		return ErrInvalidDeliveryType
	}

	switch o.PaymentMethod {
	case PaymentCash, PaymentCreditCard, PaymentPix:
	default:
		return ErrInvalidPaymentMethod
	}

	if len(o.Items) == 0 {
		return errors.New("order must have at least one item")
	}

	for _, item := range o.Items {
		if item.Quantity < 1 {
			return errors.New("item quantity must be at least 1")
		}
	}

	// Exactly one address, matching the delivery type.
	switch o.DeliveryType {
	case DeliveryTypeDelivery:
		if o.DeliveryAddress == nil || o.PickupAddress != nil {
			return ErrMissingAddress
		}
	case DeliveryTypePickup:
		if o.PickupAddress == nil || o.DeliveryAddress != nil {
			return ErrMissingAddress
		}
	}

	return nil
}

// ComputeTotals recalculates subtotal and total from the line items and the
// given delivery fee. Pickup orders always carry a zero fee.
func (o *Order) ComputeTotals(deliveryFee float64) {
	subtotal := 0.0
	for _, item := range o.Items {
		subtotal += item.Price * float64(item.Quantity)
	}
	o.Subtotal = subtotal

	if o.DeliveryType == DeliveryTypePickup {
		deliveryFee = 0
	}
	o.DeliveryFee = deliveryFee
	o.Total = o.Subtotal + o.DeliveryFee
}

// DeliveryETA is creation time plus the restaurant's average delivery time.
func DeliveryETA(now time.Time, avgDeliveryMinutes int) time.Time {
	return now.Add(time.Duration(avgDeliveryMinutes) * time.Minute)
}

// PickupETA is creation time plus the longest preparation time among the
// ordered products plus a fixed buffer. prepMinutes entries of 0 mean the
// product has no preparation time configured and count as the default; the
// default never overrides a shorter configured time.
func PickupETA(now time.Time, prepMinutes []int) time.Time {
	maxPrep := 0
	for _, m := range prepMinutes {
		if m == 0 {
			m = defaultPrepMinutes
		}
		if m > maxPrep {
			maxPrep = m
		}
	}
	if maxPrep == 0 {
		maxPrep = defaultPrepMinutes
	}
	return now.Add(time.Duration(maxPrep+pickupBufferMinutes) * time.Minute)
}

var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrRestaurantNotFound      = errors.New("restaurant not found")
	ErrProductNotFound         = errors.New("product not found")
	ErrProductUnavailable      = errors.New("product is not available")
	ErrMixedRestaurantCart     = errors.New("all items must belong to the ordered restaurant")
	ErrBelowMinimumOrder       = errors.New("subtotal is below the restaurant minimum order")
	ErrMissingAddress          = errors.New("address payload does not match delivery type")
	ErrInvalidDeliveryType     = errors.New("invalid delivery type")
	ErrInvalidPaymentMethod    = errors.New("invalid payment method")
	ErrInvalidStatus           = errors.New("unknown order status")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrStatusConflict          = errors.New("order status changed concurrently")
	ErrForbidden               = errors.New("actor is not allowed to perform this action")
)
