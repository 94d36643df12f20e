package interfaces

import (
	"context"
	"time"

	"github.com/pratofeito/pratofeito/internal/domain"
)

// Service contracts consumed by the HTTP boundary.

type OrderService interface {
	CreateOrder(ctx context.Context, actor domain.Actor, cmd CreateOrderCommand) (*domain.Order, error)
	GetOrder(ctx context.Context, actor domain.Actor, orderID int) (*domain.Order, error)
	GetInvoice(ctx context.Context, actor domain.Actor, orderID int) (*Invoice, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, orderID int, newStatus domain.Status, notes *string) (*domain.Order, error)
	CancelOrder(ctx context.Context, actor domain.Actor, orderID int, notes *string) (*domain.Order, error)
	ListOrders(ctx context.Context, actor domain.Actor) ([]*domain.Order, error)
	ListRestaurantOrders(ctx context.Context, actor domain.Actor, restaurantID int) ([]*domain.Order, error)
}

type LocationService interface {
	NearbyRestaurants(ctx context.Context, query NearbyQuery) ([]NearbyRestaurant, error)
	ResolveAddress(ctx context.Context, lat, lng float64) domain.GeocodeResult
	// BackfillPlaceNames resolves and caches place names for restaurants
	// that have coordinates but no label yet. Returns the number updated.
	BackfillPlaceNames(ctx context.Context) (int, error)
}

// Commands and responses.

type CreateOrderCommand struct {
	RestaurantID    int
	Items           []CreateOrderItemCommand
	DeliveryType    string
	DeliveryAddress *AddressPayload
	PickupAddress   *AddressPayload
	PaymentMethod   string
}

type CreateOrderItemCommand struct {
	ProductID int
	Quantity  int
	Notes     *string
}

type AddressPayload struct {
	Street       string
	Number       string
	Neighborhood string
	City         string
	State        string
}

func (p AddressPayload) ToDomain() *domain.Address {
	return &domain.Address{
		Street:       p.Street,
		Number:       p.Number,
		Neighborhood: p.Neighborhood,
		City:         p.City,
		State:        p.State,
	}
}

// Invoice is a read-only projection of an order.
type Invoice struct {
	OrderNumber    string
	IssuedAt       time.Time
	CustomerID     int
	RestaurantName string
	Items          []InvoiceLine
	Subtotal       float64
	DeliveryFee    float64
	Total          float64
	DeliveryType   domain.DeliveryType
	PaymentMethod  domain.PaymentMethod
	Status         domain.Status
}

type InvoiceLine struct {
	Name      string
	Quantity  int
	UnitPrice float64
	LineTotal float64
}

// NearbyQuery holds a validated proximity search request. RadiusMeters nil
// means no radius cap.
type NearbyQuery struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters *float64
}

type NearbyRestaurant struct {
	RestaurantID   int
	Name           string
	DisplayAddress string
	DistanceMeters int
	DeliveryFee    float64
	MinimumOrder   float64
}
