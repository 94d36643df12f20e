package interfaces

import (
	"context"

	"github.com/pratofeito/pratofeito/internal/domain"
)

// Repository contracts implemented by adapter/postgres.

type OrderRepository interface {
	// Create persists the order, its items and the first status history
	// entry in a single transaction.
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id int) (*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID int) ([]*domain.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID int) ([]*domain.Order, error)
	// UpdateStatus flips the order to newStatus and appends a history entry
	// in one transaction. The update is conditional on the order still being
	// in expected; domain.ErrStatusConflict is returned otherwise.
	UpdateStatus(ctx context.Context, orderID int, expected, newStatus domain.Status, changedBy string, notes *string) error
	GetStatusHistory(ctx context.Context, orderID int) ([]*domain.StatusEntry, error)
}

type RestaurantRepository interface {
	FindByID(ctx context.Context, id int) (*domain.Restaurant, error)
	// ListActive returns every active restaurant; proximity filtering is
	// done in memory by the location service.
	ListActive(ctx context.Context) ([]*domain.Restaurant, error)
	// ListMissingPlaceName returns active restaurants that have coordinates
	// but no cached place name yet.
	ListMissingPlaceName(ctx context.Context) ([]*domain.Restaurant, error)
	UpdatePlaceName(ctx context.Context, restaurantID int, placeName string) error
}

type ProductRepository interface {
	FindByID(ctx context.Context, id int) (*domain.Product, error)
}
