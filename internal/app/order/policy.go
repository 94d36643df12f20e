package order

import "github.com/pratofeito/pratofeito/internal/domain"

// Authorization policy for order reads and status transitions, kept apart
// from HTTP so it can be tested in isolation.

// CanRead reports whether actor may fetch the order or its invoice: the
// order's own customer, an administrator, or the owning restaurant's owner.
func CanRead(actor domain.Actor, o *domain.Order, restaurantOwnerID int) bool {
	if actor.IsAdmin() {
		return true
	}
	if actor.Role == domain.RoleCustomer && actor.ID == o.CustomerID {
		return true
	}
	return actor.Role == domain.RoleRestaurant && actor.ID == restaurantOwnerID
}

// CanTransition reports whether actor may move the order to newStatus.
// The customer-cancellation rule is evaluated first: a customer may cancel
// their own order while it has not gone out for delivery. Every other
// transition is reserved for administrators and the owning restaurant's
// owner.
func CanTransition(actor domain.Actor, o *domain.Order, restaurantOwnerID int, newStatus domain.Status) bool {
	if newStatus == domain.StatusCancelled &&
		actor.Role == domain.RoleCustomer && actor.ID == o.CustomerID {
		return domain.CustomerCanCancelFrom(o.Status)
	}
	if actor.IsAdmin() {
		return true
	}
	return actor.Role == domain.RoleRestaurant && actor.ID == restaurantOwnerID
}
