package order

import (
	"testing"

	"github.com/pratofeito/pratofeito/internal/domain"
)

const ownerID = 99

func orderFor(customerID int, status domain.Status) *domain.Order {
	return &domain.Order{ID: 1, CustomerID: customerID, RestaurantID: 1, Status: status}
}

func TestCanTransitionCustomerCancel(t *testing.T) {
	customer := domain.Actor{ID: 7, Role: domain.RoleCustomer}

	tests := []struct {
		status domain.Status
		want   bool
	}{
		{domain.StatusPending, true},
		{domain.StatusConfirmed, true},
		{domain.StatusPreparing, true},
		{domain.StatusReady, true},
		{domain.StatusInDelivery, false},
		{domain.StatusDelivered, false},
		{domain.StatusPickedUp, false},
		{domain.StatusCancelled, false},
	}
	for _, tt := range tests {
		got := CanTransition(customer, orderFor(7, tt.status), ownerID, domain.StatusCancelled)
		if got != tt.want {
			t.Errorf("customer cancel from %q = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestCanTransitionStaff(t *testing.T) {
	o := orderFor(7, domain.StatusPending)

	tests := []struct {
		name      string
		actor     domain.Actor
		newStatus domain.Status
		want      bool
	}{
		{"owner confirms", domain.Actor{ID: ownerID, Role: domain.RoleRestaurant}, domain.StatusConfirmed, true},
		{"owner cancels", domain.Actor{ID: ownerID, Role: domain.RoleRestaurant}, domain.StatusCancelled, true},
		{"admin confirms", domain.Actor{ID: 1, Role: domain.RoleAdmin}, domain.StatusConfirmed, true},
		{"other restaurant owner", domain.Actor{ID: 100, Role: domain.RoleRestaurant}, domain.StatusConfirmed, false},
		{"customer confirms own order", domain.Actor{ID: 7, Role: domain.RoleCustomer}, domain.StatusConfirmed, false},
		{"stranger cancels", domain.Actor{ID: 8, Role: domain.RoleCustomer}, domain.StatusCancelled, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.actor, o, ownerID, tt.newStatus); got != tt.want {
				t.Errorf("CanTransition() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanRead(t *testing.T) {
	o := orderFor(7, domain.StatusPending)

	tests := []struct {
		name  string
		actor domain.Actor
		want  bool
	}{
		{"own customer", domain.Actor{ID: 7, Role: domain.RoleCustomer}, true},
		{"admin", domain.Actor{ID: 1, Role: domain.RoleAdmin}, true},
		{"owning restaurant", domain.Actor{ID: ownerID, Role: domain.RoleRestaurant}, true},
		{"other customer", domain.Actor{ID: 8, Role: domain.RoleCustomer}, false},
		{"other restaurant", domain.Actor{ID: 100, Role: domain.RoleRestaurant}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanRead(tt.actor, o, ownerID); got != tt.want {
				t.Errorf("CanRead() = %v, want %v", got, tt.want)
			}
		})
	}
}
