package order

import (
	"context"
	"errors"
	"time"

	"github.com/pratofeito/pratofeito/internal/domain"
	"github.com/pratofeito/pratofeito/internal/interfaces"
)

// In-memory fakes for the repository and publisher contracts.

type fakeOrderRepo struct {
	orders  map[int]*domain.Order
	history map[int][]*domain.StatusEntry
	nextID  int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:  make(map[int]*domain.Order),
		history: make(map[int][]*domain.StatusEntry),
	}
}

func (f *fakeOrderRepo) Create(_ context.Context, o *domain.Order) error {
	f.nextID++
	o.ID = f.nextID
	stored := *o
	f.orders[o.ID] = &stored
	for i := range o.History {
		e := o.History[i]
		e.OrderID = o.ID
		f.history[o.ID] = append(f.history[o.ID], &e)
	}
	return nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id int) (*domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	copied := *o
	return &copied, nil
}

func (f *fakeOrderRepo) ListAll(_ context.Context) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrderRepo) ListByCustomer(_ context.Context, customerID int) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range f.orders {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListByRestaurant(_ context.Context, restaurantID int) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range f.orders {
		if o.RestaurantID == restaurantID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, orderID int, expected, newStatus domain.Status, changedBy string, notes *string) error {
	o, ok := f.orders[orderID]
	if !ok {
		return errors.New("no rows")
	}
	if o.Status != expected {
		return domain.ErrStatusConflict
	}
	o.Status = newStatus
	o.UpdatedAt = time.Now()
	f.history[orderID] = append(f.history[orderID], &domain.StatusEntry{
		OrderID:   orderID,
		Status:    newStatus,
		ChangedBy: changedBy,
		ChangedAt: time.Now(),
		Notes:     notes,
	})
	return nil
}

func (f *fakeOrderRepo) GetStatusHistory(_ context.Context, orderID int) ([]*domain.StatusEntry, error) {
	return f.history[orderID], nil
}

type fakeRestaurantRepo struct {
	restaurants map[int]*domain.Restaurant
	placeNames  map[int]string
}

func newFakeRestaurantRepo(restaurants ...*domain.Restaurant) *fakeRestaurantRepo {
	f := &fakeRestaurantRepo{
		restaurants: make(map[int]*domain.Restaurant),
		placeNames:  make(map[int]string),
	}
	for _, r := range restaurants {
		f.restaurants[r.ID] = r
	}
	return f
}

func (f *fakeRestaurantRepo) FindByID(_ context.Context, id int) (*domain.Restaurant, error) {
	r, ok := f.restaurants[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return r, nil
}

func (f *fakeRestaurantRepo) ListActive(_ context.Context) ([]*domain.Restaurant, error) {
	var out []*domain.Restaurant
	for _, r := range f.restaurants {
		if r.Active {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRestaurantRepo) ListMissingPlaceName(_ context.Context) ([]*domain.Restaurant, error) {
	var out []*domain.Restaurant
	for _, r := range f.restaurants {
		if r.Active && r.Address.Coordinates != nil && r.Address.PlaceName == nil {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRestaurantRepo) UpdatePlaceName(_ context.Context, restaurantID int, placeName string) error {
	f.placeNames[restaurantID] = placeName
	return nil
}

type fakeProductRepo struct {
	products map[int]*domain.Product
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	f := &fakeProductRepo{products: make(map[int]*domain.Product)}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProductRepo) FindByID(_ context.Context, id int) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return p, nil
}

type fakePublisher struct {
	created []interfaces.OrderCreatedMessage
	updates []interfaces.StatusUpdateMessage
	err     error
}

func (f *fakePublisher) PublishOrderCreated(_ context.Context, msg interfaces.OrderCreatedMessage) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, msg)
	return nil
}

func (f *fakePublisher) PublishStatusUpdate(_ context.Context, msg interfaces.StatusUpdateMessage) error {
	if f.err != nil {
		return f.err
	}
	f.updates = append(f.updates, msg)
	return nil
}
