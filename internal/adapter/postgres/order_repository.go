package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pratofeito/pratofeito/internal/domain"
	"github.com/pratofeito/pratofeito/internal/interfaces"
)

type orderRepository struct {
	db DB
}

func NewOrderRepository(db DB) interfaces.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO orders (number, customer_id, restaurant_id, subtotal, delivery_fee, total,
		                    delivery_type, payment_method, status, estimated_ready_at,
		                    delivery_street, delivery_number, delivery_neighborhood, delivery_city, delivery_state,
		                    pickup_street, pickup_number, pickup_neighborhood, pickup_city, pickup_state,
		                    created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING id
	`
	delivery := addressColumns(order.DeliveryAddress)
	pickup := addressColumns(order.PickupAddress)
	err = tx.QueryRow(ctx, query,
		order.Number, order.CustomerID, order.RestaurantID,
		order.Subtotal, order.DeliveryFee, order.Total,
		order.DeliveryType, order.PaymentMethod, order.Status, order.EstimatedReadyAt,
		delivery[0], delivery[1], delivery[2], delivery[3], delivery[4],
		pickup[0], pickup[1], pickup[2], pickup[3], pickup[4],
		order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range order.Items {
		itemQuery := `
			INSERT INTO order_items (order_id, product_id, name, price, quantity, notes)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`
		err = tx.QueryRow(ctx, itemQuery,
			order.ID, order.Items[i].ProductID, order.Items[i].Name,
			order.Items[i].Price, order.Items[i].Quantity, order.Items[i].Notes,
		).Scan(&order.Items[i].ID)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
		order.Items[i].OrderID = order.ID
	}

	for i := range order.History {
		logQuery := `
			INSERT INTO order_status_log (order_id, status, changed_by, changed_at, notes)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`
		entry := &order.History[i]
		err = tx.QueryRow(ctx, logQuery,
			order.ID, entry.Status, entry.ChangedBy, entry.ChangedAt, entry.Notes,
		).Scan(&entry.ID)
		if err != nil {
			return fmt.Errorf("failed to log status: %w", err)
		}
		entry.OrderID = order.ID
	}

	return tx.Commit(ctx)
}

const orderColumns = `
	id, number, customer_id, restaurant_id, subtotal, delivery_fee, total,
	delivery_type, payment_method, status, estimated_ready_at,
	delivery_street, delivery_number, delivery_neighborhood, delivery_city, delivery_state,
	pickup_street, pickup_number, pickup_neighborhood, pickup_city, pickup_state,
	created_at, updated_at
`

func (r *orderRepository) FindByID(ctx context.Context, id int) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListAll(ctx context.Context) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customer_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, customerID)
}

func (r *orderRepository) ListByRestaurant(ctx context.Context, restaurantID int) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE restaurant_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, restaurantID)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	for _, order := range orders {
		if err := r.loadItems(ctx, order); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// UpdateStatus flips the order status and appends the history entry in one
// transaction. The UPDATE is conditional on the current status, so a
// concurrent transition loses cleanly instead of silently overwriting.
func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int, expected, newStatus domain.Status, changedBy string, notes *string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	tag, err := tx.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		newStatus, now, orderID, expected,
	)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var current domain.Status
		err := tx.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1`, orderID).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrOrderNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to check order status: %w", err)
		}
		return domain.ErrStatusConflict
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO order_status_log (order_id, status, changed_by, changed_at, notes)
		 VALUES ($1, $2, $3, $4, $5)`,
		orderID, newStatus, changedBy, now, notes,
	)
	if err != nil {
		return fmt.Errorf("failed to log status: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *orderRepository) GetStatusHistory(ctx context.Context, orderID int) ([]*domain.StatusEntry, error) {
	query := `
		SELECT id, order_id, status, changed_by, changed_at, notes
		FROM order_status_log
		WHERE order_id = $1
		ORDER BY changed_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query status history: %w", err)
	}
	defer rows.Close()

	var entries []*domain.StatusEntry
	for rows.Next() {
		var entry domain.StatusEntry
		if err := rows.Scan(&entry.ID, &entry.OrderID, &entry.Status, &entry.ChangedBy, &entry.ChangedAt, &entry.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan status entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}

func (r *orderRepository) loadItems(ctx context.Context, order *domain.Order) error {
	query := `
		SELECT id, order_id, product_id, name, price, quantity, notes
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC
	`
	rows, err := r.db.Query(ctx, query, order.ID)
	if err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Price, &item.Quantity, &item.Notes); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	return nil
}

// addressColumns flattens an optional address into its five column values.
func addressColumns(addr *domain.Address) [5]*string {
	if addr == nil {
		return [5]*string{}
	}
	return [5]*string{&addr.Street, &addr.Number, &addr.Neighborhood, &addr.City, &addr.State}
}

func scanOrder(row Row) (*domain.Order, error) {
	var order domain.Order
	var deliveryStreet, deliveryNumber, deliveryNeighborhood, deliveryCity, deliveryState *string
	var pickupStreet, pickupNumber, pickupNeighborhood, pickupCity, pickupState *string

	err := row.Scan(
		&order.ID, &order.Number, &order.CustomerID, &order.RestaurantID,
		&order.Subtotal, &order.DeliveryFee, &order.Total,
		&order.DeliveryType, &order.PaymentMethod, &order.Status, &order.EstimatedReadyAt,
		&deliveryStreet, &deliveryNumber, &deliveryNeighborhood, &deliveryCity, &deliveryState,
		&pickupStreet, &pickupNumber, &pickupNeighborhood, &pickupCity, &pickupState,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.DeliveryAddress = assembleAddress(deliveryStreet, deliveryNumber, deliveryNeighborhood, deliveryCity, deliveryState)
	order.PickupAddress = assembleAddress(pickupStreet, pickupNumber, pickupNeighborhood, pickupCity, pickupState)
	return &order, nil
}

func assembleAddress(street, number, neighborhood, city, state *string) *domain.Address {
	if street == nil {
		return nil
	}
	addr := &domain.Address{Street: *street}
	if number != nil {
		addr.Number = *number
	}
	if neighborhood != nil {
		addr.Neighborhood = *neighborhood
	}
	if city != nil {
		addr.City = *city
	}
	if state != nil {
		addr.State = *state
	}
	return addr
}
