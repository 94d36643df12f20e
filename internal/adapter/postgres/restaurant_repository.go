package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pratofeito/pratofeito/internal/domain"
	"github.com/pratofeito/pratofeito/internal/interfaces"
)

type restaurantRepository struct {
	db DB
}

func NewRestaurantRepository(db DB) interfaces.RestaurantRepository {
	return &restaurantRepository{db: db}
}

const restaurantColumns = `
	id, owner_id, name, delivery_fee, minimum_order, avg_delivery_minutes, active,
	street, number, neighborhood, city, state, latitude, longitude, place_name
`

func (r *restaurantRepository) FindByID(ctx context.Context, id int) (*domain.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1`

	restaurant, err := scanRestaurant(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to load restaurant: %w", err)
	}
	return restaurant, nil
}

func (r *restaurantRepository) ListActive(ctx context.Context) ([]*domain.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE active ORDER BY id ASC`
	return r.list(ctx, query)
}

func (r *restaurantRepository) ListMissingPlaceName(ctx context.Context) ([]*domain.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants
		WHERE active AND latitude IS NOT NULL AND longitude IS NOT NULL AND place_name IS NULL
		ORDER BY id ASC`
	return r.list(ctx, query)
}

func (r *restaurantRepository) UpdatePlaceName(ctx context.Context, restaurantID int, placeName string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE restaurants SET place_name = $1 WHERE id = $2`,
		placeName, restaurantID,
	)
	if err != nil {
		return fmt.Errorf("failed to update place name: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRestaurantNotFound
	}
	return nil
}

func (r *restaurantRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Restaurant, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []*domain.Restaurant
	for rows.Next() {
		restaurant, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		restaurants = append(restaurants, restaurant)
	}
	return restaurants, nil
}

func scanRestaurant(row Row) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	var latitude, longitude *float64

	err := row.Scan(
		&restaurant.ID, &restaurant.OwnerID, &restaurant.Name,
		&restaurant.DeliveryFee, &restaurant.MinimumOrder, &restaurant.AvgDeliveryMinutes, &restaurant.Active,
		&restaurant.Address.Street, &restaurant.Address.Number, &restaurant.Address.Neighborhood,
		&restaurant.Address.City, &restaurant.Address.State,
		&latitude, &longitude, &restaurant.Address.PlaceName,
	)
	if err != nil {
		return nil, err
	}

	if latitude != nil && longitude != nil {
		restaurant.Address.Coordinates = &domain.Coordinates{
			Latitude:  *latitude,
			Longitude: *longitude,
		}
	}
	return &restaurant, nil
}
