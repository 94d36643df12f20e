package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pratofeito/pratofeito/internal/domain"
	"github.com/pratofeito/pratofeito/internal/interfaces"
)

type productRepository struct {
	db DB
}

func NewProductRepository(db DB) interfaces.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	query := `
		SELECT id, restaurant_id, name, price, available, prep_minutes
		FROM products
		WHERE id = $1
	`

	var product domain.Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&product.ID, &product.RestaurantID, &product.Name,
		&product.Price, &product.Available, &product.PrepMinutes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return &product, nil
}
