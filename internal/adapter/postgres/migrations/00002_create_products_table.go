package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(UpProductsTable, DownProductsTable)
}

func UpProductsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `CREATE TABLE products
(
    id            SERIAL PRIMARY KEY,
    restaurant_id INT            NOT NULL REFERENCES restaurants (id),
    name          VARCHAR(255)   NOT NULL,
    price         NUMERIC(10, 2) NOT NULL,
    available     BOOLEAN        NOT NULL DEFAULT TRUE,
    prep_minutes  INT,
    created_at    TIMESTAMP      NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX idx_products_restaurant ON products (restaurant_id);`)
	return err
}

func DownProductsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "DROP TABLE products;")
	return err
}
