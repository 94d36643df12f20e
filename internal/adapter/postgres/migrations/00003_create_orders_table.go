package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(UpOrdersTable, DownOrdersTable)
}

func UpOrdersTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `CREATE TABLE orders
(
    id                    SERIAL PRIMARY KEY,
    number                VARCHAR(64)    NOT NULL,
    customer_id           INT            NOT NULL,
    restaurant_id         INT            NOT NULL REFERENCES restaurants (id),
    subtotal              NUMERIC(10, 2) NOT NULL,
    delivery_fee          NUMERIC(10, 2) NOT NULL,
    total                 NUMERIC(10, 2) NOT NULL,
    delivery_type         VARCHAR(16)    NOT NULL,
    payment_method        VARCHAR(16)    NOT NULL,
    status                VARCHAR(16)    NOT NULL,
    estimated_ready_at    TIMESTAMP      NOT NULL,
    delivery_street       VARCHAR(255),
    delivery_number       VARCHAR(32),
    delivery_neighborhood VARCHAR(255),
    delivery_city         VARCHAR(255),
    delivery_state        VARCHAR(64),
    pickup_street         VARCHAR(255),
    pickup_number         VARCHAR(32),
    pickup_neighborhood   VARCHAR(255),
    pickup_city           VARCHAR(255),
    pickup_state          VARCHAR(64),
    created_at            TIMESTAMP      NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at            TIMESTAMP      NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX idx_orders_number ON orders (number);
CREATE INDEX idx_orders_customer ON orders (customer_id);
CREATE INDEX idx_orders_restaurant ON orders (restaurant_id);`)
	return err
}

func DownOrdersTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "DROP TABLE orders;")
	return err
}
