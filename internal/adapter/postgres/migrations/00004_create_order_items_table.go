package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(UpOrderItemsTable, DownOrderItemsTable)
}

func UpOrderItemsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `CREATE TABLE order_items
(
    id         SERIAL PRIMARY KEY,
    order_id   INT            NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
    product_id INT            NOT NULL,
    name       VARCHAR(255)   NOT NULL,
    price      NUMERIC(10, 2) NOT NULL,
    quantity   INT            NOT NULL,
    notes      TEXT
);

CREATE INDEX idx_order_items_order ON order_items (order_id);`)
	return err
}

func DownOrderItemsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "DROP TABLE order_items;")
	return err
}
