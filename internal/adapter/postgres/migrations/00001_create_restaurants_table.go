package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(UpRestaurantsTable, DownRestaurantsTable)
}

func UpRestaurantsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `CREATE TABLE restaurants
(
    id                   SERIAL PRIMARY KEY,
    owner_id             INT              NOT NULL,
    name                 VARCHAR(255)     NOT NULL,
    delivery_fee         NUMERIC(10, 2)   NOT NULL DEFAULT 0,
    minimum_order        NUMERIC(10, 2)   NOT NULL DEFAULT 0,
    avg_delivery_minutes INT              NOT NULL DEFAULT 40,
    active               BOOLEAN          NOT NULL DEFAULT TRUE,
    street               VARCHAR(255)     NOT NULL DEFAULT '',
    number               VARCHAR(32)      NOT NULL DEFAULT '',
    neighborhood         VARCHAR(255)     NOT NULL DEFAULT '',
    city                 VARCHAR(255)     NOT NULL DEFAULT '',
    state                VARCHAR(64)      NOT NULL DEFAULT '',
    latitude             DOUBLE PRECISION,
    longitude            DOUBLE PRECISION,
    place_name           VARCHAR(255),
    created_at           TIMESTAMP        NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX idx_restaurants_active ON restaurants (active);`)
	return err
}

func DownRestaurantsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "DROP TABLE restaurants;")
	return err
}
