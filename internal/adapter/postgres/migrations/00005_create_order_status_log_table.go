package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(UpOrderStatusLogTable, DownOrderStatusLogTable)
}

func UpOrderStatusLogTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `CREATE TABLE order_status_log
(
    id         SERIAL PRIMARY KEY,
    order_id   INT         NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
    status     VARCHAR(16) NOT NULL,
    changed_by VARCHAR(64) NOT NULL,
    changed_at TIMESTAMP   NOT NULL DEFAULT CURRENT_TIMESTAMP,
    notes      TEXT
);

CREATE INDEX idx_order_status_log_order ON order_status_log (order_id, changed_at);`)
	return err
}

func DownOrderStatusLogTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "DROP TABLE order_status_log;")
	return err
}
