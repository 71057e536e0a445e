package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Schema is the idempotent DDL applied before the service accepts
// requests. Identifiers are 24-character hex object ids stored as text.
// order_items.product_id deliberately has no foreign key: products may be
// removed out of band and bulk-info falls back to a placeholder.
const Schema = `
CREATE TABLE IF NOT EXISTS shops (
	id CHAR(24) PRIMARY KEY,
	name TEXT NOT NULL,
	address TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS products (
	id CHAR(24) PRIMARY KEY,
	shop_id CHAR(24) NOT NULL REFERENCES shops(id),
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	price_cents BIGINT NOT NULL CHECK (price_cents >= 0),
	image_url TEXT NOT NULL DEFAULT 'https://placehold.co/600x400',
	is_bouquet BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_products_shop_created ON products (shop_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_products_shop_price ON products (shop_id, price_cents);

CREATE TABLE IF NOT EXISTS customers (
	id CHAR(24) PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL,
	phone TEXT NOT NULL,
	default_address TEXT NOT NULL DEFAULT '',
	last_seen_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	timezone TEXT NOT NULL DEFAULT 'Europe/Kyiv',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (email, phone)
);

CREATE TABLE IF NOT EXISTS orders (
	id CHAR(24) PRIMARY KEY,
	shop_id CHAR(24) NOT NULL REFERENCES shops(id),
	customer_name TEXT NOT NULL DEFAULT '',
	customer_email TEXT NOT NULL,
	customer_phone TEXT NOT NULL,
	customer_timezone TEXT NOT NULL DEFAULT 'Europe/Kyiv',
	delivery_address TEXT NOT NULL,
	total_cents BIGINT NOT NULL CHECK (total_cents >= 0),
	status TEXT NOT NULL DEFAULT 'created',
	client_created_at TEXT,
	customer_time_zone TEXT,
	customer_offset_minutes INT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_orders_customer_identity ON orders (customer_email, customer_phone, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_orders_shop_created ON orders (shop_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status);

CREATE TABLE IF NOT EXISTS order_items (
	order_id CHAR(24) NOT NULL REFERENCES orders(id),
	line_no INT NOT NULL,
	product_id CHAR(24) NOT NULL,
	name TEXT NOT NULL,
	qty INT NOT NULL CHECK (qty >= 1),
	price_cents BIGINT NOT NULL CHECK (price_cents >= 0),
	PRIMARY KEY (order_id, line_no)
);
`

// Migrate applies the schema. Safe to run on every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	logger.Info().Msg("database schema is up to date")
	return nil
}
