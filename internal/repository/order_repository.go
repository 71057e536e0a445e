package repository

import (
	"context"
	"fmt"

	"bloom-market/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (
			id, shop_id,
			customer_name, customer_email, customer_phone, customer_timezone,
			delivery_address, total_cents, status,
			client_created_at, customer_time_zone, customer_offset_minutes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := tx.Exec(ctx, query,
		order.ID,
		order.ShopID,
		order.Customer.Name,
		order.Customer.Email,
		order.Customer.Phone,
		order.Customer.Timezone,
		order.DeliveryAddress,
		order.TotalCents,
		order.Status,
		order.ClientCreatedAt,
		order.CustomerTimeZone,
		order.CustomerOffsetMinutes,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID).
			Str("shop_id", order.ShopID).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID).
		Str("shop_id", order.ShopID).
		Msg("order created successfully")

	return nil
}

// CreateOrderItems inserts an order's line items within the provided
// transaction. line_no preserves the cart order of each line.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (order_id, line_no, product_id, name, qty, price_cents)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query, item.OrderID, item.LineNo, item.ProductID, item.Name, item.Qty, item.PriceCents)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", items[i].OrderID).
				Str("product_id", items[i].ProductID).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order items created successfully")

	return nil
}

// GetByIDs retrieves orders with their items in one batch. Ids that do not
// exist are simply absent from the result.
func (r *orderRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Order, error) {
	if len(ids) == 0 {
		return []model.Order{}, nil
	}

	orderQuery := `
		SELECT id, shop_id,
			customer_name, customer_email, customer_phone, customer_timezone,
			delivery_address, total_cents, status,
			client_created_at, customer_time_zone, customer_offset_minutes,
			created_at, updated_at
		FROM orders
		WHERE id = ANY($1)
	`

	rows, err := r.pool.Query(ctx, orderQuery, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query orders by IDs")
		return nil, fmt.Errorf("failed to query orders by IDs: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	index := make(map[string]int)
	for rows.Next() {
		var o model.Order
		err := rows.Scan(
			&o.ID,
			&o.ShopID,
			&o.Customer.Name,
			&o.Customer.Email,
			&o.Customer.Phone,
			&o.Customer.Timezone,
			&o.DeliveryAddress,
			&o.TotalCents,
			&o.Status,
			&o.ClientCreatedAt,
			&o.CustomerTimeZone,
			&o.CustomerOffsetMinutes,
			&o.CreatedAt,
			&o.UpdatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	itemsQuery := `
		SELECT order_id, line_no, product_id, name, qty, price_cents
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, line_no
	`

	found := make([]string, 0, len(orders))
	for _, o := range orders {
		found = append(found, o.ID)
	}

	itemRows, err := r.pool.Query(ctx, itemsQuery, found)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item model.OrderItem
		err := itemRows.Scan(&item.OrderID, &item.LineNo, &item.ProductID, &item.Name, &item.Qty, &item.PriceCents)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		if i, ok := index[item.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}

	if err := itemRows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return orders, nil
}
