package repository

import (
	"context"
	"fmt"

	"bloom-market/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = `id, shop_id, name, description, price_cents, image_url, is_bouquet, created_at, updated_at`

// GetByShop retrieves a shop's products in the requested sort order. The
// sort column and direction are mapped from a closed set, never
// interpolated from raw input.
func (r *productRepository) GetByShop(ctx context.Context, shopID, sort, order string) ([]model.Product, error) {
	column := "created_at"
	if sort == "price" {
		column = "price_cents"
	}
	direction := "DESC"
	if order == "asc" {
		direction = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE shop_id = $1
		ORDER BY %s %s
	`, productColumns, column, direction)

	rows, err := r.pool.Query(ctx, query, shopID)
	if err != nil {
		r.logger.Error().Err(err).Str("shop_id", shopID).Msg("failed to query shop products")
		return nil, fmt.Errorf("failed to query shop products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		r.logger.Error().Err(err).Str("shop_id", shopID).Msg("failed to scan shop products")
		return nil, err
	}

	return products, nil
}

// GetByIDs retrieves multiple products by their IDs.
func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE id = ANY($1)
	`, productColumns)

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan products")
		return nil, err
	}

	return products, nil
}

// scanProducts collects product rows.
func scanProducts(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]model.Product, error) {
	var products []model.Product
	for rows.Next() {
		var p model.Product
		err := rows.Scan(
			&p.ID,
			&p.ShopID,
			&p.Name,
			&p.Description,
			&p.PriceCents,
			&p.ImageURL,
			&p.IsBouquet,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
