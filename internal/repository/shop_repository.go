package repository

import (
	"context"
	"fmt"

	"bloom-market/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// shopRepository implements the ShopRepository interface using PostgreSQL.
type shopRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewShopRepository creates a new PostgreSQL-backed shop repository.
func NewShopRepository(pool *pgxpool.Pool, logger zerolog.Logger) ShopRepository {
	return &shopRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "shop").Logger(),
	}
}

// GetAll retrieves all shops.
func (r *shopRepository) GetAll(ctx context.Context) ([]model.Shop, error) {
	query := `
		SELECT id, name, address, created_at, updated_at
		FROM shops
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query shops")
		return nil, fmt.Errorf("failed to query shops: %w", err)
	}
	defer rows.Close()

	var shops []model.Shop
	for rows.Next() {
		var s model.Shop
		if err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.CreatedAt, &s.UpdatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan shop row")
			return nil, fmt.Errorf("failed to scan shop: %w", err)
		}
		shops = append(shops, s)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating shop rows")
		return nil, fmt.Errorf("error iterating shops: %w", err)
	}

	return shops, nil
}

// GetByIDs retrieves multiple shops by their IDs.
func (r *shopRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Shop, error) {
	if len(ids) == 0 {
		return []model.Shop{}, nil
	}

	query := `
		SELECT id, name, address, created_at, updated_at
		FROM shops
		WHERE id = ANY($1)
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query shops by IDs")
		return nil, fmt.Errorf("failed to query shops by IDs: %w", err)
	}
	defer rows.Close()

	var shops []model.Shop
	for rows.Next() {
		var s model.Shop
		if err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.CreatedAt, &s.UpdatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan shop row")
			return nil, fmt.Errorf("failed to scan shop: %w", err)
		}
		shops = append(shops, s)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating shop rows")
		return nil, fmt.Errorf("error iterating shops: %w", err)
	}

	return shops, nil
}
