package repository

import (
	"context"
	"errors"
	"fmt"

	"bloom-market/internal/model"
	"bloom-market/internal/validate"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// customerRepository implements the CustomerRepository interface using PostgreSQL.
type customerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCustomerRepository creates a new PostgreSQL-backed customer repository.
func NewCustomerRepository(pool *pgxpool.Pool, logger zerolog.Logger) CustomerRepository {
	return &customerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "customer").Logger(),
	}
}

// FindByIdentity retrieves a customer by its normalized (email, phone) pair.
func (r *customerRepository) FindByIdentity(ctx context.Context, email, phone string) (*model.Customer, error) {
	query := `
		SELECT id, name, email, phone, default_address, last_seen_at, timezone, created_at, updated_at
		FROM customers
		WHERE email = $1 AND phone = $2
	`

	var c model.Customer
	err := r.pool.QueryRow(ctx, query, email, phone).Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.DefaultAddress,
		&c.LastSeenAt,
		&c.Timezone,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("email", email).Msg("customer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("email", email).Msg("failed to query customer")
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	return &c, nil
}

// Upsert atomically finds-or-creates-or-updates a customer keyed by the
// normalized (email, phone) pair. The single INSERT ... ON CONFLICT
// statement makes two concurrent first-time requests for the same identity
// converge on one record instead of racing a check-then-act pair. Name is
// only overwritten when a non-empty name was supplied; email, phone and the
// default timezone are set on insert only.
func (r *customerRepository) Upsert(ctx context.Context, tx pgx.Tx, up model.CustomerUpsert) error {
	query := `
		INSERT INTO customers (id, name, email, phone, default_address, last_seen_at, timezone)
		VALUES ($1, $2, $3, $4, $5, now(), $6)
		ON CONFLICT (email, phone) DO UPDATE SET
			name = COALESCE(NULLIF(EXCLUDED.name, ''), customers.name),
			default_address = EXCLUDED.default_address,
			last_seen_at = now(),
			updated_at = now()
	`

	_, err := tx.Exec(ctx, query,
		validate.NewObjectID(),
		up.Name,
		up.Email,
		up.Phone,
		up.DefaultAddress,
		model.DefaultTimezone,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("email", up.Email).Msg("failed to upsert customer")
		return fmt.Errorf("failed to upsert customer: %w", err)
	}

	r.logger.Debug().Str("email", up.Email).Msg("customer upserted")

	return nil
}
