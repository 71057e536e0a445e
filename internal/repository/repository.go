package repository

import (
	"context"

	"bloom-market/internal/model"

	"github.com/jackc/pgx/v5"
)

// ShopRepository defines the interface for shop data access operations.
type ShopRepository interface {
	// GetAll retrieves all shops.
	GetAll(ctx context.Context) ([]model.Shop, error)

	// GetByIDs retrieves multiple shops by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Shop, error)
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetByShop retrieves a shop's products sorted by price or creation
	// date ("price"/"date") in the requested direction ("asc"/"desc").
	GetByShop(ctx context.Context, shopID, sort, order string) ([]model.Product, error)

	// GetByIDs retrieves multiple products by their IDs in one batch.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)
}

// CustomerRepository defines the interface for customer data access operations.
type CustomerRepository interface {
	// FindByIdentity retrieves a customer by its normalized (email, phone)
	// pair. Returns nil when no customer matches.
	FindByIdentity(ctx context.Context, email, phone string) (*model.Customer, error)

	// Upsert atomically finds-or-creates-or-updates a customer keyed by
	// the normalized (email, phone) pair, within the provided transaction.
	Upsert(ctx context.Context, tx pgx.Tx, up model.CustomerUpsert) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts an order's line items within the provided
	// transaction, preserving their cart order.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByIDs retrieves orders with their items in one batch. Absent ids
	// are simply not returned; callers diff against the request.
	GetByIDs(ctx context.Context, ids []string) ([]model.Order, error)
}
