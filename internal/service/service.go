package service

import (
	"context"

	"bloom-market/internal/model"
)

// CatalogService defines read operations over shops and products.
type CatalogService interface {
	// ListShops retrieves all shops.
	ListShops(ctx context.Context) ([]model.Shop, error)

	// ListShopProducts retrieves a shop's products in the requested sort order.
	ListShopProducts(ctx context.Context, shopID string, query model.ProductsQuery) ([]model.Product, error)

	// ResolveProducts batch-resolves product ids to their owning shop,
	// display name and current unit price. Fails when any id does not
	// exist or a product carries no owning shop.
	ResolveProducts(ctx context.Context, ids []string) (map[string]model.ProductRef, error)
}

// CustomerService defines customer-facing operations.
type CustomerService interface {
	// Prefill looks up a customer by normalized (email, phone). Returns
	// nil without error when no customer matches.
	Prefill(ctx context.Context, req *model.PrefillRequest) (*model.PrefillResponse, error)
}

// OrderService defines order placement and retrieval operations.
type OrderService interface {
	// PlaceOrder validates a cart, groups its lines by owning shop,
	// upserts the customer and creates one order per shop group. Returns
	// the created order ids in first-encounter order of the groups.
	PlaceOrder(ctx context.Context, req *model.OrderRequest) (*model.PlacementResponse, error)

	// BulkInfo fetches orders by id and projects them with joined shop
	// and product display data, plus a grand total when more than one
	// order is returned.
	BulkInfo(ctx context.Context, orderIDs []string) (*model.BulkInfoResponse, error)
}
