package service

import (
	"context"
	"fmt"

	"bloom-market/internal/model"
	"bloom-market/internal/repository"

	"github.com/rs/zerolog"
)

// catalogService implements CatalogService.
type catalogService struct {
	shopRepo    repository.ShopRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	shopRepo repository.ShopRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) CatalogService {
	return &catalogService{
		shopRepo:    shopRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "catalog").Logger(),
	}
}

// ListShops retrieves all shops.
func (s *catalogService) ListShops(ctx context.Context) ([]model.Shop, error) {
	shops, err := s.shopRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list shops")
		return nil, fmt.Errorf("failed to list shops: %w", err)
	}
	return shops, nil
}

// ListShopProducts retrieves a shop's products in the requested sort order.
func (s *catalogService) ListShopProducts(ctx context.Context, shopID string, query model.ProductsQuery) ([]model.Product, error) {
	products, err := s.productRepo.GetByShop(ctx, shopID, query.Sort, query.Order)
	if err != nil {
		s.logger.Error().Err(err).Str("shop_id", shopID).Msg("failed to list shop products")
		return nil, fmt.Errorf("failed to list shop products: %w", err)
	}
	return products, nil
}

// ResolveProducts batch-resolves product ids. The requested ids are
// deduplicated; if the store returns fewer products than the requested set
// holds, at least one id does not exist and the whole resolution fails
// rather than silently dropping items. A product without an owning shop is
// a data-integrity error surfaced with the offending id.
func (s *catalogService) ResolveProducts(ctx context.Context, ids []string) (map[string]model.ProductRef, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	products, err := s.productRepo.GetByIDs(ctx, unique)
	if err != nil {
		s.logger.Error().Err(err).Int("count", len(unique)).Msg("failed to resolve products")
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}

	if len(products) != len(unique) {
		s.logger.Warn().
			Int("requested", len(unique)).
			Int("found", len(products)).
			Msg("not all product IDs exist")
		return nil, model.ErrProductNotFound
	}

	refs := make(map[string]model.ProductRef, len(products))
	for _, p := range products {
		if p.ShopID == "" {
			s.logger.Warn().Str("product_id", p.ID).Msg("product has no owning shop")
			return nil, model.NewProductMissingShopError(p.ID)
		}
		refs[p.ID] = model.ProductRef{
			ID:         p.ID,
			ShopID:     p.ShopID,
			Name:       p.Name,
			PriceCents: p.PriceCents,
		}
	}

	return refs, nil
}
