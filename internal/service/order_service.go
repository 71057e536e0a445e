package service

import (
	"context"
	"fmt"
	"strings"

	"bloom-market/internal/model"
	"bloom-market/internal/repository"
	"bloom-market/internal/validate"

	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	shopRepo     repository.ShopRepository
	productRepo  repository.ProductRepository
	catalog      CatalogService
	logger       zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	shopRepo repository.ShopRepository,
	productRepo repository.ProductRepository,
	catalog CatalogService,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		shopRepo:     shopRepo,
		productRepo:  productRepo,
		catalog:      catalog,
		logger:       logger.With().Str("service", "order").Logger(),
	}
}

// shopGroup is the subset of cart lines whose products share one owning
// shop. Groups keep the order in which their shop was first encountered
// while scanning the cart.
type shopGroup struct {
	shopID string
	lines  []model.OrderItemRequest
}

// PlaceOrder runs the placement workflow: validate the cart, resolve the
// referenced products, partition the lines by owning shop, check the
// advisory shopId hint, then upsert the customer and create one order per
// group. The upsert and every order create run in a single transaction, so
// a failure partway leaves no customer or order behind.
func (s *orderService) PlaceOrder(ctx context.Context, req *model.OrderRequest) (*model.PlacementResponse, error) {
	if len(req.Items) == 0 {
		return nil, model.ErrEmptyCart
	}

	ids := make([]string, len(req.Items))
	for i, item := range req.Items {
		if !validate.IsObjectID(item.ProductID) {
			s.logger.Warn().Str("product_id", item.ProductID).Msg("malformed product id in cart")
			return nil, model.ErrInvalidProductID
		}
		ids[i] = item.ProductID
	}

	refs, err := s.catalog.ResolveProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	groups := make([]*shopGroup, 0, 1)
	byShop := make(map[string]*shopGroup)
	for _, item := range req.Items {
		ref := refs[item.ProductID]
		g, ok := byShop[ref.ShopID]
		if !ok {
			g = &shopGroup{shopID: ref.ShopID}
			byShop[ref.ShopID] = g
			groups = append(groups, g)
		}
		g.lines = append(g.lines, item)
	}

	if err := checkShopHint(req.ShopID, groups); err != nil {
		s.logger.Warn().Err(err).Int("groups", len(groups)).Msg("shop hint rejected")
		return nil, err
	}

	email := validate.NormalizeEmail(req.Email)
	phone := validate.NormalizePhone(req.Phone)
	name := validate.NormalizeName(req.Name)
	address := strings.TrimSpace(req.Address)

	timezone := req.CustomerTimezone
	if timezone == "" {
		timezone = model.DefaultTimezone
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	err = s.customerRepo.Upsert(ctx, tx, model.CustomerUpsert{
		Email:          email,
		Phone:          phone,
		Name:           name,
		DefaultAddress: address,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to upsert customer")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	orderIDs := make([]string, 0, len(groups))
	for _, g := range groups {
		order := &model.Order{
			ID: validate.NewObjectID(),
			Customer: model.OrderCustomer{
				Name:     name,
				Email:    email,
				Phone:    phone,
				Timezone: timezone,
			},
			ShopID:          g.shopID,
			DeliveryAddress: address,
			Status:          model.OrderStatusCreated,
		}
		if req.ClientCreatedAt != "" {
			order.ClientCreatedAt = &req.ClientCreatedAt
		}
		if req.CustomerTimezone != "" {
			order.CustomerTimeZone = &req.CustomerTimezone
		}
		order.CustomerOffsetMinutes = req.CustomerOffsetMinutes

		for i, line := range g.lines {
			ref := refs[line.ProductID]
			order.Items = append(order.Items, model.OrderItem{
				OrderID:    order.ID,
				LineNo:     i,
				ProductID:  ref.ID,
				Name:       ref.Name,
				Qty:        line.Qty,
				PriceCents: ref.PriceCents,
			})
			order.TotalCents += int64(line.Qty) * ref.PriceCents
		}

		if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
			s.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to create order")
			return nil, fmt.Errorf("failed to place order: %w", err)
		}
		if err = s.orderRepo.CreateOrderItems(ctx, tx, order.Items); err != nil {
			s.logger.Error().
				Err(err).
				Str("order_id", order.ID).
				Int("item_count", len(order.Items)).
				Msg("failed to create order items")
			return nil, fmt.Errorf("failed to place order: %w", err)
		}

		orderIDs = append(orderIDs, order.ID)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.logger.Info().
		Strs("order_ids", orderIDs).
		Int("shop_count", len(groups)).
		Str("email", email).
		Msg("order placed")

	return &model.PlacementResponse{OrderIDs: orderIDs}, nil
}

// checkShopHint validates the advisory shopId field. A single id must name
// the one and only group. A list is format-checked only and never
// cross-checked against the grouping.
func checkShopHint(hint model.ShopIDHint, groups []*shopGroup) error {
	if !hint.Present() {
		return nil
	}

	if hint.IsList() {
		for _, id := range hint.List {
			if !validate.IsObjectID(id) {
				return model.ErrInvalidShopID
			}
		}
		return nil
	}

	if !validate.IsObjectID(hint.Single) {
		return model.ErrInvalidShopID
	}
	if len(groups) != 1 || groups[0].shopID != hint.Single {
		return model.ErrShopMismatch
	}
	return nil
}

// BulkInfo fetches the requested orders in one batch, joins shop and live
// product display data, and shapes the projection. Line totals use the
// prices snapshotted at placement, never the catalogue's current prices.
func (s *orderService) BulkInfo(ctx context.Context, orderIDs []string) (*model.BulkInfoResponse, error) {
	unique := make([]string, 0, len(orderIDs))
	seen := make(map[string]struct{}, len(orderIDs))
	for _, id := range orderIDs {
		if !validate.IsObjectID(id) {
			return nil, model.ErrInvalidOrderID
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	orders, err := s.orderRepo.GetByIDs(ctx, unique)
	if err != nil {
		s.logger.Error().Err(err).Int("count", len(unique)).Msg("failed to fetch orders")
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	index := make(map[string]int, len(orders))
	for i, o := range orders {
		index[o.ID] = i
	}

	if len(orders) != len(unique) {
		var missing []string
		for _, id := range unique {
			if _, ok := index[id]; !ok {
				missing = append(missing, id)
			}
		}
		s.logger.Warn().Strs("missing_order_ids", missing).Msg("some orders not found")
		return nil, &model.OrdersNotFoundError{MissingOrderIDs: missing}
	}

	shops, products, err := s.fetchJoins(ctx, orders)
	if err != nil {
		return nil, err
	}

	// Projections follow the request's id order, not the store's.
	resp := &model.BulkInfoResponse{Orders: make([]model.OrderInfo, 0, len(unique))}
	var grandTotal int64
	for _, id := range unique {
		info := projectOrder(&orders[index[id]], shops, products)
		grandTotal += info.TotalCents
		resp.Orders = append(resp.Orders, info)
	}

	if len(resp.Orders) > 1 {
		resp.GrandTotalCents = &grandTotal
	}

	return resp, nil
}

// fetchJoins batch-loads the shops and live products referenced by a set
// of orders.
func (s *orderService) fetchJoins(ctx context.Context, orders []model.Order) (map[string]model.Shop, map[string]model.Product, error) {
	shopIDs := make([]string, 0, len(orders))
	seenShops := make(map[string]struct{}, len(orders))
	var productIDs []string
	seenProducts := make(map[string]struct{})

	for _, o := range orders {
		if _, ok := seenShops[o.ShopID]; !ok {
			seenShops[o.ShopID] = struct{}{}
			shopIDs = append(shopIDs, o.ShopID)
		}
		for _, item := range o.Items {
			if _, ok := seenProducts[item.ProductID]; !ok {
				seenProducts[item.ProductID] = struct{}{}
				productIDs = append(productIDs, item.ProductID)
			}
		}
	}

	shops, err := s.shopRepo.GetByIDs(ctx, shopIDs)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch shops for projection")
		return nil, nil, fmt.Errorf("failed to fetch shops: %w", err)
	}
	shopMap := make(map[string]model.Shop, len(shops))
	for _, sh := range shops {
		shopMap[sh.ID] = sh
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch products for projection")
		return nil, nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	productMap := make(map[string]model.Product, len(products))
	for _, p := range products {
		productMap[p.ID] = p
	}

	return shopMap, productMap, nil
}

// projectOrder shapes one order for the bulk-info response. Product name
// and image come from the live catalogue; a vanished product leaves a nil
// name and the placeholder image. Prices stay the order's snapshots.
func projectOrder(order *model.Order, shops map[string]model.Shop, products map[string]model.Product) model.OrderInfo {
	info := model.OrderInfo{
		OrderID: order.ID,
		Customer: model.OrderCustomerInfo{
			Email:    order.Customer.Email,
			Phone:    order.Customer.Phone,
			Timezone: order.Customer.Timezone,
		},
		Delivery:              model.DeliveryInfo{Address: order.DeliveryAddress},
		Items:                 make([]model.OrderItemInfo, 0, len(order.Items)),
		TotalCents:            order.TotalCents,
		Status:                order.Status,
		CreatedAt:             &order.CreatedAt,
		UpdatedAt:             &order.UpdatedAt,
		ClientCreatedAt:       order.ClientCreatedAt,
		CustomerTimeZone:      order.CustomerTimeZone,
		CustomerOffsetMinutes: order.CustomerOffsetMinutes,
	}

	if info.Customer.Timezone == "" {
		info.Customer.Timezone = model.DefaultTimezone
	}
	if order.Customer.Name != "" {
		info.Customer.Name = &order.Customer.Name
	}

	if shop, ok := shops[order.ShopID]; ok {
		info.Shop = &model.ShopInfo{ID: shop.ID, Name: shop.Name, Address: shop.Address}
	}

	for _, item := range order.Items {
		line := model.OrderItemInfo{
			ProductID:      item.ProductID,
			Image:          model.OrderItemImageFallback,
			Quantity:       item.Qty,
			PriceCents:     item.PriceCents,
			LineTotalCents: item.PriceCents * int64(item.Qty),
		}
		if p, ok := products[item.ProductID]; ok {
			name := p.Name
			line.Name = &name
			if p.ImageURL != "" {
				line.Image = p.ImageURL
			}
		}
		info.Items = append(info.Items, line)
	}

	return info
}
