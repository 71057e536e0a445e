package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"bloom-market/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockShopRepository is a mock implementation of ShopRepository.
type MockShopRepository struct {
	mock.Mock
}

func (m *MockShopRepository) GetAll(ctx context.Context) ([]model.Shop, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Shop), args.Error(1)
}

func (m *MockShopRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Shop, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Shop), args.Error(1)
}

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetByShop(ctx context.Context, shopID, sort, order string) ([]model.Product, error) {
	args := m.Called(ctx, shopID, sort, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

const (
	shopIDA = "665f1f77bcf86cd799439001"
	shopIDB = "665f1f77bcf86cd799439002"

	productIDA = "665f1f77bcf86cd799439011"
	productIDB = "665f1f77bcf86cd799439012"
	productIDC = "665f1f77bcf86cd799439013"
)

func TestCatalogService_ListShops(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	shops := []model.Shop{
		{ID: shopIDA, Name: "Kvity na Khreshchatyku", Address: "Khreshchatyk St, 22, Kyiv"},
	}

	mockShopRepo := new(MockShopRepository)
	mockProductRepo := new(MockProductRepository)
	mockShopRepo.On("GetAll", ctx).Return(shops, nil)

	svc := NewCatalogService(mockShopRepo, mockProductRepo, logger)

	got, err := svc.ListShops(ctx)
	require.NoError(t, err)
	assert.Equal(t, shops, got)

	mockShopRepo.AssertExpectations(t)
}

func TestCatalogService_ListShopProducts(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	products := []model.Product{
		{ID: productIDA, ShopID: shopIDA, Name: "Red Rose Bouquet", PriceCents: 89900, CreatedAt: time.Now()},
	}

	mockShopRepo := new(MockShopRepository)
	mockProductRepo := new(MockProductRepository)
	mockProductRepo.On("GetByShop", ctx, shopIDA, "price", "asc").Return(products, nil)

	svc := NewCatalogService(mockShopRepo, mockProductRepo, logger)

	got, err := svc.ListShopProducts(ctx, shopIDA, model.ProductsQuery{Sort: "price", Order: "asc"})
	require.NoError(t, err)
	assert.Equal(t, products, got)

	mockProductRepo.AssertExpectations(t)
}

func TestCatalogService_ResolveProducts_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockShopRepo := new(MockShopRepository)
	mockProductRepo := new(MockProductRepository)
	mockProductRepo.On("GetByIDs", ctx, []string{productIDA, productIDB}).Return([]model.Product{
		{ID: productIDA, ShopID: shopIDA, Name: "Red Rose Bouquet", PriceCents: 89900},
		{ID: productIDB, ShopID: shopIDB, Name: "White Tulips", PriceCents: 45000},
	}, nil)

	svc := NewCatalogService(mockShopRepo, mockProductRepo, logger)

	refs, err := svc.ResolveProducts(ctx, []string{productIDA, productIDB})
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, shopIDA, refs[productIDA].ShopID)
	assert.Equal(t, int64(45000), refs[productIDB].PriceCents)

	mockProductRepo.AssertExpectations(t)
}

func TestCatalogService_ResolveProducts_DeduplicatesIDs(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockShopRepo := new(MockShopRepository)
	mockProductRepo := new(MockProductRepository)
	// Two cart lines for the same product resolve as one requested id.
	mockProductRepo.On("GetByIDs", ctx, []string{productIDA}).Return([]model.Product{
		{ID: productIDA, ShopID: shopIDA, Name: "Red Rose Bouquet", PriceCents: 89900},
	}, nil)

	svc := NewCatalogService(mockShopRepo, mockProductRepo, logger)

	refs, err := svc.ResolveProducts(ctx, []string{productIDA, productIDA})
	require.NoError(t, err)
	assert.Len(t, refs, 1)

	mockProductRepo.AssertExpectations(t)
}

func TestCatalogService_ResolveProducts_MissingProduct(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockShopRepo := new(MockShopRepository)
	mockProductRepo := new(MockProductRepository)
	mockProductRepo.On("GetByIDs", ctx, []string{productIDA, productIDC}).Return([]model.Product{
		{ID: productIDA, ShopID: shopIDA, Name: "Red Rose Bouquet", PriceCents: 89900},
	}, nil)

	svc := NewCatalogService(mockShopRepo, mockProductRepo, logger)

	refs, err := svc.ResolveProducts(ctx, []string{productIDA, productIDC})
	assert.Nil(t, refs)
	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestCatalogService_ResolveProducts_ProductWithoutShop(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockShopRepo := new(MockShopRepository)
	mockProductRepo := new(MockProductRepository)
	mockProductRepo.On("GetByIDs", ctx, []string{productIDA}).Return([]model.Product{
		{ID: productIDA, ShopID: "", Name: "Orphan", PriceCents: 100},
	}, nil)

	svc := NewCatalogService(mockShopRepo, mockProductRepo, logger)

	_, err := svc.ResolveProducts(ctx, []string{productIDA})
	require.Error(t, err)

	var derr *model.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, model.ErrCodeProductMissingShop, derr.Code)
	assert.Contains(t, derr.Message, productIDA)
}

func TestCatalogService_ResolveProducts_RepositoryError(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockShopRepo := new(MockShopRepository)
	mockProductRepo := new(MockProductRepository)
	mockProductRepo.On("GetByIDs", ctx, mock.Anything).Return(nil, errors.New("connection refused"))

	svc := NewCatalogService(mockShopRepo, mockProductRepo, logger)

	_, err := svc.ResolveProducts(ctx, []string{productIDA})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to resolve products")
}
