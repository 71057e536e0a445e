package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bloom-market/internal/handler"
	"bloom-market/internal/model"
	"bloom-market/internal/repository"
	"bloom-market/internal/router"
	"bloom-market/internal/service"
	"bloom-market/internal/validate"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer wires the full stack against a live database, the same
// way cmd/api does.
func newTestServer(pool *pgxpool.Pool) *httptest.Server {
	logger := zerolog.Nop()

	shopRepo := repository.NewShopRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	customerRepo := repository.NewCustomerRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	catalogSvc := service.NewCatalogService(shopRepo, productRepo, logger)
	customerSvc := service.NewCustomerService(customerRepo, logger)
	orderSvc := service.NewOrderService(orderRepo, customerRepo, shopRepo, productRepo, catalogSvc, logger)

	shopHandler := handler.NewShopHandler(catalogSvc, logger)
	customerHandler := handler.NewCustomerHandler(customerSvc, logger)
	orderHandler := handler.NewOrderHandler(orderSvc, logger)

	h := router.New(shopHandler, customerHandler, orderHandler, router.Options{
		APIPrefix:      "/api",
		AllowedOrigins: []string{"*"},
	}, logger)

	return httptest.NewServer(h)
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, json.NewEncoder(buf).Encode(body))
	resp, err := http.Post(url, "application/json", buf)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func placementBody(items []map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"name":    "Olena Kravchenko",
		"email":   "olena@example.com",
		"phone":   "063-123-45-67",
		"address": "Khreshchatyk St, 22, Kyiv",
		"items":   items,
	}
}

func TestAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := SetupTestDB(t)
	SeedCatalog(t, db.Pool)
	srv := newTestServer(db.Pool)
	defer srv.Close()

	ctx := context.Background()

	t.Run("health reports ok", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/health")
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			OK   bool   `json:"ok"`
			Time string `json:"time"`
		}
		decodeBody(t, resp, &body)
		assert.True(t, body.OK)
		assert.NotEmpty(t, body.Time)
	})

	t.Run("lists shops with underscore id", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/shops")
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var shops []map[string]interface{}
		decodeBody(t, resp, &shops)
		require.Len(t, shops, 2)
		ids := []string{shops[0]["_id"].(string), shops[1]["_id"].(string)}
		assert.Contains(t, ids, SeedShopKyiv)
		assert.Contains(t, ids, SeedShopLviv)
	})

	t.Run("lists shop products sorted by price", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/shops/" + SeedShopKyiv + "/products?sort=price&order=asc")
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var products []model.Product
		decodeBody(t, resp, &products)
		require.Len(t, products, 2)
		assert.Equal(t, "White Tulips", products[0].Name)
		assert.Equal(t, "Red Rose Bouquet", products[1].Name)
	})

	t.Run("prefill misses with a null body before any order", func(t *testing.T) {
		CleanupDB(t, db.Pool)
		SeedCatalog(t, db.Pool)

		resp := postJSON(t, srv.URL+"/api/customers/prefill", map[string]string{
			"email": "olena@example.com",
			"phone": "0631234567",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body *model.PrefillResponse
		decodeBody(t, resp, &body)
		assert.Nil(t, body)
	})

	t.Run("single-shop placement creates one order", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/api/orders", placementBody([]map[string]interface{}{
			{"productId": SeedProductRoses, "qty": 2},
			{"productId": SeedProductTulips, "qty": 1},
		}))
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var placed model.PlacementResponse
		decodeBody(t, resp, &placed)
		require.Len(t, placed.OrderIDs, 1)
		assert.True(t, validate.IsObjectID(placed.OrderIDs[0]))

		var total int64
		require.NoError(t, db.Pool.QueryRow(ctx,
			"SELECT total_cents FROM orders WHERE id = $1", placed.OrderIDs[0]).Scan(&total))
		assert.Equal(t, int64(2*89900+45000), total)
	})

	t.Run("prefill now returns the remembered profile", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/api/customers/prefill", map[string]string{
			"email": "Olena@Example.com",
			"phone": "063 123 45 67",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body model.PrefillResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "olena@example.com", body.Email)
		assert.Equal(t, "0631234567", body.Phone)
		require.NotNil(t, body.Name)
		assert.Equal(t, "Olena Kravchenko", *body.Name)
		require.NotNil(t, body.DefaultAddress)
		assert.Equal(t, "Khreshchatyk St, 22, Kyiv", *body.DefaultAddress)
	})

	t.Run("cross-shop cart splits per shop and bulk-info sums", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/api/orders", placementBody([]map[string]interface{}{
			{"productId": SeedProductRoses, "qty": 1},
			{"productId": SeedProductPeonies, "qty": 1},
		}))
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var placed model.PlacementResponse
		decodeBody(t, resp, &placed)
		require.Len(t, placed.OrderIDs, 2)

		info := postJSON(t, srv.URL+"/api/orders/bulk-info", map[string]interface{}{
			"orderIds": placed.OrderIDs,
		})
		assert.Equal(t, http.StatusOK, info.StatusCode)

		var bulk model.BulkInfoResponse
		decodeBody(t, info, &bulk)
		require.Len(t, bulk.Orders, 2)
		require.NotNil(t, bulk.GrandTotalCents)
		assert.Equal(t, int64(89900+120000), *bulk.GrandTotalCents)

		// First order group follows the cart scan: Kyiv shop first.
		first := bulk.Orders[0]
		require.NotNil(t, first.Shop)
		assert.Equal(t, SeedShopKyiv, first.Shop.ID)
		require.Len(t, first.Items, 1)
		require.NotNil(t, first.Items[0].Name)
		assert.Equal(t, "Red Rose Bouquet", *first.Items[0].Name)
		assert.Equal(t, int64(89900), first.Items[0].PriceCents)
	})

	t.Run("bulk-info keeps snapshot prices after a catalogue change", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/api/orders", placementBody([]map[string]interface{}{
			{"productId": SeedProductOrchid, "qty": 1},
		}))
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var placed model.PlacementResponse
		decodeBody(t, resp, &placed)
		require.Len(t, placed.OrderIDs, 1)

		_, err := db.Pool.Exec(ctx,
			"UPDATE products SET price_cents = $1 WHERE id = $2", 99999, SeedProductOrchid)
		require.NoError(t, err)

		info := postJSON(t, srv.URL+"/api/orders/bulk-info", map[string]interface{}{
			"orderIds": placed.OrderIDs[0],
		})
		assert.Equal(t, http.StatusOK, info.StatusCode)

		var bulk model.BulkInfoResponse
		decodeBody(t, info, &bulk)
		require.Len(t, bulk.Orders, 1)
		assert.Nil(t, bulk.GrandTotalCents)
		require.Len(t, bulk.Orders[0].Items, 1)
		assert.Equal(t, int64(65000), bulk.Orders[0].Items[0].PriceCents)
	})

	t.Run("bulk-info reports missing ids with 404", func(t *testing.T) {
		unknown := validate.NewObjectID()
		resp := postJSON(t, srv.URL+"/api/orders/bulk-info", map[string]interface{}{
			"orderIds": []string{unknown},
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var body handler.OrdersNotFoundResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "Some orders not found", body.Error)
		assert.Equal(t, []string{unknown}, body.MissingOrderIDs)
	})

	t.Run("placement with an unknown product writes nothing", func(t *testing.T) {
		var before int
		require.NoError(t, db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM orders").Scan(&before))

		resp := postJSON(t, srv.URL+"/api/orders", placementBody([]map[string]interface{}{
			{"productId": SeedProductRoses, "qty": 1},
			{"productId": validate.NewObjectID(), "qty": 1},
		}))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body handler.ErrorResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "One or more products not found", body.Error)

		var after int
		require.NoError(t, db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM orders").Scan(&after))
		assert.Equal(t, before, after)
	})

	t.Run("validation failures list every offending field", func(t *testing.T) {
		body := placementBody([]map[string]interface{}{
			{"productId": SeedProductRoses, "qty": 1},
		})
		body["email"] = "nope"
		body["address"] = "x"

		resp := postJSON(t, srv.URL+"/api/orders", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var verr handler.ValidationErrorResponse
		decodeBody(t, resp, &verr)
		assert.Equal(t, "Validation error", verr.Error)
		assert.Len(t, verr.Details, 2)
	})

	t.Run("unknown paths under the prefix answer with a structured body", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/nope")
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var body struct {
			Error string `json:"error"`
			Path  string `json:"path"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, "Not Found", body.Error)
		assert.Equal(t, "/api/nope", body.Path)
	})
}
