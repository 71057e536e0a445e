package handler

import (
	"fmt"
	"net/http"

	"bloom-market/internal/model"
	"bloom-market/internal/service"
	"bloom-market/internal/validate"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ShopHandler handles shop and product listing HTTP requests.
type ShopHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewShopHandler creates a new shop handler.
func NewShopHandler(service service.CatalogService, logger zerolog.Logger) *ShopHandler {
	return &ShopHandler{
		service: service,
		logger:  logger.With().Str("handler", "shop").Logger(),
	}
}

// List handles GET /shops requests.
func (h *ShopHandler) List(w http.ResponseWriter, r *http.Request) {
	shops, err := h.service.ListShops(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve shops", h.logger)
		return
	}
	if shops == nil {
		shops = []model.Shop{}
	}
	writeJSON(w, http.StatusOK, shops)
}

// ListProducts handles GET /shops/{id}/products requests. The query is
// validated before the path parameter, and the first failing schema stops
// processing with its errors alone.
func (h *ShopHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query, verr := model.ParseProductsQuery(
		r.URL.Query().Get("sort"),
		r.URL.Query().Get("order"),
	)
	if verr != nil {
		writeValidationErrors(w, verr, h.logger)
		return
	}

	shopID := chi.URLParam(r, "id")
	v := validate.NewCollector()
	v.ObjectID("id", shopID, fmt.Sprintf("%q must be a 24-character hex id", "id"))
	if verr := v.Err(); verr != nil {
		writeValidationErrors(w, verr, h.logger)
		return
	}

	products, err := h.service.ListShopProducts(r.Context(), shopID, query)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve products", h.logger)
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}
