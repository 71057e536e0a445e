package handler

import (
	"encoding/json"
	"net/http"

	"bloom-market/internal/model"
	"bloom-market/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if verr := req.Validate(); verr != nil {
		writeValidationErrors(w, verr, h.logger)
		return
	}

	resp, err := h.service.PlaceOrder(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// BulkInfo handles POST /orders/bulk-info requests.
func (h *OrderHandler) BulkInfo(w http.ResponseWriter, r *http.Request) {
	var req model.BulkInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if verr := req.Validate(); verr != nil {
		writeValidationErrors(w, verr, h.logger)
		return
	}

	resp, err := h.service.BulkInfo(r.Context(), req.OrderIDs)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
