package handler

import (
	"encoding/json"
	"net/http"

	"bloom-market/internal/model"
	"bloom-market/internal/service"

	"github.com/rs/zerolog"
)

// CustomerHandler handles customer-related HTTP requests.
type CustomerHandler struct {
	service service.CustomerService
	logger  zerolog.Logger
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(service service.CustomerService, logger zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		logger:  logger.With().Str("handler", "customer").Logger(),
	}
}

// Prefill handles POST /customers/prefill requests. A customer that does
// not exist is rendered as a JSON null body, not an error.
func (h *CustomerHandler) Prefill(w http.ResponseWriter, r *http.Request) {
	var req model.PrefillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if verr := req.Validate(); verr != nil {
		writeValidationErrors(w, verr, h.logger)
		return
	}

	resp, err := h.service.Prefill(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
