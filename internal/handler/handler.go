package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"bloom-market/internal/model"
	"bloom-market/internal/validate"

	"github.com/rs/zerolog"
)

// ErrorResponse represents a plain error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse is the structured per-field error contract.
type ValidationErrorResponse struct {
	Error   string                `json:"error"`
	Details []validate.FieldError `json:"details"`
}

// OrdersNotFoundResponse names the requested order ids that do not exist.
type OrdersNotFoundResponse struct {
	Error           string   `json:"error"`
	MissingOrderIDs []string `json:"missingOrderIds"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Response is already partially flushed; nothing sensible left to do.
		return
	}
}

// writeError writes a plain error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeValidationErrors writes the accumulated field errors of one schema.
func writeValidationErrors(w http.ResponseWriter, verr *validate.Errors, logger zerolog.Logger) {
	logger.Warn().Int("field_errors", len(verr.Details)).Msg("request validation failed")
	writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{
		Error:   "Validation error",
		Details: verr.Details,
	})
}

// writeServiceError maps a service-layer error onto the wire contract:
// accumulated validation errors, business-rule failures with their declared
// status, missing-order reports, and a generic 500 for everything else.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var verr *validate.Errors
	if errors.As(err, &verr) {
		writeValidationErrors(w, verr, logger)
		return
	}

	var derr *model.DomainError
	if errors.As(err, &derr) {
		logger.Warn().Str("code", derr.Code).Str("error", derr.Message).Msg("business rule rejected request")
		writeJSON(w, derr.Status, ErrorResponse{Error: derr.Message})
		return
	}

	var nferr *model.OrdersNotFoundError
	if errors.As(err, &nferr) {
		logger.Warn().Strs("missing_order_ids", nferr.MissingOrderIDs).Msg("orders not found")
		writeJSON(w, http.StatusNotFound, OrdersNotFoundResponse{
			Error:           "Some orders not found",
			MissingOrderIDs: nferr.MissingOrderIDs,
		})
		return
	}

	logger.Error().Err(err).Msg("unhandled service error")
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}
