package model

import (
	"fmt"
	"net/http"
)

// Standard error codes for API responses
const (
	ErrCodeEmptyCart          = "EMPTY_CART"
	ErrCodeInvalidProductID   = "INVALID_PRODUCT_ID"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeProductMissingShop = "PRODUCT_MISSING_SHOP"
	ErrCodeInvalidShopID      = "INVALID_SHOP_ID"
	ErrCodeShopMismatch       = "SHOP_MISMATCH"
	ErrCodeInvalidOrderID     = "INVALID_ORDER_ID"
	ErrCodeOrdersNotFound     = "ORDERS_NOT_FOUND"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure raised by the core logic. Status
// is the HTTP status the outer boundary should respond with.
type DomainError struct {
	Code    string
	Message string
	Status  int
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string, status int) *DomainError {
	return &DomainError{Code: code, Message: message, Status: status}
}

// Common domain errors
var (
	ErrEmptyCart        = NewDomainError(ErrCodeEmptyCart, "Order must contain at least one item", http.StatusBadRequest)
	ErrInvalidProductID = NewDomainError(ErrCodeInvalidProductID, "Invalid productId in items", http.StatusBadRequest)
	ErrProductNotFound  = NewDomainError(ErrCodeProductNotFound, "One or more products not found", http.StatusBadRequest)
	ErrInvalidShopID    = NewDomainError(ErrCodeInvalidShopID, "Invalid shopId", http.StatusBadRequest)
	ErrShopMismatch     = NewDomainError(ErrCodeShopMismatch, "Items do not belong to the provided shopId", http.StatusBadRequest)
	ErrInvalidOrderID   = NewDomainError(ErrCodeInvalidOrderID, "Invalid order ID(s) provided", http.StatusBadRequest)
)

// NewProductMissingShopError reports a data-integrity gap: a catalogue
// product without an owning shop, named by id.
func NewProductMissingShopError(productID string) *DomainError {
	return NewDomainError(
		ErrCodeProductMissingShop,
		fmt.Sprintf("Product missing shopId: %s", productID),
		http.StatusBadRequest,
	)
}

// OrdersNotFoundError reports a bulk-info request where some of the
// requested orders do not exist; MissingOrderIDs follows the original
// request order.
type OrdersNotFoundError struct {
	MissingOrderIDs []string
}

func (e *OrdersNotFoundError) Error() string {
	return "Some orders not found"
}
