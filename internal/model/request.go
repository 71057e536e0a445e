package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"bloom-market/internal/validate"
)

// Field-level validation messages shared with the original client.
const (
	msgName    = "Name can only contain letters, spaces, apostrophes and hyphens"
	msgEmail   = "Please enter a valid email address"
	msgPhone   = "Enter a valid phone number (e.g., 063 123 45 67)"
	msgAddress = "Address can only contain letters, numbers, spaces, and basic punctuation"
	msgHexID   = "must be a 24-character hex id"
)

// ShopIDHint is the advisory shopId field of an order request. The wire
// value may be a single id, a list of ids, or absent.
type ShopIDHint struct {
	Single string
	List   []string
	isList bool
	set    bool
}

// UnmarshalJSON accepts a string, an array of strings, or null.
func (h *ShopIDHint) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		h.Single = s
		h.set = true
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		h.List = list
		h.isList = true
		h.set = true
		return nil
	}
	return fmt.Errorf("shopId must be a string or an array of strings")
}

// SingleShopIDHint returns a hint holding one shop id.
func SingleShopIDHint(id string) ShopIDHint {
	return ShopIDHint{Single: id, set: true}
}

// ListShopIDHint returns a hint holding a list of shop ids.
func ListShopIDHint(ids []string) ShopIDHint {
	return ShopIDHint{List: ids, isList: true, set: true}
}

// Present reports whether the field appeared on the wire.
func (h ShopIDHint) Present() bool { return h.set }

// IsList reports whether the wire value was an array.
func (h ShopIDHint) IsList() bool { return h.isList }

// OrderItemRequest is one cart line of an order request.
type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// OrderRequest is the POST /orders body.
type OrderRequest struct {
	Name                  string             `json:"name"`
	Email                 string             `json:"email"`
	Phone                 string             `json:"phone"`
	Address               string             `json:"address"`
	ShopID                ShopIDHint         `json:"shopId"`
	Items                 []OrderItemRequest `json:"items"`
	CustomerTimezone      string             `json:"customerTimezone"`
	ClientCreatedAt       string             `json:"clientCreatedAt"`
	CustomerOffsetMinutes *int               `json:"customerOffsetMinutes"`
}

// Validate checks the request shape, accumulating one error per failed
// field rather than stopping at the first.
func (r *OrderRequest) Validate() *validate.Errors {
	v := validate.NewCollector()

	if name := validate.NormalizeName(r.Name); name != "" {
		v.Match("name", name, validate.NameRegex, msgName)
	}
	if v.Require("email", r.Email) {
		v.Match("email", strings.TrimSpace(r.Email), validate.EmailRegex, msgEmail)
	}
	if v.Require("phone", r.Phone) {
		v.Match("phone", strings.TrimSpace(r.Phone), validate.PhoneRegex, msgPhone)
	}
	if v.Require("address", r.Address) {
		v.Match("address", strings.TrimSpace(r.Address), validate.AddressRegex, msgAddress)
	}

	if r.ShopID.Present() && !r.ShopID.IsList() {
		v.ObjectID("shopId", r.ShopID.Single, fmt.Sprintf("shopId %s", msgHexID))
	}
	if r.ShopID.IsList() {
		for i, s := range r.ShopID.List {
			v.ObjectID(fmt.Sprintf("shopId.%d", i), s, fmt.Sprintf("shopId %s", msgHexID))
		}
	}

	if len(r.Items) == 0 {
		v.Add("items", "at least one item is required")
	}
	for i, it := range r.Items {
		v.ObjectID(fmt.Sprintf("items.%d.productId", i), it.ProductID, fmt.Sprintf("productId %s", msgHexID))
		v.Positive(fmt.Sprintf("items.%d.qty", i), it.Qty, "qty must be a positive integer")
	}

	if r.ClientCreatedAt != "" {
		if _, err := time.Parse(time.RFC3339, r.ClientCreatedAt); err != nil {
			v.Add("clientCreatedAt", "clientCreatedAt must be an ISO date string")
		}
	}

	return v.Err()
}

// PrefillRequest is the POST /customers/prefill body.
type PrefillRequest struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Validate checks the prefill request shape.
func (r *PrefillRequest) Validate() *validate.Errors {
	v := validate.NewCollector()
	if v.Require("email", r.Email) {
		v.Match("email", strings.TrimSpace(r.Email), validate.EmailRegex, msgEmail)
	}
	if v.Require("phone", r.Phone) {
		v.Match("phone", strings.TrimSpace(r.Phone), validate.PhoneRegex, msgPhone)
	}
	return v.Err()
}

// OrderIDList accepts a single order id or an array of ids on the wire.
type OrderIDList []string

// UnmarshalJSON accepts a string or an array of strings.
func (l *OrderIDList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = OrderIDList{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = OrderIDList(list)
		return nil
	}
	return fmt.Errorf("orderIds must be a string or an array of strings")
}

// BulkInfoRequest is the POST /orders/bulk-info body.
type BulkInfoRequest struct {
	OrderIDs OrderIDList `json:"orderIds"`
}

// Validate checks the bulk-info request shape.
func (r *BulkInfoRequest) Validate() *validate.Errors {
	v := validate.NewCollector()
	if len(r.OrderIDs) == 0 {
		v.Add("orderIds", `"orderIds" is required`)
	}
	for i, id := range r.OrderIDs {
		v.ObjectID(fmt.Sprintf("orderIds.%d", i), id, fmt.Sprintf("orderId %s", msgHexID))
	}
	return v.Err()
}

// ProductsQuery is the validated query of GET /shops/{id}/products.
type ProductsQuery struct {
	Sort  string
	Order string
}

// ParseProductsQuery validates and defaults the sort/order query values.
func ParseProductsQuery(sort, order string) (ProductsQuery, *validate.Errors) {
	v := validate.NewCollector()
	v.OneOf("sort", sort, "price", "date")
	v.OneOf("order", order, "asc", "desc")
	if err := v.Err(); err != nil {
		return ProductsQuery{}, err
	}
	if sort == "" {
		sort = "date"
	}
	if order == "" {
		order = "desc"
	}
	return ProductsQuery{Sort: sort, Order: order}, nil
}
