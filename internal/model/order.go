package model

import "time"

// OrderStatusCreated is the initial (and, for this service, only) status.
const OrderStatusCreated = "created"

// OrderItemImageFallback is served in bulk-info when the referenced
// product no longer exists or carries no image.
const OrderItemImageFallback = "https://placehold.co/100x100"

// OrderCustomer is the customer snapshot embedded in an order at creation
// time. It is an owned copy: later customer edits never change it.
type OrderCustomer struct {
	Name     string `json:"name" db:"customer_name"`
	Email    string `json:"email" db:"customer_email"`
	Phone    string `json:"phone" db:"customer_phone"`
	Timezone string `json:"timezone" db:"customer_timezone"`
}

// OrderItem is one line of an order. Name and PriceCents are snapshots of
// the product at order time; totals are never recomputed from live prices.
type OrderItem struct {
	OrderID    string `json:"-" db:"order_id"`
	LineNo     int    `json:"-" db:"line_no"`
	ProductID  string `json:"productId" db:"product_id"`
	Name       string `json:"name" db:"name"`
	Qty        int    `json:"qty" db:"qty"`
	PriceCents int64  `json:"priceCents" db:"price_cents"`
}

// Order is one shop's share of a placed cart. A cart spanning N shops
// produces N orders; each belongs to exactly one shop.
type Order struct {
	ID                    string        `json:"_id" db:"id"`
	Customer              OrderCustomer `json:"customer"`
	ShopID                string        `json:"shopId" db:"shop_id"`
	DeliveryAddress       string        `json:"deliveryAddress" db:"delivery_address"`
	Items                 []OrderItem   `json:"items"`
	TotalCents            int64         `json:"totalCents" db:"total_cents"`
	Status                string        `json:"status" db:"status"`
	ClientCreatedAt       *string       `json:"clientCreatedAt" db:"client_created_at"`
	CustomerTimeZone      *string       `json:"customerTimeZone" db:"customer_time_zone"`
	CustomerOffsetMinutes *int          `json:"customerOffsetMinutes" db:"customer_offset_minutes"`
	CreatedAt             time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt             time.Time     `json:"updatedAt" db:"updated_at"`
}

// ShopInfo is the joined shop display data in a bulk-info projection.
type ShopInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// OrderItemInfo is a projected order line. PriceCents and LineTotalCents
// come from the order's snapshot; Name and Image are joined live from the
// catalogue, with Name null and Image a placeholder when the product is
// gone.
type OrderItemInfo struct {
	ProductID      string  `json:"productId"`
	Name           *string `json:"name"`
	Image          string  `json:"image"`
	Quantity       int     `json:"quantity"`
	PriceCents     int64   `json:"priceCents"`
	LineTotalCents int64   `json:"lineTotalCents"`
}

// DeliveryInfo wraps the delivery address in the bulk-info shape.
type DeliveryInfo struct {
	Address string `json:"address"`
}

// OrderCustomerInfo is the projected customer snapshot; name is null when
// the customer never supplied one.
type OrderCustomerInfo struct {
	Name     *string `json:"name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Timezone string  `json:"timezone"`
}

// OrderInfo is one projected order in a bulk-info response.
type OrderInfo struct {
	OrderID               string            `json:"orderId"`
	Shop                  *ShopInfo         `json:"shop"`
	Customer              OrderCustomerInfo `json:"customer"`
	Delivery              DeliveryInfo      `json:"delivery"`
	Items                 []OrderItemInfo   `json:"items"`
	TotalCents            int64             `json:"totalCents"`
	Status                string            `json:"status"`
	CreatedAt             *time.Time        `json:"createdAt"`
	UpdatedAt             *time.Time        `json:"updatedAt"`
	ClientCreatedAt       *string           `json:"clientCreatedAt"`
	CustomerTimeZone      *string           `json:"customerTimeZone"`
	CustomerOffsetMinutes *int              `json:"customerOffsetMinutes"`
}

// BulkInfoResponse is the POST /orders/bulk-info payload. GrandTotalCents
// is present only when more than one order was requested and found.
type BulkInfoResponse struct {
	Orders          []OrderInfo `json:"orders"`
	GrandTotalCents *int64      `json:"grandTotalCents,omitempty"`
}

// PlacementResponse is the POST /orders payload: one created order id per
// shop group, in first-encounter order of the cart lines.
type PlacementResponse struct {
	OrderIDs []string `json:"orderIds"`
}
