package model

import "time"

// DefaultProductImage is the catalogue placeholder for products created
// without an image.
const DefaultProductImage = "https://placehold.co/600x400"

// Product represents a catalogue entry owned by a shop. Prices are integer
// minor currency units (cents) so totals never see floating-point rounding.
type Product struct {
	ID          string    `json:"_id" db:"id"`
	ShopID      string    `json:"shopId" db:"shop_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	PriceCents  int64     `json:"priceCents" db:"price_cents"`
	ImageURL    string    `json:"imageUrl" db:"image_url"`
	IsBouquet   bool      `json:"isBouquet" db:"is_bouquet"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"-" db:"updated_at"`
}

// ProductRef is the resolved view of a product needed to place an order:
// the owning shop, the display name and the unit price to snapshot.
type ProductRef struct {
	ID         string
	ShopID     string
	Name       string
	PriceCents int64
}
