package model

import "time"

// DefaultTimezone is assigned to customers who never stated one.
const DefaultTimezone = "Europe/Kyiv"

// Customer is identified by its normalized (email, phone) pair; that pair
// is unique in the store and serves as the natural key for upserts.
type Customer struct {
	ID             string    `json:"_id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	Phone          string    `json:"phone" db:"phone"`
	DefaultAddress string    `json:"defaultAddress" db:"default_address"`
	LastSeenAt     time.Time `json:"lastSeenAt" db:"last_seen_at"`
	Timezone       string    `json:"timezone" db:"timezone"`
	CreatedAt      time.Time `json:"-" db:"created_at"`
	UpdatedAt      time.Time `json:"-" db:"updated_at"`
}

// CustomerUpsert carries the normalized fields of an atomic
// find-or-create-or-update against the (email, phone) key. Name is only
// applied when non-empty so an existing name is never blanked out.
type CustomerUpsert struct {
	Email          string
	Phone          string
	Name           string
	DefaultAddress string
}

// PrefillResponse is the shape returned by POST /customers/prefill. Name
// and default address are null when the customer never supplied them.
type PrefillResponse struct {
	Name           *string `json:"name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	DefaultAddress *string `json:"defaultAddress"`
	Timezone       string  `json:"timezone"`
}
