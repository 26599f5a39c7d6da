package structs

import "github.com/google/uuid"

// AddToCartRequest sets the quantity of one (product, variant, size) line
// within the session's cart tree. Quantity is a set, not an increment;
// zero or negative removes the line.
type AddToCartRequest struct {
	ProductID uuid.UUID  `json:"product_id" validate:"required"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	SizeID    *uuid.UUID `json:"size_id,omitempty"`
	Quantity  int        `json:"quantity"`
}

type AddToCartResponse struct {
	Success bool      `json:"success"`
	CartID  uuid.UUID `json:"cart"`
	TreeID  uuid.UUID `json:"tree"`
	Removed bool      `json:"removed,omitempty"`
}

// RemoveFromCartRequest identifies a line either by its id or by the triple.
type RemoveFromCartRequest struct {
	CartItemID *uuid.UUID `json:"cart_item_id,omitempty"`
	ProductID  *uuid.UUID `json:"product_id,omitempty"`
	VariantID  *uuid.UUID `json:"variant_id,omitempty"`
	SizeID     *uuid.UUID `json:"size_id,omitempty"`
}

// CartToggleView tells the client which affordance to render for a line:
// "remove" with the current count when the line is in the tree, else "add".
type CartToggleView struct {
	View  string `json:"view"` // "add" | "remove"
	Count int    `json:"count"`
}

// CartLineView is one snapshot line with resolved pricing.
type CartLineView struct {
	ItemID         uuid.UUID `json:"item_id"`
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	VariantName    string    `json:"variant_name,omitempty"`
	SizeValue      string    `json:"size_value,omitempty"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	LineTotalCents int64     `json:"line_total_cents"`
}

// CartSnapshot is the full cart view; the subtotal is recomputed on every
// read, never cached.
type CartSnapshot struct {
	TreeID        uuid.UUID      `json:"tree"`
	Lines         []CartLineView `json:"lines"`
	SubtotalCents int64          `json:"subtotal_cents"`
}
