package tables

import (
	"time"

	"github.com/google/uuid"
)

// CartTree is one session's shopping cart. It is created lazily on the
// first cart interaction and referenced by the opaque session token the
// browser holds; it is never explicitly deleted.
type CartTree struct {
	tableName    struct{}  `bun:"table:cart_trees,alias:ct"`
	ID           uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	SessionToken string    `bun:"session_token,notnull,unique" json:"session_token"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:now()" json:"updated_at"`

	Items []CartItem `bun:"rel:has-many,join:id=tree_id" json:"items,omitempty"`
}

// CartItem is one (product, variant, size, quantity) line. A line is owned
// by exactly one cart tree until checkout moves it onto an order, so at any
// time exactly one of TreeID/OrderID is set. Line identity within a tree is
// the (product, variant, size) triple.
type CartItem struct {
	tableName struct{}   `bun:"table:cart_items,alias:ci"`
	ID        uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	TreeID    *uuid.UUID `bun:"tree_id,type:uuid" json:"tree_id,omitempty"`
	OrderID   *uuid.UUID `bun:"order_id,type:uuid" json:"order_id,omitempty"`
	ProductID uuid.UUID  `bun:"product_id,notnull,type:uuid" json:"product_id"`
	VariantID *uuid.UUID `bun:"variant_id,type:uuid" json:"variant_id,omitempty"`
	SizeID    *uuid.UUID `bun:"size_id,type:uuid" json:"size_id,omitempty"`
	Quantity  int        `bun:"quantity,notnull" json:"quantity"`
	CreatedAt time.Time  `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,notnull,default:now()" json:"updated_at"`

	Product *Product        `bun:"rel:belongs-to,join:product_id=id" json:"product,omitempty"`
	Variant *ProductVariant `bun:"rel:belongs-to,join:variant_id=id" json:"variant,omitempty"`
	Size    *Size           `bun:"rel:belongs-to,join:size_id=id" json:"size,omitempty"`
}

// MatchesLine reports whether the item is the same line as the given
// (product, variant, size) triple.
func (ci *CartItem) MatchesLine(productID uuid.UUID, variantID, sizeID *uuid.UUID) bool {
	if ci.ProductID != productID {
		return false
	}
	return uuidPtrEqual(ci.VariantID, variantID) && uuidPtrEqual(ci.SizeID, sizeID)
}

// UnitPriceCents resolves the line's unit price: the variant's effective
// price when a variant is set, else the product base price. Requires the
// Product (and Variant, when set) relation to be loaded.
func (ci *CartItem) UnitPriceCents() int64 {
	if ci.Product == nil {
		return 0
	}
	return ci.Product.EffectivePriceCents(ci.Variant)
}

// LineTotalCents is unit price times quantity.
func (ci *CartItem) LineTotalCents() int64 {
	return ci.UnitPriceCents() * int64(ci.Quantity)
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
