package structs

import (
	"time"

	"github.com/google/uuid"
)

// VariantView is the per-color summary serialized on listing and detail pages.
type VariantView struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	HexCode    string    `json:"hex_code,omitempty"`
	CSSClass   string    `json:"css_class,omitempty"`
	PriceCents int64     `json:"price_cents"`
	SKU        string    `json:"sku,omitempty"`
	Images     []string  `json:"images,omitempty"`
	Sizes      []SizeView `json:"sizes,omitempty"`
}

type SizeView struct {
	ID    uuid.UUID `json:"id"`
	Value string    `json:"value"`
}

// ProductView is the JSON-friendly product card for the shop listing.
type ProductView struct {
	ID               uuid.UUID     `json:"id"`
	Name             string        `json:"name"`
	PriceCents       int64         `json:"price_cents"`
	OldPriceCents    *int64        `json:"old_price_cents,omitempty"`
	MinPriceCents    int64         `json:"min_price_cents"`
	ShortDescription string        `json:"short_description,omitempty"`
	Categories       []string      `json:"categories,omitempty"`
	Tags             []string      `json:"tags,omitempty"`
	Image            string        `json:"image,omitempty"`
	Images           []string      `json:"images,omitempty"`
	Variants         []VariantView `json:"colors,omitempty"`
	Sizes            []SizeView    `json:"sizes,omitempty"`
	ReviewCount      int           `json:"reviews_count"`
	AverageRating    float64       `json:"average_rating"`
	TimesOrdered     int           `json:"times_ordered"`
	IsFeatured       bool          `json:"is_featured,omitempty"`
	IsNew            bool          `json:"is_new,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
}

// AttachVariantImageRequest adds one image to a color variant. A variant
// holds at most a handful of images; pushing past the cap fails the request.
type AttachVariantImageRequest struct {
	URL      string `json:"url" validate:"required,url,max=2048"`
	AltText  string `json:"alt_text,omitempty" validate:"max=300"`
	Position int    `json:"position" validate:"gte=0"`
}

// ReviewView serializes one review on the detail page.
type ReviewView struct {
	Rating    int       `json:"rating"`
	Title     string    `json:"title,omitempty"`
	Body      string    `json:"body,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductDetailView is the full product page payload.
type ProductDetailView struct {
	ProductView
	Description        string        `json:"description,omitempty"`
	Brand              string        `json:"brand,omitempty"`
	DiscountPercentage int           `json:"discount_percentage"`
	Reviews            []ReviewView  `json:"reviews,omitempty"`
	RelatedProducts    []ProductView `json:"related_products,omitempty"`
}
