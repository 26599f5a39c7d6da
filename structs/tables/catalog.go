package tables

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Product is the main catalog entity (a shoe). Prices are stored in cents.
type Product struct {
	tableName        struct{}  `bun:"table:products,alias:p"`
	ID               uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name             string    `bun:"name,notnull" json:"name"`
	Slug             string    `bun:"slug,notnull" json:"slug"`
	SKU              string    `bun:"sku" json:"sku,omitempty"`
	Gender           int       `bun:"gender" json:"gender,omitempty"` // 0 unset, 1 male, 2 female
	BrandID          *uuid.UUID `bun:"brand_id,type:uuid" json:"brand_id,omitempty"`
	ShortDescription string    `bun:"short_description" json:"short_description,omitempty"`
	Description      string    `bun:"description" json:"description,omitempty"`
	PriceCents       int64     `bun:"price_cents,notnull" json:"price_cents"`
	OldPriceCents    *int64    `bun:"old_price_cents" json:"old_price_cents,omitempty"`
	IsActive         bool      `bun:"is_active,notnull" json:"is_active"`
	IsFeatured       bool      `bun:"is_featured,notnull" json:"is_featured"`
	IsNew            bool      `bun:"is_new,notnull" json:"is_new"`
	TimesOrdered     int       `bun:"times_ordered,notnull,default:0" json:"times_ordered"`
	CreatedAt        time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt        time.Time `bun:"updated_at,notnull,default:now()" json:"updated_at"`

	Brand      *Brand           `bun:"rel:belongs-to,join:brand_id=id" json:"brand,omitempty"`
	Variants   []ProductVariant `bun:"rel:has-many,join:id=product_id" json:"variants,omitempty"`
	Images     []ProductImage   `bun:"rel:has-many,join:id=product_id" json:"images,omitempty"`
	Reviews    []Review         `bun:"rel:has-many,join:id=product_id" json:"reviews,omitempty"`
	Categories []Category       `bun:"m2m:product_categories,join:Product=Category" json:"categories,omitempty"`
	Tags       []Tag            `bun:"m2m:product_tags,join:Product=Tag" json:"tags,omitempty"`
}

// EffectivePriceCents resolves the price of one variant of the product:
// the base price adjusted by the variant's delta when one is set.
func (p *Product) EffectivePriceCents(v *ProductVariant) int64 {
	if v == nil || v.PriceDeltaCents == nil {
		return p.PriceCents
	}
	return p.PriceCents + *v.PriceDeltaCents
}

// MinPriceCents is the cheapest way to buy the product: the minimum of the
// base price and every variant price that carries a delta. Requires
// Variants to be loaded; with none loaded it is just the base price.
func (p *Product) MinPriceCents() int64 {
	min := p.PriceCents
	for i := range p.Variants {
		if p.Variants[i].PriceDeltaCents == nil {
			continue
		}
		if price := p.EffectivePriceCents(&p.Variants[i]); price < min {
			min = price
		}
	}
	return min
}

func (p *Product) ReviewCount() int {
	return len(p.Reviews)
}

// AverageRating is the mean review rating, 0 when unreviewed.
func (p *Product) AverageRating() float64 {
	if len(p.Reviews) == 0 {
		return 0
	}
	var sum int
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(p.Reviews))
}

// MainImageURL returns the product image with the lowest position,
// or "" when the product has no images loaded.
func (p *Product) MainImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	main := p.Images[0]
	for _, img := range p.Images[1:] {
		if img.Position < main.Position {
			main = img
		}
	}
	return main.URL
}

// DiscountPercentage is derived from old price vs current price,
// 0 when there is no old price or no actual discount.
func (p *Product) DiscountPercentage() int {
	if p.OldPriceCents == nil || *p.OldPriceCents <= p.PriceCents {
		return 0
	}
	return int(math.Round(float64(*p.OldPriceCents-p.PriceCents) / float64(*p.OldPriceCents) * 100))
}

// ProductVariant is a color-specific version of a product with its own
// optional price delta, stock rows and images.
type ProductVariant struct {
	tableName       struct{}  `bun:"table:product_variants,alias:pv"`
	ID              uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	ProductID       uuid.UUID `bun:"product_id,notnull,type:uuid" json:"product_id"`
	Name            string    `bun:"name,notnull" json:"name"` // color name, e.g. Black
	HexCode         string    `bun:"hex_code" json:"hex_code,omitempty"`
	CSSClass        string    `bun:"css_class" json:"css_class,omitempty"`
	SKU             string    `bun:"sku" json:"sku,omitempty"`
	PriceDeltaCents *int64    `bun:"price_delta_cents" json:"price_delta_cents,omitempty"`
	IsActive        bool      `bun:"is_active,notnull" json:"is_active"`

	StockEntries []StockEntry   `bun:"rel:has-many,join:id=variant_id" json:"stock_entries,omitempty"`
	Images       []VariantImage `bun:"rel:has-many,join:id=variant_id" json:"images,omitempty"`
}

// MaxVariantImages caps how many images a single variant may carry.
// Exceeding it is a hard write failure, unlike most other constraints here.
const MaxVariantImages = 5

// StockEntry holds quantity per (variant, size). The pair is deliberately
// not unique-constrained; see structs.StockPolicy for how duplicates are read.
type StockEntry struct {
	tableName struct{}  `bun:"table:stock_entries,alias:se"`
	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	VariantID uuid.UUID `bun:"variant_id,notnull,type:uuid" json:"variant_id"`
	SizeID    uuid.UUID `bun:"size_id,notnull,type:uuid" json:"size_id"`
	Quantity  int       `bun:"quantity,notnull,default:0" json:"quantity"`
	CreatedAt time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`

	Size *Size `bun:"rel:belongs-to,join:size_id=id" json:"size,omitempty"`
}

// Size is a free-text size label ("42", "M"), globally unique by value.
type Size struct {
	tableName struct{}  `bun:"table:sizes,alias:s"`
	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Value     string    `bun:"value,notnull,unique" json:"value"`
}

type ProductImage struct {
	tableName struct{}  `bun:"table:product_images,alias:pi"`
	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	ProductID uuid.UUID `bun:"product_id,notnull,type:uuid" json:"product_id"`
	URL       string    `bun:"url,notnull" json:"url"`
	AltText   string    `bun:"alt_text" json:"alt_text,omitempty"`
	Position  int       `bun:"position,notnull,default:0" json:"position"`
}

type VariantImage struct {
	tableName struct{}  `bun:"table:variant_images,alias:vi"`
	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	VariantID uuid.UUID `bun:"variant_id,notnull,type:uuid" json:"variant_id"`
	URL       string    `bun:"url,notnull" json:"url"`
	AltText   string    `bun:"alt_text" json:"alt_text,omitempty"`
	Position  int       `bun:"position,notnull,default:0" json:"position"`
}

type Category struct {
	tableName   struct{}  `bun:"table:categories,alias:c"`
	ID          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name        string    `bun:"name,notnull,unique" json:"name"`
	Description string    `bun:"description" json:"description,omitempty"`
}

type Tag struct {
	tableName struct{}  `bun:"table:tags,alias:t"`
	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name      string    `bun:"name,notnull,unique" json:"name"`
}

type Brand struct {
	tableName   struct{}  `bun:"table:brands,alias:b"`
	ID          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name        string    `bun:"name,notnull,unique" json:"name"`
	Description string    `bun:"description" json:"description,omitempty"`
}

type Review struct {
	tableName struct{}  `bun:"table:reviews,alias:r"`
	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	ProductID uuid.UUID `bun:"product_id,notnull,type:uuid" json:"product_id"`
	Rating    int       `bun:"rating,notnull" json:"rating"` // 1..5
	Title     string    `bun:"title" json:"title,omitempty"`
	Body      string    `bun:"body" json:"body,omitempty"`
	CreatedAt time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
}

// ProductCategory is the join model for the product <-> category m2m.
type ProductCategory struct {
	tableName  struct{}  `bun:"table:product_categories,alias:pc"`
	ProductID  uuid.UUID `bun:"product_id,pk,type:uuid" json:"product_id"`
	CategoryID uuid.UUID `bun:"category_id,pk,type:uuid" json:"category_id"`

	Product  *Product  `bun:"rel:belongs-to,join:product_id=id"`
	Category *Category `bun:"rel:belongs-to,join:category_id=id"`
}

// ProductTag is the join model for the product <-> tag m2m.
type ProductTag struct {
	tableName struct{}  `bun:"table:product_tags,alias:pt"`
	ProductID uuid.UUID `bun:"product_id,pk,type:uuid" json:"product_id"`
	TagID     uuid.UUID `bun:"tag_id,pk,type:uuid" json:"tag_id"`

	Product *Product `bun:"rel:belongs-to,join:product_id=id"`
	Tag     *Tag     `bun:"rel:belongs-to,join:tag_id=id"`
}
