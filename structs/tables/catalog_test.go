package tables

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 { return &v }

func TestEffectivePriceCents(t *testing.T) {
	p := &Product{PriceCents: 10000}

	assert.Equal(t, int64(10000), p.EffectivePriceCents(nil))
	assert.Equal(t, int64(10000), p.EffectivePriceCents(&ProductVariant{}))
	assert.Equal(t, int64(11500), p.EffectivePriceCents(&ProductVariant{PriceDeltaCents: int64Ptr(1500)}))
	assert.Equal(t, int64(8000), p.EffectivePriceCents(&ProductVariant{PriceDeltaCents: int64Ptr(-2000)}))
}

func TestMinPriceCents(t *testing.T) {
	t.Run("no variants returns base price", func(t *testing.T) {
		p := &Product{PriceCents: 9900}
		assert.Equal(t, int64(9900), p.MinPriceCents())
	})

	t.Run("variants without delta do not lower the price", func(t *testing.T) {
		p := &Product{
			PriceCents: 9900,
			Variants:   []ProductVariant{{}, {}},
		}
		assert.Equal(t, int64(9900), p.MinPriceCents())
	})

	t.Run("negative delta wins over base price", func(t *testing.T) {
		p := &Product{
			PriceCents: 9900,
			Variants: []ProductVariant{
				{PriceDeltaCents: int64Ptr(500)},
				{PriceDeltaCents: int64Ptr(-1400)},
			},
		}
		assert.Equal(t, int64(8500), p.MinPriceCents())
	})

	t.Run("only positive deltas keep the base price as minimum", func(t *testing.T) {
		p := &Product{
			PriceCents: 9900,
			Variants: []ProductVariant{
				{PriceDeltaCents: int64Ptr(500)},
				{PriceDeltaCents: int64Ptr(900)},
			},
		}
		assert.Equal(t, int64(9900), p.MinPriceCents())
	})
}

func TestAverageRating(t *testing.T) {
	p := &Product{}
	assert.Zero(t, p.AverageRating())
	assert.Zero(t, p.ReviewCount())

	p.Reviews = []Review{{Rating: 5}, {Rating: 4}, {Rating: 3}}
	assert.Equal(t, 3, p.ReviewCount())
	assert.InDelta(t, 4.0, p.AverageRating(), 0.001)
}

func TestMainImageURL(t *testing.T) {
	p := &Product{}
	assert.Empty(t, p.MainImageURL())

	p.Images = []ProductImage{
		{URL: "b.jpg", Position: 2},
		{URL: "a.jpg", Position: 0},
		{URL: "c.jpg", Position: 1},
	}
	assert.Equal(t, "a.jpg", p.MainImageURL())
}

func TestDiscountPercentage(t *testing.T) {
	assert.Zero(t, (&Product{PriceCents: 5000}).DiscountPercentage())
	assert.Zero(t, (&Product{PriceCents: 5000, OldPriceCents: int64Ptr(5000)}).DiscountPercentage())
	assert.Zero(t, (&Product{PriceCents: 5000, OldPriceCents: int64Ptr(4000)}).DiscountPercentage())
	assert.Equal(t, 25, (&Product{PriceCents: 7500, OldPriceCents: int64Ptr(10000)}).DiscountPercentage())
	assert.Equal(t, 50, (&Product{PriceCents: 5000, OldPriceCents: int64Ptr(10000)}).DiscountPercentage())

	// rounds to nearest, not truncates: 19900/29900 = 66.55...%
	assert.Equal(t, 67, (&Product{PriceCents: 10000, OldPriceCents: int64Ptr(29900)}).DiscountPercentage())
	// 100/30000 = 0.33...% rounds down
	assert.Equal(t, 0, (&Product{PriceCents: 29900, OldPriceCents: int64Ptr(30000)}).DiscountPercentage())
}

func TestVariantImagesLimitConstant(t *testing.T) {
	// The write path relies on this cap staying small and positive.
	assert.Equal(t, 5, MaxVariantImages)
}

func TestStockEntrySizeRelation(t *testing.T) {
	sizeID := uuid.New()
	e := StockEntry{SizeID: sizeID, Size: &Size{ID: sizeID, Value: "42"}}
	assert.Equal(t, "42", e.Size.Value)
}
