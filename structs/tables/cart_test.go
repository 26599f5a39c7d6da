package tables

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func uuidPtr(id uuid.UUID) *uuid.UUID { return &id }

func TestMatchesLine(t *testing.T) {
	productID := uuid.New()
	variantID := uuid.New()
	sizeID := uuid.New()

	item := &CartItem{
		ProductID: productID,
		VariantID: uuidPtr(variantID),
		SizeID:    uuidPtr(sizeID),
	}

	assert.True(t, item.MatchesLine(productID, uuidPtr(variantID), uuidPtr(sizeID)))
	assert.False(t, item.MatchesLine(uuid.New(), uuidPtr(variantID), uuidPtr(sizeID)))
	assert.False(t, item.MatchesLine(productID, uuidPtr(uuid.New()), uuidPtr(sizeID)))
	assert.False(t, item.MatchesLine(productID, uuidPtr(variantID), nil))
	assert.False(t, item.MatchesLine(productID, nil, uuidPtr(sizeID)))
}

func TestMatchesLineWithoutVariantOrSize(t *testing.T) {
	productID := uuid.New()
	item := &CartItem{ProductID: productID}

	assert.True(t, item.MatchesLine(productID, nil, nil))
	assert.False(t, item.MatchesLine(productID, uuidPtr(uuid.New()), nil))
}

func TestCartItemPricing(t *testing.T) {
	t.Run("without loaded product the price is zero", func(t *testing.T) {
		item := &CartItem{Quantity: 3}
		assert.Zero(t, item.UnitPriceCents())
		assert.Zero(t, item.LineTotalCents())
	})

	t.Run("base price without variant", func(t *testing.T) {
		item := &CartItem{
			Quantity: 2,
			Product:  &Product{PriceCents: 4500},
		}
		assert.Equal(t, int64(4500), item.UnitPriceCents())
		assert.Equal(t, int64(9000), item.LineTotalCents())
	})

	t.Run("variant delta shifts the unit price", func(t *testing.T) {
		delta := int64(500)
		item := &CartItem{
			Quantity: 3,
			Product:  &Product{PriceCents: 4500},
			Variant:  &ProductVariant{PriceDeltaCents: &delta},
		}
		assert.Equal(t, int64(5000), item.UnitPriceCents())
		assert.Equal(t, int64(15000), item.LineTotalCents())
	})
}
