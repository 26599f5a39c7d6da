package services

import (
	"testing"
	"time"

	"solemate_server/structs"
	"solemate_server/structs/tables"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uuidPtr(id uuid.UUID) *uuid.UUID { return &id }

func TestPlanLineChange(t *testing.T) {
	productID := uuid.New()
	variantID := uuid.New()
	sizeID := uuid.New()

	existing := []tables.CartItem{
		{
			ID:        uuid.New(),
			ProductID: productID,
			VariantID: uuidPtr(variantID),
			SizeID:    uuidPtr(sizeID),
			Quantity:  2,
		},
	}

	t.Run("new line is created", func(t *testing.T) {
		action, match := planLineChange(existing, uuid.New(), nil, nil, 1)
		assert.Equal(t, lineCreate, action)
		assert.Nil(t, match)
	})

	t.Run("existing line quantity is replaced, not added", func(t *testing.T) {
		action, match := planLineChange(existing, productID, uuidPtr(variantID), uuidPtr(sizeID), 5)
		assert.Equal(t, lineUpdate, action)
		assert.NotNil(t, match)
		assert.Equal(t, existing[0].ID, match.ID)
	})

	t.Run("zero quantity removes the existing line", func(t *testing.T) {
		action, match := planLineChange(existing, productID, uuidPtr(variantID), uuidPtr(sizeID), 0)
		assert.Equal(t, lineRemove, action)
		assert.Equal(t, existing[0].ID, match.ID)
	})

	t.Run("negative quantity removes the existing line", func(t *testing.T) {
		action, _ := planLineChange(existing, productID, uuidPtr(variantID), uuidPtr(sizeID), -3)
		assert.Equal(t, lineRemove, action)
	})

	t.Run("zero quantity on an absent line is a no-op", func(t *testing.T) {
		action, match := planLineChange(existing, uuid.New(), nil, nil, 0)
		assert.Equal(t, lineNoop, action)
		assert.Nil(t, match)
	})

	t.Run("same product with a different size is a separate line", func(t *testing.T) {
		action, match := planLineChange(existing, productID, uuidPtr(variantID), uuidPtr(uuid.New()), 1)
		assert.Equal(t, lineCreate, action)
		assert.Nil(t, match)
	})
}

func TestFindLine(t *testing.T) {
	productID := uuid.New()
	variantID := uuid.New()
	sizeID := uuid.New()

	items := []tables.CartItem{
		{
			ID:        uuid.New(),
			ProductID: productID,
			VariantID: uuidPtr(variantID),
			SizeID:    uuidPtr(sizeID),
		},
		{
			ID:        uuid.New(),
			ProductID: uuid.New(),
		},
	}

	t.Run("matches by item id", func(t *testing.T) {
		match := findLine(items, &structs.RemoveFromCartRequest{CartItemID: uuidPtr(items[1].ID)})
		require.NotNil(t, match)
		assert.Equal(t, items[1].ID, match.ID)
	})

	t.Run("matches by triple", func(t *testing.T) {
		match := findLine(items, &structs.RemoveFromCartRequest{
			ProductID: uuidPtr(productID),
			VariantID: uuidPtr(variantID),
			SizeID:    uuidPtr(sizeID),
		})
		require.NotNil(t, match)
		assert.Equal(t, items[0].ID, match.ID)
	})

	t.Run("item id takes precedence over the triple", func(t *testing.T) {
		match := findLine(items, &structs.RemoveFromCartRequest{
			CartItemID: uuidPtr(items[1].ID),
			ProductID:  uuidPtr(productID),
			VariantID:  uuidPtr(variantID),
			SizeID:     uuidPtr(sizeID),
		})
		require.NotNil(t, match)
		assert.Equal(t, items[1].ID, match.ID)
	})

	t.Run("unknown item id matches nothing", func(t *testing.T) {
		assert.Nil(t, findLine(items, &structs.RemoveFromCartRequest{CartItemID: uuidPtr(uuid.New())}))
	})

	t.Run("triple with wrong size matches nothing", func(t *testing.T) {
		assert.Nil(t, findLine(items, &structs.RemoveFromCartRequest{
			ProductID: uuidPtr(productID),
			VariantID: uuidPtr(variantID),
			SizeID:    uuidPtr(uuid.New()),
		}))
	})

	t.Run("empty request matches nothing", func(t *testing.T) {
		assert.Nil(t, findLine(items, &structs.RemoveFromCartRequest{}))
	})

	t.Run("empty tree matches nothing", func(t *testing.T) {
		assert.Nil(t, findLine(nil, &structs.RemoveFromCartRequest{CartItemID: uuidPtr(items[0].ID)}))
	})
}

func TestBuildCartSnapshot(t *testing.T) {
	treeID := uuid.New()
	now := time.Now()
	delta := int64(1000)

	tree := &tables.CartTree{
		ID: treeID,
		Items: []tables.CartItem{
			{
				ID:        uuid.New(),
				ProductID: uuid.New(),
				Quantity:  1,
				CreatedAt: now, // newer, should sort second
				Product:   &tables.Product{Name: "Runner", PriceCents: 8000},
			},
			{
				ID:        uuid.New(),
				ProductID: uuid.New(),
				Quantity:  2,
				CreatedAt: now.Add(-time.Minute),
				Product:   &tables.Product{Name: "Boot", PriceCents: 12000},
				Variant:   &tables.ProductVariant{Name: "Black", PriceDeltaCents: &delta},
				Size:      &tables.Size{Value: "43"},
			},
		},
	}

	snapshot := buildCartSnapshot(tree)

	assert.Equal(t, treeID, snapshot.TreeID)
	assert.Len(t, snapshot.Lines, 2)

	// oldest line first
	assert.Equal(t, "Boot", snapshot.Lines[0].ProductName)
	assert.Equal(t, "Black", snapshot.Lines[0].VariantName)
	assert.Equal(t, "43", snapshot.Lines[0].SizeValue)
	assert.Equal(t, int64(13000), snapshot.Lines[0].UnitPriceCents)
	assert.Equal(t, int64(26000), snapshot.Lines[0].LineTotalCents)

	assert.Equal(t, "Runner", snapshot.Lines[1].ProductName)
	assert.Equal(t, int64(8000), snapshot.Lines[1].LineTotalCents)

	assert.Equal(t, int64(34000), snapshot.SubtotalCents)
}

func TestBuildCartSnapshotEmptyTree(t *testing.T) {
	snapshot := buildCartSnapshot(&tables.CartTree{ID: uuid.New()})
	assert.Empty(t, snapshot.Lines)
	assert.Zero(t, snapshot.SubtotalCents)
}
