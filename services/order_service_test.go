package services

import (
	"testing"
	"time"

	"solemate_server/structs"
	"solemate_server/structs/tables"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeCheckout(t *testing.T) {
	t.Run("valid form is trimmed and collapsed", func(t *testing.T) {
		form, fieldErrs := normalizeCheckout(&structs.CheckoutRequest{
			FIO:     "  Ivan   Petrov ",
			Phone:   " +7 999 000 11 22 ",
			Address: "Main st.\t1",
		})

		assert.Empty(t, fieldErrs)
		assert.Equal(t, "Ivan Petrov", form.FIO)
		assert.Equal(t, "+7 999 000 11 22", form.Phone)
		assert.Equal(t, "Main st. 1", form.Address)
		assert.Empty(t, form.Phone2)
	})

	t.Run("missing required fields are all reported", func(t *testing.T) {
		_, fieldErrs := normalizeCheckout(&structs.CheckoutRequest{})

		fields := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, fe.Field)
		}
		assert.ElementsMatch(t, []string{"fio", "phone", "address"}, fields)
	})

	t.Run("whitespace-only values count as missing", func(t *testing.T) {
		_, fieldErrs := normalizeCheckout(&structs.CheckoutRequest{
			FIO:     "   ",
			Phone:   "+7 999 000 11 22",
			Address: "Main st. 1",
		})

		assert.Len(t, fieldErrs, 1)
		assert.Equal(t, "fio", fieldErrs[0].Field)
	})

	t.Run("phone2 stays optional", func(t *testing.T) {
		form, fieldErrs := normalizeCheckout(&structs.CheckoutRequest{
			FIO:     "Ivan Petrov",
			Phone:   "+7 999 000 11 22",
			Phone2:  " +7 111 222 33 44 ",
			Address: "Main st. 1",
		})

		assert.Empty(t, fieldErrs)
		assert.Equal(t, "+7 111 222 33 44", form.Phone2)
	})
}

func TestBuildOrderConfirmation(t *testing.T) {
	order := &tables.Order{
		ID:          uuid.New(),
		OrderNumber: "SM-260829-A1B2",
		FullName:    "Ivan Petrov",
		Phone:       "+7 999 000 11 22",
		Address:     "Main st. 1",
		CreatedAt:   time.Now(),
	}

	delta := int64(-500)
	items := []tables.CartItem{
		{
			ID:        uuid.New(),
			ProductID: uuid.New(),
			Quantity:  2,
			Product:   &tables.Product{Name: "Runner", PriceCents: 8000},
		},
		{
			ID:        uuid.New(),
			ProductID: uuid.New(),
			Quantity:  1,
			Product:   &tables.Product{Name: "Boot", PriceCents: 12000},
			Variant:   &tables.ProductVariant{Name: "White", PriceDeltaCents: &delta},
			Size:      &tables.Size{Value: "41"},
		},
	}

	confirmation := buildOrderConfirmation(order, items)

	assert.Equal(t, order.ID, confirmation.OrderID)
	assert.Equal(t, "SM-260829-A1B2", confirmation.OrderNumber)
	assert.Equal(t, "Ivan Petrov", confirmation.FullName)
	assert.Len(t, confirmation.Lines, 2)

	// 2 * 8000 + 1 * (12000 - 500)
	assert.Equal(t, int64(27500), confirmation.TotalCents)
	assert.Equal(t, "White", confirmation.Lines[1].VariantName)
	assert.Equal(t, "41", confirmation.Lines[1].SizeValue)
	assert.Equal(t, int64(11500), confirmation.Lines[1].UnitPriceCents)
}

func TestBuildOrderConfirmationEmptyItems(t *testing.T) {
	order := &tables.Order{ID: uuid.New(), OrderNumber: "SM-260829-ZZZZ"}
	confirmation := buildOrderConfirmation(order, nil)

	assert.Empty(t, confirmation.Lines)
	assert.Zero(t, confirmation.TotalCents)
}
