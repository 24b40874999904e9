package invoice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oilbook/internal/core/id"
	"oilbook/internal/core/types"
	"oilbook/internal/domain/oiltype"
)

func TestRecalculateTotals_SevenPercentVAT(t *testing.T) {
	inv := New(id.New(), nil)
	inv.AddLine(oiltype.Diesel, "", types.NewLitersFromFloat64(16.7), types.MustMoney("29.94"))

	// 16.7 * 29.94 = 500.00 (rounded), VAT 35.00, total 535.00
	assert.True(t, inv.Subtotal.Equal(types.MustMoney("500.00")), "subtotal %s", inv.Subtotal)
	assert.True(t, inv.VATAmount.Equal(types.MustMoney("35.00")), "vat %s", inv.VATAmount)
	assert.True(t, inv.Total.Equal(types.MustMoney("535.00")), "total %s", inv.Total)
}

func TestRecalculateTotals_DiscountBeforeVAT(t *testing.T) {
	inv := New(id.New(), nil)
	inv.AddLine(oiltype.Gasohol95, "", types.NewLitersFromFloat64(100), types.MustMoney("30.00"))
	inv.Discount = types.MustMoney("1000")
	inv.RecalculateTotals()

	// (3000 - 1000) * 1.07
	assert.True(t, inv.VATAmount.Equal(types.MustMoney("140.00")), "vat %s", inv.VATAmount)
	assert.True(t, inv.Total.Equal(types.MustMoney("2140.00")), "total %s", inv.Total)
}

func TestDisplayName(t *testing.T) {
	inv := New(id.New(), nil)
	assert.Equal(t, "เงินสด", inv.DisplayName())

	inv.CustomerName = "บจก. ขนส่งไทย"
	assert.Equal(t, "บจก. ขนส่งไทย", inv.DisplayName())
}

func TestValidate(t *testing.T) {
	office := id.New()

	t.Run("cash sale ok", func(t *testing.T) {
		inv := New(office, nil)
		inv.AddLine(oiltype.Diesel, "", types.NewLitersFromFloat64(100), types.MustMoney("29.94"))
		require.NoError(t, inv.Validate(context.Background()))
	})

	t.Run("credit without customer", func(t *testing.T) {
		inv := New(office, nil)
		inv.IsCredit = true
		inv.AddLine(oiltype.Diesel, "", types.NewLitersFromFloat64(100), types.MustMoney("29.94"))
		assert.Error(t, inv.Validate(context.Background()))
	})

	t.Run("no lines", func(t *testing.T) {
		inv := New(office, nil)
		assert.Error(t, inv.Validate(context.Background()))
	})

	t.Run("bad bill type", func(t *testing.T) {
		inv := New(office, nil)
		inv.BillType = "QUOTE"
		inv.AddLine(oiltype.Diesel, "", types.NewLitersFromFloat64(100), types.MustMoney("29.94"))
		assert.Error(t, inv.Validate(context.Background()))
	})
}
