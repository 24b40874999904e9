package purchase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oilbook/internal/core/id"
	"oilbook/internal/core/types"
	"oilbook/internal/domain/oiltype"
)

func TestAddLine_Totals(t *testing.T) {
	p := New(id.New(), id.New())

	p.AddLine(oiltype.Diesel, "ดีเซล B7", types.NewLitersFromFloat64(10000), types.MustMoney("29.94"))
	p.AddLine(oiltype.Gasohol95, "", types.NewLitersFromFloat64(5000), types.MustMoney("30.00"))

	// 10000*29.94 + 5000*30.00 = 299400 + 150000
	assert.True(t, p.Subtotal.Equal(types.MustMoney("449400")), "subtotal %s", p.Subtotal)
	// 449400 * 0.07
	assert.True(t, p.VATAmount.Equal(types.MustMoney("31458")), "vat %s", p.VATAmount)
	assert.True(t, p.Total.Equal(types.MustMoney("480858")), "total %s", p.Total)
}

func TestAddLine_FractionalRounding(t *testing.T) {
	p := New(id.New(), id.New())

	p.AddLine(oiltype.Diesel, "", types.NewLitersFromFloat64(33.333), types.MustMoney("29.94"))

	// 33.333 * 29.94 = 997.99002, rounded to satang
	assert.True(t, p.Lines[0].Amount.Equal(types.MustMoney("997.99")), "amount %s", p.Lines[0].Amount)
}

func TestValidate(t *testing.T) {
	office, supplier := id.New(), id.New()

	t.Run("valid", func(t *testing.T) {
		p := New(office, supplier)
		p.AddLine(oiltype.Diesel, "", types.NewLitersFromFloat64(100), types.MustMoney("29.94"))
		require.NoError(t, p.Validate(context.Background()))
	})

	t.Run("no lines", func(t *testing.T) {
		p := New(office, supplier)
		assert.Error(t, p.Validate(context.Background()))
	})

	t.Run("no supplier", func(t *testing.T) {
		p := New(office, id.Nil())
		p.AddLine(oiltype.Diesel, "", types.NewLitersFromFloat64(100), types.MustMoney("29.94"))
		assert.Error(t, p.Validate(context.Background()))
	})

	t.Run("zero liters line", func(t *testing.T) {
		p := New(office, supplier)
		p.AddLine(oiltype.Diesel, "", 0, types.MustMoney("29.94"))
		assert.Error(t, p.Validate(context.Background()))
	})
}
