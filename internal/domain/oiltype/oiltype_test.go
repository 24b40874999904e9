package oiltype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll_Closed(t *testing.T) {
	types := All()
	assert.Len(t, types, 10)
	assert.Equal(t, Diesel, types[0])
	assert.Equal(t, Other, types[len(types)-1])

	seen := map[OilType]bool{}
	for _, ot := range types {
		assert.True(t, ot.IsValid())
		assert.False(t, seen[ot], "duplicate %s", ot)
		seen[ot] = true
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	a := All()
	a[0] = Other
	assert.Equal(t, Diesel, All()[0])
}

func TestDailyClosing_SubsetOfAll(t *testing.T) {
	full := map[OilType]bool{}
	for _, ot := range All() {
		full[ot] = true
	}
	for _, ot := range DailyClosing() {
		assert.True(t, full[ot], "%s not in catalog", ot)
	}
}

func TestDailyClosing_Membership(t *testing.T) {
	want := []OilType{Diesel, DieselB7, Gasohol95, Gasohol91, GasoholE20, Benzin}
	assert.Equal(t, want, DailyClosing(), "Part B grade set is fixed")
}

func TestParse(t *testing.T) {
	ot, err := Parse("GASOHOL_95")
	require.NoError(t, err)
	assert.Equal(t, Gasohol95, ot)

	_, err = Parse("KEROSENE")
	assert.Error(t, err)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "ดีเซล B7", DieselB7.Label())
	assert.Equal(t, "X", OilType("X").Label())
}
