package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiters_String(t *testing.T) {
	tests := []struct {
		name string
		in   Liters
		want string
	}{
		{"zero", 0, "0.000"},
		{"whole", NewLitersFromFloat64(1500), "1500.000"},
		{"fractional", NewLitersFromFloat64(12.345), "12.345"},
		{"negative", NewLitersFromFloat64(-40.5), "-40.500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.String())
		})
	}
}

func TestLiters_JSONRoundTrip(t *testing.T) {
	v := NewLitersFromFloat64(4400.25)

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, "4400.250", string(data))

	var back Liters
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, v, back)
}

func TestLiters_UnmarshalVariants(t *testing.T) {
	var l Liters

	require.NoError(t, json.Unmarshal([]byte(`"123.4"`), &l))
	assert.Equal(t, Liters(123_400), l)

	require.NoError(t, json.Unmarshal([]byte(`-7`), &l))
	assert.Equal(t, Liters(-7_000), l)

	require.NoError(t, json.Unmarshal([]byte(`null`), &l))
	assert.Equal(t, Liters(0), l)

	// Extra digits are truncated, not rounded.
	require.NoError(t, json.Unmarshal([]byte(`0.1239`), &l))
	assert.Equal(t, Liters(123), l)
}

func TestLiters_Arithmetic(t *testing.T) {
	opening := NewLitersFromFloat64(4000)
	incoming := NewLitersFromFloat64(2000)
	outgoing := NewLitersFromFloat64(1500)
	adjust := NewLitersFromFloat64(-100)

	remaining := opening.Add(incoming).Sub(outgoing).Add(adjust)
	assert.Equal(t, NewLitersFromFloat64(4400), remaining)
	assert.True(t, NewLitersFromFloat64(-1).IsNegative())
}
