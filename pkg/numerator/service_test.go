package numerator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildKey(t *testing.T) {
	period := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"yearly reset", Config{Prefix: "INV", ResetPeriod: "year"}, "INV_2024"},
		{"monthly reset", Config{Prefix: "PO", ResetPeriod: "month"}, "PO_2024_03"},
		{"no reset", Config{Prefix: "ADJ", ResetPeriod: "never"}, "ADJ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildKey(tt.cfg, period))
		})
	}
}

func TestFormatNumber(t *testing.T) {
	period := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "INV-2024-00042", formatNumber(DefaultConfig("INV"), period, 42))
	assert.Equal(t, "PO-007", formatNumber(Config{Prefix: "PO", PadWidth: 3}, period, 7))
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, int64(42), ParseNumber("INV-2024-00042"))
	assert.Equal(t, int64(7), ParseNumber("PO-007"))
	assert.Equal(t, int64(-1), ParseNumber("garbage"))
	assert.Equal(t, int64(-1), ParseNumber("INV-"))
	assert.Equal(t, int64(-1), ParseNumber("INV-2024-abc"))
}
