package reports

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"oilbook/internal/core/id"
	"oilbook/internal/core/types"
	"oilbook/internal/domain/oiltype"
)

func TestExportStockXLSX(t *testing.T) {
	report := &StockReport{
		OfficeID: id.New(),
		Month:    "2024-03",
		Rows: []StockRow{
			{
				OilType:        oiltype.Diesel,
				Label:          oiltype.Diesel.Label(),
				OpeningBalance: types.NewLitersFromFloat64(4000),
				Incoming:       types.NewLitersFromFloat64(2000),
				Outgoing:       types.NewLitersFromFloat64(1500),
				Adjustments:    types.NewLitersFromFloat64(-100),
				Remaining:      types.NewLitersFromFloat64(4400),
			},
		},
		GeneratedAt: time.Now().UTC(),
	}

	data, err := ExportStockXLSX(report)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	label, err := f.GetCellValue("Stock", "A5")
	require.NoError(t, err)
	assert.Equal(t, "ดีเซล", label)

	remaining, err := f.GetCellValue("Stock", "F5")
	require.NoError(t, err)
	assert.Equal(t, "4400", remaining)
}
