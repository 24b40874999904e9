package reports

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportStockXLSX renders the monthly stock report as an xlsx workbook:
// a header block and one row per fuel grade, volumes in liters.
func ExportStockXLSX(report *StockReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Stock"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", "รายงานสต็อกน้ำมันประจำเดือน")
	f.SetCellValue(sheet, "A2", fmt.Sprintf("เดือน %s", report.Month))

	headers := []string{"ชนิดน้ำมัน", "ยอดยกมา (ลิตร)", "รับเข้า (ลิตร)", "จ่ายออก (ลิตร)", "ปรับปรุง (ลิตร)", "คงเหลือ (ลิตร)"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 4)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		f.SetCellValue(sheet, cell, h)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err == nil {
		f.SetCellStyle(sheet, "A4", "F4", headerStyle)
	}

	for i, row := range report.Rows {
		r := i + 5
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), row.Label)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), row.OpeningBalance.Float64())
		f.SetCellValue(sheet, fmt.Sprintf("C%d", r), row.Incoming.Float64())
		f.SetCellValue(sheet, fmt.Sprintf("D%d", r), row.Outgoing.Float64())
		f.SetCellValue(sheet, fmt.Sprintf("E%d", r), row.Adjustments.Float64())
		f.SetCellValue(sheet, fmt.Sprintf("F%d", r), row.Remaining.Float64())
	}

	f.SetColWidth(sheet, "A", "A", 24)
	f.SetColWidth(sheet, "B", "F", 16)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
