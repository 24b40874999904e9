// Package reports implements the stock reconciliation engine: monthly
// stock turnover per fuel grade, the daily closing cross-section, and
// the supporting usage, sales, VAT and debtor views.
package reports

import (
	"time"

	"oilbook/internal/core/apperror"
	"oilbook/internal/core/id"
	"oilbook/internal/core/types"
	"oilbook/internal/domain/ledger/dips"
	"oilbook/internal/domain/ledger/meters"
	"oilbook/internal/domain/oiltype"
)

// Interval is a half-open time window [From, To). A nil bound means
// unbounded on that side.
type Interval struct {
	From *time.Time
	To   *time.Time
}

// Before returns the window of everything strictly before cutoff.
func Before(cutoff time.Time) Interval {
	return Interval{To: &cutoff}
}

// Month returns the window covering one calendar month.
func Month(year int, month time.Month) Interval {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	return Interval{From: &start, To: &end}
}

// Day returns the window covering one calendar day.
func Day(date time.Time) Interval {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)
	return Interval{From: &start, To: &end}
}

// ParseMonth validates "YYYY-MM" and returns its window.
func ParseMonth(s string) (Interval, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Interval{}, apperror.NewValidation("month must be in YYYY-MM format").
			WithDetail("value", s)
	}
	return Month(t.Year(), t.Month()), nil
}

// --- Monthly stock report ---

// StockRow is the reconciliation of one fuel grade over a period.
// remaining = opening + incoming - outgoing + adjustments. Negative
// remaining is surfaced as-is: it signals an unreconciled deficit.
type StockRow struct {
	OilType oiltype.OilType `json:"oilType"`
	Label   string          `json:"label"`

	OpeningBalance types.Liters `json:"openingBalance"`
	Incoming       types.Liters `json:"incoming"`
	Outgoing       types.Liters `json:"outgoing"`
	Adjustments    types.Liters `json:"adjustments"`
	Remaining      types.Liters `json:"remaining"`
}

// StockReport is the monthly turnover: one row per grade in the full
// catalog, all-zero rows included.
type StockReport struct {
	OfficeID    id.ID      `json:"officeId"`
	Month       string     `json:"month"`
	PeriodStart time.Time  `json:"periodStart"`
	PeriodEnd   time.Time  `json:"periodEnd"`
	Rows        []StockRow `json:"rows"`
	GeneratedAt time.Time  `json:"generatedAt"`
}

// --- Daily closing (ก.ข.ค.) ---

// StockDayRow is one Part B line: the day's stock movement of one grade.
// Outgoing here comes from invoice items, not meters; the two legitimately
// diverge and the divergence is the point of the report.
type StockDayRow struct {
	OilType oiltype.OilType `json:"oilType"`
	Label   string          `json:"label"`

	Incoming          types.Liters `json:"incoming"`
	Outgoing          types.Liters `json:"outgoing"`
	Adjustments       types.Liters `json:"adjustments"`
	PhysicalRemaining types.Liters `json:"physicalRemaining"`
}

// Financials is Part C: the day's money totals.
type Financials struct {
	CashSales        types.Money `json:"cashSales"`
	CreditSales      types.Money `json:"creditSales"`
	TotalSalesAmount types.Money `json:"totalSalesAmount"`
	InvoicesCount    int         `json:"invoicesCount"`
}

// InvoiceSummary is the audit projection of one invoice.
type InvoiceSummary struct {
	ID           id.ID       `db:"id" json:"id"`
	Number       string      `db:"number" json:"invoiceNo"`
	Date         time.Time   `db:"date" json:"date"`
	Total        types.Money `db:"total" json:"total"`
	VATAmount    types.Money `db:"vat_amount" json:"vatAmount"`
	IsCredit     bool        `db:"is_credit" json:"isCredit"`
	IsPaid       bool        `db:"is_paid" json:"isPaid"`
	CustomerName string      `db:"customer_name" json:"customerName"`
}

// PurchaseSummary is the audit projection of one purchase.
type PurchaseSummary struct {
	ID           id.ID       `db:"id" json:"id"`
	Number       string      `db:"number" json:"purchaseNo"`
	Date         time.Time   `db:"date" json:"date"`
	SupplierName string      `db:"supplier_name" json:"supplierName"`
	Subtotal     types.Money `db:"subtotal" json:"subtotal"`
	VATAmount    types.Money `db:"vat_amount" json:"vatAmount"`
	Total        types.Money `db:"total" json:"total"`
}

// DailyClosing is the full daily closing view for one (office, date).
// A day with no activity still produces the complete structure with
// zero values, never a partial or nil object.
type DailyClosing struct {
	OfficeID id.ID     `json:"officeId"`
	Date     time.Time `json:"date"`

	Meters     []meters.Reading `json:"partA_meters"`
	Stock      []StockDayRow    `json:"partB_stock"`
	Dips       []dips.Record    `json:"dips"`
	Financials Financials       `json:"partC_financials"`
	Invoices   []InvoiceSummary `json:"invoices"`

	GeneratedAt time.Time `json:"generatedAt"`
}

// --- Supplementary reports ---

// MeterUsageRow is the per-grade slice of the usage report.
type MeterUsageRow struct {
	OilType     oiltype.OilType `json:"oilType"`
	Label       string          `json:"label"`
	TotalLiters types.Liters    `json:"totalLiters"`
	AvgPerDay   types.Liters    `json:"avgPerDay"`
}

// MeterUsageReport summarizes pump throughput over a date range.
type MeterUsageReport struct {
	OfficeID    id.ID           `json:"officeId"`
	From        time.Time       `json:"from"`
	To          time.Time       `json:"to"`
	TotalLiters types.Liters    `json:"totalLiters"`
	DaysCount   int             `json:"daysCount"`
	Rows        []MeterUsageRow `json:"rows"`
}

// SalesRow is the per-grade slice of the sales report.
type SalesRow struct {
	OilType oiltype.OilType `json:"oilType"`
	Label   string          `json:"label"`
	Liters  types.Liters    `json:"liters"`
	Amount  types.Money     `json:"amount"`
}

// SalesReport summarizes invoicing over a date range.
type SalesReport struct {
	OfficeID    id.ID            `json:"officeId"`
	From        time.Time        `json:"from"`
	To          time.Time        `json:"to"`
	TotalBills  int              `json:"totalBills"`
	TotalSales  types.Money      `json:"totalSales"`
	TotalVAT    types.Money      `json:"totalVat"`
	TotalUnpaid types.Money      `json:"totalUnpaid"`
	Rows        []SalesRow       `json:"rows"`
	Invoices    []InvoiceSummary `json:"invoices"`
}

// VATReport is the monthly input/output VAT summary for filing.
type VATReport struct {
	OfficeID  id.ID             `json:"officeId"`
	Month     string            `json:"month"`
	OutputVAT types.Money       `json:"outputVat"`
	InputVAT  types.Money       `json:"inputVat"`
	NetVAT    types.Money       `json:"netVat"`
	Sales     []InvoiceSummary  `json:"sales"`
	Purchases []PurchaseSummary `json:"purchases"`
}
