package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oilbook/internal/core/id"
	"oilbook/internal/core/types"
	"oilbook/internal/domain/ledger/dips"
	"oilbook/internal/domain/ledger/meters"
	"oilbook/internal/domain/oiltype"
)

// volumeRow is one movement fact in the in-memory store.
type volumeRow struct {
	officeID id.ID
	oilType  oiltype.OilType
	date     time.Time
	liters   types.Liters
	amount   types.Money
}

type fakeStore struct {
	purchases    []volumeRow
	meterLiters  []volumeRow
	invoiceItems []volumeRow
	adjustments  []volumeRow
	dipVolumes   []volumeRow

	meterRows []meters.Reading
	dipRows   []dips.Record
	invoices  []InvoiceSummary
	purchDocs []PurchaseSummary

	failWith error
}

func inWindow(iv Interval, t time.Time) bool {
	if iv.From != nil && t.Before(*iv.From) {
		return false
	}
	if iv.To != nil && !t.Before(*iv.To) {
		return false
	}
	return true
}

func (f *fakeStore) sum(rows []volumeRow, officeID id.ID, ot oiltype.OilType, iv Interval) (types.Liters, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	var total types.Liters
	for _, r := range rows {
		if r.officeID == officeID && r.oilType == ot && inWindow(iv, r.date) {
			total = total.Add(r.liters)
		}
	}
	return total, nil
}

func (f *fakeStore) SumPurchaseLiters(ctx context.Context, officeID id.ID, ot oiltype.OilType, iv Interval) (types.Liters, error) {
	return f.sum(f.purchases, officeID, ot, iv)
}

func (f *fakeStore) SumMeterLiters(ctx context.Context, officeID id.ID, ot oiltype.OilType, iv Interval) (types.Liters, error) {
	return f.sum(f.meterLiters, officeID, ot, iv)
}

func (f *fakeStore) SumInvoiceLiters(ctx context.Context, officeID id.ID, ot oiltype.OilType, iv Interval) (types.Liters, error) {
	return f.sum(f.invoiceItems, officeID, ot, iv)
}

func (f *fakeStore) SumAdjustmentLiters(ctx context.Context, officeID id.ID, ot oiltype.OilType, iv Interval) (types.Liters, error) {
	return f.sum(f.adjustments, officeID, ot, iv)
}

func (f *fakeStore) SumDipVolume(ctx context.Context, officeID id.ID, ot oiltype.OilType, date time.Time) (types.Liters, error) {
	return f.sum(f.dipVolumes, officeID, ot, Day(date))
}

func (f *fakeStore) SalesByOilType(ctx context.Context, officeID id.ID, ot oiltype.OilType, iv Interval) (types.Liters, types.Money, error) {
	liters, err := f.sum(f.invoiceItems, officeID, ot, iv)
	if err != nil {
		return 0, types.ZeroMoney(), err
	}
	amount := types.ZeroMoney()
	for _, r := range f.invoiceItems {
		if r.officeID == officeID && r.oilType == ot && inWindow(iv, r.date) {
			amount = amount.Add(r.amount)
		}
	}
	return liters, amount, nil
}

func (f *fakeStore) MeterRowsByDay(ctx context.Context, officeID id.ID, date time.Time) ([]meters.Reading, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []meters.Reading
	for _, r := range f.meterRows {
		if r.OfficeID == officeID && r.Date.Equal(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) DipRowsByDay(ctx context.Context, officeID id.ID, date time.Time) ([]dips.Record, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []dips.Record
	for _, r := range f.dipRows {
		if r.OfficeID == officeID && r.Date.Equal(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) CountMeterDays(ctx context.Context, officeID id.ID, iv Interval) (int, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	seen := map[time.Time]bool{}
	for _, r := range f.meterLiters {
		if r.officeID == officeID && inWindow(iv, r.date) {
			seen[r.date] = true
		}
	}
	return len(seen), nil
}

func (f *fakeStore) InvoicesByRange(ctx context.Context, officeID id.ID, iv Interval) ([]InvoiceSummary, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []InvoiceSummary
	for _, inv := range f.invoices {
		if inWindow(iv, inv.Date) {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeStore) PurchasesByRange(ctx context.Context, officeID id.ID, iv Interval) ([]PurchaseSummary, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []PurchaseSummary
	for _, p := range f.purchDocs {
		if inWindow(iv, p.Date) {
			out = append(out, p)
		}
	}
	return out, nil
}

func d(y int, m time.Month, dd int) time.Time {
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

func liters(v float64) types.Liters { return types.NewLitersFromFloat64(v) }

func TestStockMonth_EndToEndScenario(t *testing.T) {
	office := id.New()
	store := &fakeStore{
		purchases: []volumeRow{
			{office, oiltype.Diesel, d(2024, 1, 15), liters(7000), types.Money{}},
			{office, oiltype.Diesel, d(2024, 2, 20), liters(3000), types.Money{}},
			{office, oiltype.Diesel, d(2024, 3, 5), liters(2000), types.Money{}},
		},
		meterLiters: []volumeRow{
			{office, oiltype.Diesel, d(2024, 1, 31), liters(6000), types.Money{}},
			{office, oiltype.Diesel, d(2024, 3, 12), liters(1500), types.Money{}},
		},
		adjustments: []volumeRow{
			{office, oiltype.Diesel, d(2024, 3, 20), liters(-100), types.Money{}},
		},
	}
	svc := NewService(store)

	report, err := svc.StockMonth(context.Background(), office, "2024-03")
	require.NoError(t, err)

	var row StockRow
	for _, r := range report.Rows {
		if r.OilType == oiltype.Diesel {
			row = r
		}
	}
	assert.Equal(t, liters(4000), row.OpeningBalance, "10000 purchased - 6000 metered before March")
	assert.Equal(t, liters(2000), row.Incoming)
	assert.Equal(t, liters(1500), row.Outgoing)
	assert.Equal(t, liters(-100), row.Adjustments)
	assert.Equal(t, liters(4400), row.Remaining)
}

func TestStockMonth_CatalogCompleteness(t *testing.T) {
	svc := NewService(&fakeStore{})

	report, err := svc.StockMonth(context.Background(), id.New(), "2024-03")
	require.NoError(t, err)

	require.Len(t, report.Rows, len(oiltype.All()), "one row per catalog grade even with zero activity")
	for i, row := range report.Rows {
		assert.Equal(t, oiltype.All()[i], row.OilType, "rows follow catalog order")
		assert.Equal(t, types.Liters(0), row.OpeningBalance)
		assert.Equal(t, types.Liters(0), row.Remaining)
		assert.NotEmpty(t, row.Label)
	}
}

func TestOpeningBalance_IgnoresAdjustments(t *testing.T) {
	office := id.New()
	store := &fakeStore{
		purchases: []volumeRow{
			{office, oiltype.Diesel, d(2024, 1, 10), liters(1000), types.Money{}},
		},
		adjustments: []volumeRow{
			// Recorded long before the cutoff; must not leak into opening.
			{office, oiltype.Diesel, d(2024, 1, 20), liters(-500), types.Money{}},
		},
	}
	svc := NewService(store)

	opening, err := svc.OpeningBalance(context.Background(), office, oiltype.Diesel, d(2024, 3, 1))
	require.NoError(t, err)
	assert.Equal(t, liters(1000), opening, "adjustments never participate in opening balance")

	// The same adjustment does count inside its own month's remaining.
	report, err := svc.StockMonth(context.Background(), office, "2024-01")
	require.NoError(t, err)
	for _, row := range report.Rows {
		if row.OilType == oiltype.Diesel {
			assert.Equal(t, liters(500), row.Remaining)
		}
	}
}

func TestOpeningBalance_NegativeSurfaced(t *testing.T) {
	office := id.New()
	store := &fakeStore{
		meterLiters: []volumeRow{
			{office, oiltype.Benzin, d(2024, 2, 1), liters(300), types.Money{}},
		},
	}
	svc := NewService(store)

	opening, err := svc.OpeningBalance(context.Background(), office, oiltype.Benzin, d(2024, 3, 1))
	require.NoError(t, err)
	assert.Equal(t, liters(-300), opening, "deficit is reported, not clamped")
}

func TestStockMonth_InvalidMonth(t *testing.T) {
	svc := NewService(&fakeStore{})

	_, err := svc.StockMonth(context.Background(), id.New(), "03-2024")
	assert.Error(t, err)

	_, err = svc.StockMonth(context.Background(), id.Nil(), "2024-03")
	assert.Error(t, err)
}

func TestStockMonth_StoreFailureAbortsReport(t *testing.T) {
	store := &fakeStore{failWith: errors.New("connection reset")}
	svc := NewService(store)

	report, err := svc.StockMonth(context.Background(), id.New(), "2024-03")
	assert.Error(t, err)
	assert.Nil(t, report, "no partial report on store failure")
}

func TestDailyClosing_ZeroActivityDayIsComplete(t *testing.T) {
	svc := NewService(&fakeStore{})

	dc, err := svc.DailyClosing(context.Background(), id.New(), d(2024, 3, 10))
	require.NoError(t, err)

	assert.NotNil(t, dc.Meters)
	assert.Empty(t, dc.Meters)
	assert.NotNil(t, dc.Invoices)
	require.Len(t, dc.Stock, len(oiltype.DailyClosing()), "Part B always covers the fixed subset")
	for _, row := range dc.Stock {
		assert.Equal(t, types.Liters(0), row.Incoming)
		assert.Equal(t, types.Liters(0), row.PhysicalRemaining)
	}
	assert.Equal(t, 0, dc.Financials.InvoicesCount)
	assert.True(t, dc.Financials.TotalSalesAmount.IsZero())
}

func TestDailyClosing_CashCreditSplit(t *testing.T) {
	office := id.New()
	day10 := d(2024, 3, 10)
	store := &fakeStore{
		invoices: []InvoiceSummary{
			{ID: id.New(), Number: "INV-2024-00001", Date: day10, Total: types.MustMoney("535"), IsCredit: false, CustomerName: "เงินสด"},
			{ID: id.New(), Number: "INV-2024-00002", Date: day10, Total: types.MustMoney("1070"), IsCredit: true, CustomerName: "บจก. ขนส่งไทย"},
			{ID: id.New(), Number: "INV-2024-00003", Date: d(2024, 3, 11), Total: types.MustMoney("9999"), IsCredit: false},
		},
	}
	svc := NewService(store)

	dc, err := svc.DailyClosing(context.Background(), office, day10)
	require.NoError(t, err)

	assert.Equal(t, 2, dc.Financials.InvoicesCount, "next day's invoice excluded")
	assert.True(t, dc.Financials.CashSales.Equal(types.MustMoney("535")))
	assert.True(t, dc.Financials.CreditSales.Equal(types.MustMoney("1070")))
	assert.True(t, dc.Financials.TotalSalesAmount.Equal(types.MustMoney("1605")))
	require.Len(t, dc.Invoices, 2)
	assert.Equal(t, "เงินสด", dc.Invoices[0].CustomerName)
}

func TestDailyClosing_OutgoingFromInvoicesNotMeters(t *testing.T) {
	office := id.New()
	day10 := d(2024, 3, 10)
	store := &fakeStore{
		meterLiters: []volumeRow{
			{office, oiltype.Diesel, day10, liters(1200), types.Money{}},
		},
		invoiceItems: []volumeRow{
			{office, oiltype.Diesel, day10, liters(900), types.Money{}},
		},
		dipVolumes: []volumeRow{
			{office, oiltype.Diesel, day10, liters(4100), types.Money{}},
		},
	}
	svc := NewService(store)

	dc, err := svc.DailyClosing(context.Background(), office, day10)
	require.NoError(t, err)

	var row StockDayRow
	for _, r := range dc.Stock {
		if r.OilType == oiltype.Diesel {
			row = r
		}
	}
	assert.Equal(t, liters(900), row.Outgoing, "Part B outgoing is invoiced liters")
	assert.Equal(t, liters(4100), row.PhysicalRemaining)
}

func TestMeterUsage(t *testing.T) {
	office := id.New()
	store := &fakeStore{
		meterLiters: []volumeRow{
			{office, oiltype.Diesel, d(2024, 3, 10), liters(1000), types.Money{}},
			{office, oiltype.Diesel, d(2024, 3, 11), liters(3000), types.Money{}},
			{office, oiltype.Gasohol91, d(2024, 3, 11), liters(500), types.Money{}},
		},
	}
	svc := NewService(store)

	report, err := svc.MeterUsage(context.Background(), office, d(2024, 3, 1), d(2024, 3, 31))
	require.NoError(t, err)

	assert.Equal(t, liters(4500), report.TotalLiters)
	assert.Equal(t, 2, report.DaysCount)
	for _, row := range report.Rows {
		if row.OilType == oiltype.Diesel {
			assert.Equal(t, liters(4000), row.TotalLiters)
			assert.Equal(t, liters(2000), row.AvgPerDay)
		}
	}
}

func TestSales_TotalsAndUnpaid(t *testing.T) {
	office := id.New()
	store := &fakeStore{
		invoices: []InvoiceSummary{
			{Date: d(2024, 3, 10), Total: types.MustMoney("535"), VATAmount: types.MustMoney("35"), IsCredit: false},
			{Date: d(2024, 3, 12), Total: types.MustMoney("1070"), VATAmount: types.MustMoney("70"), IsCredit: true, IsPaid: false},
			{Date: d(2024, 3, 13), Total: types.MustMoney("214"), VATAmount: types.MustMoney("14"), IsCredit: true, IsPaid: true},
		},
	}
	svc := NewService(store)

	report, err := svc.Sales(context.Background(), office, d(2024, 3, 1), d(2024, 3, 31))
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalBills)
	assert.True(t, report.TotalSales.Equal(types.MustMoney("1819")))
	assert.True(t, report.TotalVAT.Equal(types.MustMoney("119")))
	assert.True(t, report.TotalUnpaid.Equal(types.MustMoney("1070")), "only unpaid credit bills count")
}

func TestVAT_NetIsOutputMinusInput(t *testing.T) {
	office := id.New()
	store := &fakeStore{
		invoices: []InvoiceSummary{
			{Date: d(2024, 3, 10), VATAmount: types.MustMoney("700")},
		},
		purchDocs: []PurchaseSummary{
			{Date: d(2024, 3, 5), VATAmount: types.MustMoney("450")},
		},
	}
	svc := NewService(store)

	report, err := svc.VAT(context.Background(), office, "2024-03")
	require.NoError(t, err)

	assert.True(t, report.OutputVAT.Equal(types.MustMoney("700")))
	assert.True(t, report.InputVAT.Equal(types.MustMoney("450")))
	assert.True(t, report.NetVAT.Equal(types.MustMoney("250")))
}
