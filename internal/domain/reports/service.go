package reports

import (
	"context"
	"fmt"
	"time"

	"oilbook/internal/core/apperror"
	"oilbook/internal/core/id"
	"oilbook/internal/core/types"
	"oilbook/internal/domain/ledger/dips"
	"oilbook/internal/domain/ledger/meters"
	"oilbook/internal/domain/oiltype"
	"oilbook/pkg/logger"
)

// Service composes the aggregation primitives into reports. All report
// shapes are built by iterating the oil type catalog, never the observed
// data, so every grade always gets its row.
type Service struct {
	repo Repository
}

// NewService creates the reports engine.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// OpeningBalance computes the book stock of one grade at a cutoff:
// all purchased liters minus all metered-out liters strictly before it.
// Adjustments intentionally do not participate here; they only act
// inside the period they were recorded in. Negative balances are
// returned as-is.
func (s *Service) OpeningBalance(ctx context.Context, officeID id.ID, ot oiltype.OilType, cutoff time.Time) (types.Liters, error) {
	window := Before(cutoff)

	purchased, err := s.repo.SumPurchaseLiters(ctx, officeID, ot, window)
	if err != nil {
		return 0, apperror.NewDataAccess(fmt.Errorf("opening balance purchases for %s: %w", ot, err))
	}

	metered, err := s.repo.SumMeterLiters(ctx, officeID, ot, window)
	if err != nil {
		return 0, apperror.NewDataAccess(fmt.Errorf("opening balance meters for %s: %w", ot, err))
	}

	return purchased.Sub(metered), nil
}

// StockMonth builds the monthly reconciliation report: one row per
// grade in the full catalog with opening, incoming, outgoing,
// adjustments and remaining. Grades without activity produce all-zero
// rows. Any store failure aborts the whole report.
func (s *Service) StockMonth(ctx context.Context, officeID id.ID, month string) (*StockReport, error) {
	if id.IsNil(officeID) {
		return nil, apperror.NewValidation("office is required").WithDetail("field", "officeId")
	}
	window, err := ParseMonth(month)
	if err != nil {
		return nil, err
	}

	report := &StockReport{
		OfficeID:    officeID,
		Month:       month,
		PeriodStart: *window.From,
		PeriodEnd:   *window.To,
		Rows:        make([]StockRow, 0, len(oiltype.All())),
		GeneratedAt: time.Now().UTC(),
	}

	for _, ot := range oiltype.All() {
		opening, err := s.OpeningBalance(ctx, officeID, ot, *window.From)
		if err != nil {
			return nil, err
		}

		incoming, err := s.repo.SumPurchaseLiters(ctx, officeID, ot, window)
		if err != nil {
			return nil, apperror.NewDataAccess(fmt.Errorf("incoming for %s: %w", ot, err))
		}

		outgoing, err := s.repo.SumMeterLiters(ctx, officeID, ot, window)
		if err != nil {
			return nil, apperror.NewDataAccess(fmt.Errorf("outgoing for %s: %w", ot, err))
		}

		adjustments, err := s.repo.SumAdjustmentLiters(ctx, officeID, ot, window)
		if err != nil {
			return nil, apperror.NewDataAccess(fmt.Errorf("adjustments for %s: %w", ot, err))
		}

		report.Rows = append(report.Rows, StockRow{
			OilType:        ot,
			Label:          ot.Label(),
			OpeningBalance: opening,
			Incoming:       incoming,
			Outgoing:       outgoing,
			Adjustments:    adjustments,
			Remaining:      opening.Add(incoming).Sub(outgoing).Add(adjustments),
		})
	}

	logger.Debug(ctx, "stock report built", "month", month, "rows", len(report.Rows))
	return report, nil
}

// DailyClosing builds the ก.ข.ค. cross-section for one day: meter rows
// (Part A), per-grade stock movement with dip-measured physical
// remainder (Part B), money totals (Part C) and the invoice audit list.
// Part B outgoing comes from invoice items while the monthly report
// meters fuel out at the pump; the divergence between the two is
// surfaced, never reconciled away.
func (s *Service) DailyClosing(ctx context.Context, officeID id.ID, date time.Time) (*DailyClosing, error) {
	if id.IsNil(officeID) {
		return nil, apperror.NewValidation("office is required").WithDetail("field", "officeId")
	}
	if date.IsZero() {
		return nil, apperror.NewValidation("date is required").WithDetail("field", "date")
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	window := Day(day)

	meterRows, err := s.repo.MeterRowsByDay(ctx, officeID, day)
	if err != nil {
		return nil, apperror.NewDataAccess(fmt.Errorf("daily closing meters: %w", err))
	}

	dipRows, err := s.repo.DipRowsByDay(ctx, officeID, day)
	if err != nil {
		return nil, apperror.NewDataAccess(fmt.Errorf("daily closing dips: %w", err))
	}

	stock := make([]StockDayRow, 0, len(oiltype.DailyClosing()))
	for _, ot := range oiltype.DailyClosing() {
		incoming, err := s.repo.SumPurchaseLiters(ctx, officeID, ot, window)
		if err != nil {
			return nil, apperror.NewDataAccess(fmt.Errorf("daily incoming for %s: %w", ot, err))
		}

		outgoing, err := s.repo.SumInvoiceLiters(ctx, officeID, ot, window)
		if err != nil {
			return nil, apperror.NewDataAccess(fmt.Errorf("daily outgoing for %s: %w", ot, err))
		}

		adjustments, err := s.repo.SumAdjustmentLiters(ctx, officeID, ot, window)
		if err != nil {
			return nil, apperror.NewDataAccess(fmt.Errorf("daily adjustments for %s: %w", ot, err))
		}

		physical, err := s.repo.SumDipVolume(ctx, officeID, ot, day)
		if err != nil {
			return nil, apperror.NewDataAccess(fmt.Errorf("daily dip volume for %s: %w", ot, err))
		}

		stock = append(stock, StockDayRow{
			OilType:           ot,
			Label:             ot.Label(),
			Incoming:          incoming,
			Outgoing:          outgoing,
			Adjustments:       adjustments,
			PhysicalRemaining: physical,
		})
	}

	invoices, err := s.repo.InvoicesByRange(ctx, officeID, window)
	if err != nil {
		return nil, apperror.NewDataAccess(fmt.Errorf("daily invoices: %w", err))
	}

	fin := Financials{
		CashSales:        types.ZeroMoney(),
		CreditSales:      types.ZeroMoney(),
		TotalSalesAmount: types.ZeroMoney(),
		InvoicesCount:    len(invoices),
	}
	for _, inv := range invoices {
		if inv.IsCredit {
			fin.CreditSales = fin.CreditSales.Add(inv.Total)
		} else {
			fin.CashSales = fin.CashSales.Add(inv.Total)
		}
		fin.TotalSalesAmount = fin.TotalSalesAmount.Add(inv.Total)
	}

	// Zero-activity day still yields complete, non-nil sections.
	if meterRows == nil {
		meterRows = []meters.Reading{}
	}
	if dipRows == nil {
		dipRows = []dips.Record{}
	}
	if invoices == nil {
		invoices = []InvoiceSummary{}
	}

	return &DailyClosing{
		OfficeID:    officeID,
		Date:        day,
		Meters:      meterRows,
		Stock:       stock,
		Dips:        dipRows,
		Financials:  fin,
		Invoices:    invoices,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// MeterUsage summarizes pump throughput over [from, to] inclusive.
func (s *Service) MeterUsage(ctx context.Context, officeID id.ID, from, to time.Time) (*MeterUsageReport, error) {
	if id.IsNil(officeID) {
		return nil, apperror.NewValidation("office is required").WithDetail("field", "officeId")
	}
	window, err := rangeWindow(from, to)
	if err != nil {
		return nil, err
	}

	days, err := s.repo.CountMeterDays(ctx, officeID, window)
	if err != nil {
		return nil, apperror.NewDataAccess(fmt.Errorf("meter usage days: %w", err))
	}

	report := &MeterUsageReport{
		OfficeID:  officeID,
		From:      *window.From,
		To:        window.To.AddDate(0, 0, -1),
		DaysCount: days,
		Rows:      make([]MeterUsageRow, 0, len(oiltype.All())),
	}

	for _, ot := range oiltype.All() {
		total, err := s.repo.SumMeterLiters(ctx, officeID, ot, window)
		if err != nil {
			return nil, apperror.NewDataAccess(fmt.Errorf("meter usage for %s: %w", ot, err))
		}

		var avg types.Liters
		if days > 0 {
			avg = types.Liters(int64(total) / int64(days))
		}
		report.Rows = append(report.Rows, MeterUsageRow{
			OilType:     ot,
			Label:       ot.Label(),
			TotalLiters: total,
			AvgPerDay:   avg,
		})
		report.TotalLiters = report.TotalLiters.Add(total)
	}

	return report, nil
}

// Sales summarizes invoicing over [from, to] inclusive.
func (s *Service) Sales(ctx context.Context, officeID id.ID, from, to time.Time) (*SalesReport, error) {
	if id.IsNil(officeID) {
		return nil, apperror.NewValidation("office is required").WithDetail("field", "officeId")
	}
	window, err := rangeWindow(from, to)
	if err != nil {
		return nil, err
	}

	invoices, err := s.repo.InvoicesByRange(ctx, officeID, window)
	if err != nil {
		return nil, apperror.NewDataAccess(fmt.Errorf("sales invoices: %w", err))
	}

	report := &SalesReport{
		OfficeID:    officeID,
		From:        *window.From,
		To:          window.To.AddDate(0, 0, -1),
		TotalBills:  len(invoices),
		TotalSales:  types.ZeroMoney(),
		TotalVAT:    types.ZeroMoney(),
		TotalUnpaid: types.ZeroMoney(),
		Rows:        make([]SalesRow, 0, len(oiltype.All())),
		Invoices:    invoices,
	}

	for _, inv := range invoices {
		report.TotalSales = report.TotalSales.Add(inv.Total)
		report.TotalVAT = report.TotalVAT.Add(inv.VATAmount)
		if inv.IsCredit && !inv.IsPaid {
			report.TotalUnpaid = report.TotalUnpaid.Add(inv.Total)
		}
	}

	for _, ot := range oiltype.All() {
		liters, amount, err := s.repo.SalesByOilType(ctx, officeID, ot, window)
		if err != nil {
			return nil, apperror.NewDataAccess(fmt.Errorf("sales for %s: %w", ot, err))
		}
		report.Rows = append(report.Rows, SalesRow{
			OilType: ot,
			Label:   ot.Label(),
			Liters:  liters,
			Amount:  amount,
		})
	}

	return report, nil
}

// VAT builds the monthly input/output VAT summary for filing.
func (s *Service) VAT(ctx context.Context, officeID id.ID, month string) (*VATReport, error) {
	if id.IsNil(officeID) {
		return nil, apperror.NewValidation("office is required").WithDetail("field", "officeId")
	}
	window, err := ParseMonth(month)
	if err != nil {
		return nil, err
	}

	sales, err := s.repo.InvoicesByRange(ctx, officeID, window)
	if err != nil {
		return nil, apperror.NewDataAccess(fmt.Errorf("vat sales: %w", err))
	}

	purchases, err := s.repo.PurchasesByRange(ctx, officeID, window)
	if err != nil {
		return nil, apperror.NewDataAccess(fmt.Errorf("vat purchases: %w", err))
	}

	report := &VATReport{
		OfficeID:  officeID,
		Month:     month,
		OutputVAT: types.ZeroMoney(),
		InputVAT:  types.ZeroMoney(),
		Sales:     sales,
		Purchases: purchases,
	}
	for _, inv := range sales {
		report.OutputVAT = report.OutputVAT.Add(inv.VATAmount)
	}
	for _, p := range purchases {
		report.InputVAT = report.InputVAT.Add(p.VATAmount)
	}
	report.NetVAT = report.OutputVAT.Sub(report.InputVAT)

	return report, nil
}

func rangeWindow(from, to time.Time) (Interval, error) {
	if from.IsZero() || to.IsZero() {
		return Interval{}, apperror.NewValidation("from and to dates are required")
	}
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	if !start.Before(end) {
		return Interval{}, apperror.NewValidation("from must not be after to")
	}
	return Interval{From: &start, To: &end}, nil
}
