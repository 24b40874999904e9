// Package report_repo provides the PostgreSQL aggregation queries behind
// the reporting engine. Sums run in SQL; the engine composes them.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"oilbook/internal/core/id"
	"oilbook/internal/core/types"
	"oilbook/internal/domain/ledger/dips"
	"oilbook/internal/domain/ledger/meters"
	"oilbook/internal/domain/oiltype"
	"oilbook/internal/domain/reports"
	"oilbook/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// intervalCond appends half-open window conditions to a builder.
// From is inclusive, To exclusive; a nil bound is unbounded.
func intervalCond(q squirrel.SelectBuilder, col string, iv reports.Interval) squirrel.SelectBuilder {
	if iv.From != nil {
		q = q.Where(squirrel.GtOrEq{col: *iv.From})
	}
	if iv.To != nil {
		q = q.Where(squirrel.Lt{col: *iv.To})
	}
	return q
}

// sumLiters runs a COALESCE(SUM(...), 0) query and scans the scaled value.
func (r *ReportRepo) sumLiters(ctx context.Context, q squirrel.SelectBuilder, op string) (types.Liters, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var total int64
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return types.Liters(total), nil
}

// SumPurchaseLiters sums purchase line liters of one grade in the window.
func (r *ReportRepo) SumPurchaseLiters(ctx context.Context, officeID id.ID, ot oiltype.OilType, iv reports.Interval) (types.Liters, error) {
	q := r.builder.
		Select("COALESCE(SUM(l.liters), 0)").
		From("purchase_lines l").
		Join("purchases p ON p.id = l.document_id").
		Where(squirrel.Eq{"p.office_id": officeID}).
		Where(squirrel.Eq{"l.oil_type": ot})
	q = intervalCond(q, "p.date", iv)

	return r.sumLiters(ctx, q, "sum purchase liters")
}

// SumMeterLiters sums dispensed meter liters of one grade in the window.
func (r *ReportRepo) SumMeterLiters(ctx context.Context, officeID id.ID, ot oiltype.OilType, iv reports.Interval) (types.Liters, error) {
	q := r.builder.
		Select("COALESCE(SUM(liters), 0)").
		From("meter_readings").
		Where(squirrel.Eq{"office_id": officeID}).
		Where(squirrel.Eq{"oil_type": ot})
	q = intervalCond(q, "date", iv)

	return r.sumLiters(ctx, q, "sum meter liters")
}

// SumInvoiceLiters sums invoice line liters of one grade in the window.
func (r *ReportRepo) SumInvoiceLiters(ctx context.Context, officeID id.ID, ot oiltype.OilType, iv reports.Interval) (types.Liters, error) {
	q := r.builder.
		Select("COALESCE(SUM(l.liters), 0)").
		From("invoice_lines l").
		Join("invoices i ON i.id = l.document_id").
		Where(squirrel.Eq{"i.office_id": officeID}).
		Where(squirrel.Eq{"l.oil_type": ot})
	q = intervalCond(q, "i.date", iv)

	return r.sumLiters(ctx, q, "sum invoice liters")
}

// SumAdjustmentLiters sums signed adjustments of one grade in the window.
func (r *ReportRepo) SumAdjustmentLiters(ctx context.Context, officeID id.ID, ot oiltype.OilType, iv reports.Interval) (types.Liters, error) {
	q := r.builder.
		Select("COALESCE(SUM(liters), 0)").
		From("stock_adjustments").
		Where(squirrel.Eq{"office_id": officeID}).
		Where(squirrel.Eq{"oil_type": ot})
	q = intervalCond(q, "date", iv)

	return r.sumLiters(ctx, q, "sum adjustment liters")
}

// SumDipVolume sums the day's dip volumes of one grade.
func (r *ReportRepo) SumDipVolume(ctx context.Context, officeID id.ID, ot oiltype.OilType, date time.Time) (types.Liters, error) {
	q := r.builder.
		Select("COALESCE(SUM(volume), 0)").
		From("tank_dips").
		Where(squirrel.Eq{"office_id": officeID}).
		Where(squirrel.Eq{"oil_type": ot}).
		Where(squirrel.Eq{"date": date})

	return r.sumLiters(ctx, q, "sum dip volume")
}

// SalesByOilType sums invoice line liters and amounts of one grade.
func (r *ReportRepo) SalesByOilType(ctx context.Context, officeID id.ID, ot oiltype.OilType, iv reports.Interval) (types.Liters, types.Money, error) {
	q := r.builder.
		Select("COALESCE(SUM(l.liters), 0)", "COALESCE(SUM(l.amount), 0)").
		From("invoice_lines l").
		Join("invoices i ON i.id = l.document_id").
		Where(squirrel.Eq{"i.office_id": officeID}).
		Where(squirrel.Eq{"l.oil_type": ot})
	q = intervalCond(q, "i.date", iv)

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, types.ZeroMoney(), fmt.Errorf("build query: %w", err)
	}

	var liters int64
	var amount types.Money
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&liters, &amount); err != nil {
		return 0, types.ZeroMoney(), fmt.Errorf("sales by oil type: %w", err)
	}

	return types.Liters(liters), amount, nil
}

// MeterRowsByDay returns the day's meter readings ordered by tank.
func (r *ReportRepo) MeterRowsByDay(ctx context.Context, officeID id.ID, date time.Time) ([]meters.Reading, error) {
	q := r.builder.
		Select(postgres.ExtractDBColumns[meters.Reading]()...).
		From("meter_readings").
		Where(squirrel.Eq{"office_id": officeID}).
		Where(squirrel.Eq{"date": date}).
		OrderBy("tank_number ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []meters.Reading
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("meter rows by day: %w", err)
	}

	return rows, nil
}

// DipRowsByDay returns the day's dip records ordered by tank.
func (r *ReportRepo) DipRowsByDay(ctx context.Context, officeID id.ID, date time.Time) ([]dips.Record, error) {
	q := r.builder.
		Select(postgres.ExtractDBColumns[dips.Record]()...).
		From("tank_dips").
		Where(squirrel.Eq{"office_id": officeID}).
		Where(squirrel.Eq{"date": date}).
		OrderBy("tank_number ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []dips.Record
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("dip rows by day: %w", err)
	}

	return rows, nil
}

// CountMeterDays counts distinct days with meter rows in the window.
func (r *ReportRepo) CountMeterDays(ctx context.Context, officeID id.ID, iv reports.Interval) (int, error) {
	q := r.builder.
		Select("COUNT(DISTINCT date)").
		From("meter_readings").
		Where(squirrel.Eq{"office_id": officeID})
	q = intervalCond(q, "date", iv)

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var days int
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&days); err != nil {
		return 0, fmt.Errorf("count meter days: %w", err)
	}

	return days, nil
}

// InvoicesByRange returns invoice projections in the window, oldest first.
func (r *ReportRepo) InvoicesByRange(ctx context.Context, officeID id.ID, iv reports.Interval) ([]reports.InvoiceSummary, error) {
	q := r.builder.
		Select(
			"i.id", "i.number", "i.date",
			"i.total", "i.vat_amount", "i.is_credit", "i.is_paid",
			"COALESCE(c.name, 'เงินสด') AS customer_name",
		).
		From("invoices i").
		LeftJoin("customers c ON c.id = i.customer_id").
		Where(squirrel.Eq{"i.office_id": officeID}).
		OrderBy("i.date ASC", "i.number ASC")
	q = intervalCond(q, "i.date", iv)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []reports.InvoiceSummary
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("invoices by range: %w", err)
	}

	return rows, nil
}

// PurchasesByRange returns purchase projections in the window, oldest first.
func (r *ReportRepo) PurchasesByRange(ctx context.Context, officeID id.ID, iv reports.Interval) ([]reports.PurchaseSummary, error) {
	q := r.builder.
		Select(
			"p.id", "p.number", "p.date",
			"s.name AS supplier_name",
			"p.subtotal", "p.vat_amount", "p.total",
		).
		From("purchases p").
		Join("suppliers s ON s.id = p.supplier_id").
		Where(squirrel.Eq{"p.office_id": officeID}).
		OrderBy("p.date ASC", "p.number ASC")
	q = intervalCond(q, "p.date", iv)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []reports.PurchaseSummary
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("purchases by range: %w", err)
	}

	return rows, nil
}
