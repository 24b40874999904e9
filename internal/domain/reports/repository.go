package reports

import (
	"context"
	"time"

	"oilbook/internal/core/id"
	"oilbook/internal/core/types"
	"oilbook/internal/domain/ledger/dips"
	"oilbook/internal/domain/ledger/meters"
	"oilbook/internal/domain/oiltype"
)

// Repository provides the primitive aggregation queries the engine
// composes. Every method is office-scoped; missing rows mean zero sums,
// a store failure fails the whole report.
type Repository interface {
	// SumPurchaseLiters sums purchase item liters of one grade in the window.
	SumPurchaseLiters(ctx context.Context, officeID id.ID, ot oiltype.OilType, iv Interval) (types.Liters, error)

	// SumMeterLiters sums dispensed meter liters of one grade in the window.
	SumMeterLiters(ctx context.Context, officeID id.ID, ot oiltype.OilType, iv Interval) (types.Liters, error)

	// SumInvoiceLiters sums invoice item liters of one grade in the window.
	SumInvoiceLiters(ctx context.Context, officeID id.ID, ot oiltype.OilType, iv Interval) (types.Liters, error)

	// SumAdjustmentLiters sums signed adjustments of one grade in the window.
	SumAdjustmentLiters(ctx context.Context, officeID id.ID, ot oiltype.OilType, iv Interval) (types.Liters, error)

	// SumDipVolume sums the day's dip volumes of one grade.
	SumDipVolume(ctx context.Context, officeID id.ID, ot oiltype.OilType, date time.Time) (types.Liters, error)

	// SalesByOilType sums invoice item liters and amounts of one grade.
	SalesByOilType(ctx context.Context, officeID id.ID, ot oiltype.OilType, iv Interval) (types.Liters, types.Money, error)

	// MeterRowsByDay returns the day's meter readings ordered by tank.
	MeterRowsByDay(ctx context.Context, officeID id.ID, date time.Time) ([]meters.Reading, error)

	// DipRowsByDay returns the day's dip records ordered by tank.
	DipRowsByDay(ctx context.Context, officeID id.ID, date time.Time) ([]dips.Record, error)

	// CountMeterDays counts distinct days with meter rows in the window.
	CountMeterDays(ctx context.Context, officeID id.ID, iv Interval) (int, error)

	// InvoicesByRange returns invoice projections in the window, oldest first.
	InvoicesByRange(ctx context.Context, officeID id.ID, iv Interval) ([]InvoiceSummary, error)

	// PurchasesByRange returns purchase projections in the window, oldest first.
	PurchasesByRange(ctx context.Context, officeID id.ID, iv Interval) ([]PurchaseSummary, error)
}
