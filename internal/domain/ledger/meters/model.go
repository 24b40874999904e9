// Package meters provides the daily pump meter reading ledger.
// One row per tank per day; the day's rows are always replaced as a whole.
package meters

import (
	"context"
	"time"

	"oilbook/internal/core/apperror"
	"oilbook/internal/core/id"
	"oilbook/internal/core/types"
	"oilbook/internal/domain/oiltype"
)

// Reading is one pump meter row for a (office, date, tank).
type Reading struct {
	ID       id.ID     `db:"id" json:"id"`
	OfficeID id.ID     `db:"office_id" json:"officeId"`
	Date     time.Time `db:"date" json:"date"`

	TankNumber int             `db:"tank_number" json:"tankNumber"`
	OilType    oiltype.OilType `db:"oil_type" json:"oilType"`

	StartMeter types.Liters `db:"start_meter" json:"startMeter"`
	EndMeter   types.Liters `db:"end_meter" json:"endMeter"`

	// Liters is the dispensed volume, clamped at zero when the counter
	// was replaced mid-day and end < start.
	Liters types.Liters `db:"liters" json:"liters"`

	TruckID *string `db:"truck_id" json:"truckId,omitempty"`
	Note    *string `db:"note" json:"note,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Normalize recomputes Liters from the meters.
func (r *Reading) Normalize() {
	liters := r.EndMeter.Sub(r.StartMeter)
	if liters.IsNegative() {
		liters = 0
	}
	r.Liters = liters
}

// Validate checks row invariants.
func (r *Reading) Validate(ctx context.Context) error {
	if id.IsNil(r.OfficeID) {
		return apperror.NewValidation("office is required").
			WithDetail("field", "officeId")
	}
	if r.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	if r.TankNumber <= 0 {
		return apperror.NewValidation("tank number must be positive").
			WithDetail("field", "tankNumber").
			WithDetail("value", r.TankNumber)
	}
	if !r.OilType.IsValid() {
		return apperror.NewValidation("invalid oil type").
			WithDetail("field", "oilType").
			WithDetail("value", string(r.OilType))
	}
	if r.StartMeter.IsNegative() || r.EndMeter.IsNegative() {
		return apperror.NewValidation("meter values cannot be negative").
			WithDetail("field", "startMeter/endMeter").
			WithDetail("tank", r.TankNumber)
	}
	return nil
}

// tankLayout is the station's physical tank plan, used to synthesize
// day defaults when a tank has no meter history yet.
var tankLayout = []struct {
	from, to int
	oilType  oiltype.OilType
}{
	{1, 8, oiltype.Diesel},
	{9, 16, oiltype.GasoholE20},
	{17, 24, oiltype.Gasohol91},
	{25, 28, oiltype.Benzin},
}

// DefaultTanks returns the full tank plan in tank order.
func DefaultTanks() []Reading {
	var out []Reading
	for _, seg := range tankLayout {
		for tank := seg.from; tank <= seg.to; tank++ {
			out = append(out, Reading{TankNumber: tank, OilType: seg.oilType})
		}
	}
	return out
}
