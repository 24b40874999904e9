// Package dips provides the daily tank dip (physical stick measurement)
// ledger. Same day-overwrite lifecycle as meter readings.
package dips

import (
	"context"
	"time"

	"oilbook/internal/core/apperror"
	"oilbook/internal/core/id"
	"oilbook/internal/core/types"
	"oilbook/internal/domain/oiltype"
)

// Record is one tank dip measurement for a (office, date, tank).
type Record struct {
	ID       id.ID     `db:"id" json:"id"`
	OfficeID id.ID     `db:"office_id" json:"officeId"`
	Date     time.Time `db:"date" json:"date"`

	TankNumber int             `db:"tank_number" json:"tankNumber"`
	OilType    oiltype.OilType `db:"oil_type" json:"oilType"`

	// DipLevel is the stick reading in centimeters, when recorded
	DipLevel *float64 `db:"dip_level" json:"dipLevel,omitempty"`

	// Volume is the measured fuel volume in the tank
	Volume types.Liters `db:"volume" json:"volume"`

	// WaterLevel is the water bottom reading in centimeters, when recorded
	WaterLevel *float64 `db:"water_level" json:"waterLevel,omitempty"`

	Note *string `db:"note" json:"note,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Validate checks row invariants.
func (r *Record) Validate(ctx context.Context) error {
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
	if r.Volume.IsNegative() {
		return apperror.NewValidation("volume cannot be negative").
			WithDetail("field", "volume").
			WithDetail("tank", r.TankNumber)
	}
	return nil
}
