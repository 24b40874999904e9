// Package adjustments provides the append-only stock adjustment ledger:
// signed corrections for spills, calibration and counting errors.
package adjustments

import (
	"context"
	"time"

	"oilbook/internal/core/apperror"
	"oilbook/internal/core/id"
	"oilbook/internal/core/types"
	"oilbook/internal/domain/oiltype"
)

// Adjustment is one signed stock correction. Rows are never updated or
// deleted; a wrong adjustment is compensated by another one.
type Adjustment struct {
	ID       id.ID     `db:"id" json:"id"`
	OfficeID id.ID     `db:"office_id" json:"officeId"`
	Date     time.Time `db:"date" json:"date"`

	OilType oiltype.OilType `db:"oil_type" json:"oilType"`

	// Liters is signed: positive adds stock, negative removes it
	Liters types.Liters `db:"liters" json:"liters"`

	Reason string `db:"reason" json:"reason"`

	CreatedBy string    `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Validate checks row invariants.
func (a *Adjustment) Validate(ctx context.Context) error {
	if id.IsNil(a.OfficeID) {
		return apperror.NewValidation("office is required").
			WithDetail("field", "officeId")
	}
	if a.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	if !a.OilType.IsValid() {
		return apperror.NewValidation("invalid oil type").
			WithDetail("field", "oilType").
			WithDetail("value", string(a.OilType))
	}
	if a.Liters.IsZero() {
		return apperror.NewValidation("adjustment liters cannot be zero").
			WithDetail("field", "liters")
	}
	if a.Reason == "" {
		return apperror.NewValidation("reason is required").
			WithDetail("field", "reason")
	}
	return nil
}
