// Package prices provides the daily oil price board: one set of sale and
// cost prices per (office, date), upserted as a whole.
package prices

import (
	"context"
	"time"

	"oilbook/internal/core/apperror"
	"oilbook/internal/core/id"
	"oilbook/internal/core/types"
	"oilbook/internal/domain/oiltype"
)

// Row is the posted price of one fuel grade on one day.
type Row struct {
	ID       id.ID     `db:"id" json:"id"`
	OfficeID id.ID     `db:"office_id" json:"officeId"`
	Date     time.Time `db:"date" json:"date"`

	OilType oiltype.OilType `db:"oil_type" json:"oilType"`

	// SellPrice is the pump price per liter
	SellPrice types.Money `db:"sell_price" json:"sellPrice"`

	// CostPrice is the wholesale cost per liter, when known
	CostPrice types.Money `db:"cost_price" json:"costPrice"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Validate checks row invariants.
func (r *Row) Validate(ctx context.Context) error {
	if id.IsNil(r.OfficeID) {
		return apperror.NewValidation("office is required").
			WithDetail("field", "officeId")
	}
	if r.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	if !r.OilType.IsValid() {
		return apperror.NewValidation("invalid oil type").
			WithDetail("field", "oilType").
			WithDetail("value", string(r.OilType))
	}
	if r.SellPrice.IsNegative() || r.CostPrice.IsNegative() {
		return apperror.NewValidation("prices cannot be negative").
			WithDetail("oilType", string(r.OilType))
	}
	return nil
}
