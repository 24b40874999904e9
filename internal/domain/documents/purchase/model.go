// Package purchase provides the Purchase document: a fuel delivery from a
// supplier. Purchases are the only source of incoming stock.
package purchase

import (
	"context"

	"oilbook/internal/core/apperror"
	"oilbook/internal/core/entity"
	"oilbook/internal/core/id"
	"oilbook/internal/core/types"
	"oilbook/internal/domain/oiltype"
)

// DefaultVATRate is the Thai VAT percentage applied to purchases.
const DefaultVATRate = 7

// Purchase represents one supplier delivery. Create-only: a wrong
// purchase is corrected by a stock adjustment, never edited.
type Purchase struct {
	entity.Document

	SupplierID id.ID `db:"supplier_id" json:"supplierId"`

	// SupplierName is denormalized for lists and reports
	SupplierName string `db:"-" json:"supplierName,omitempty"`

	// Totals, recalculated from lines with decimal arithmetic
	Subtotal  types.Money `db:"subtotal" json:"subtotal"`
	VATAmount types.Money `db:"vat_amount" json:"vatAmount"`
	Total     types.Money `db:"total" json:"total"`

	Lines []Line `db:"-" json:"lines"`
}

// Line is one delivered fuel position.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	OilType     oiltype.OilType `db:"oil_type" json:"oilType"`
	Description string          `db:"description" json:"description,omitempty"`

	Liters    types.Liters `db:"liters" json:"liters"`
	UnitPrice types.Money  `db:"unit_price" json:"unitPrice"`
	Amount    types.Money  `db:"amount" json:"amount"`
}

// New creates a purchase document for an office and supplier.
func New(officeID, supplierID id.ID) *Purchase {
	return &Purchase{
		Document:   entity.NewDocument(officeID),
		SupplierID: supplierID,
		Lines:      make([]Line, 0),
	}
}

// AddLine appends a fuel position and recalculates totals.
// Amount = liters * unitPrice rounded to satang.
func (p *Purchase) AddLine(ot oiltype.OilType, description string, liters types.Liters, unitPrice types.Money) {
	amount := unitPrice.Mul(types.NewMoney(liters.Float64())).Round(2)

	p.Lines = append(p.Lines, Line{
		LineID:      id.New(),
		LineNo:      len(p.Lines) + 1,
		OilType:     ot,
		Description: description,
		Liters:      liters,
		UnitPrice:   unitPrice,
		Amount:      amount,
	})
	p.RecalculateTotals()
}

// RecalculateTotals rebuilds header totals from lines.
// vat = subtotal * 7%, rounded to satang.
func (p *Purchase) RecalculateTotals() {
	subtotal := types.ZeroMoney()
	for _, line := range p.Lines {
		subtotal = subtotal.Add(line.Amount)
	}
	p.Subtotal = subtotal
	p.VATAmount = subtotal.Mul(types.NewMoney(DefaultVATRate)).Div(types.NewMoney(100)).Round(2)
	p.Total = p.Subtotal.Add(p.VATAmount)
}

// Validate implements entity.Validatable.
func (p *Purchase) Validate(ctx context.Context) error {
	if err := p.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(p.SupplierID) {
		return apperror.NewValidation("supplier is required").
			WithDetail("field", "supplierId")
	}

	if len(p.Lines) == 0 {
		return apperror.NewValidation("purchase must have at least one line").
			WithDetail("field", "lines")
	}

	for _, line := range p.Lines {
		if !line.OilType.IsValid() {
			return apperror.NewValidation("invalid oil type").
				WithDetail("lineNo", line.LineNo).
				WithDetail("value", string(line.OilType))
		}
		if !line.Liters.IsPositive() {
			return apperror.NewValidation("line liters must be positive").
				WithDetail("lineNo", line.LineNo)
		}
		if line.UnitPrice.IsNegative() {
			return apperror.NewValidation("unit price cannot be negative").
				WithDetail("lineNo", line.LineNo)
		}
	}

	return nil
}
