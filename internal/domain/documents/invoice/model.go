// Package invoice provides the sales Invoice document: outgoing fuel plus
// revenue, on cash or credit terms.
package invoice

import (
	"context"

	"oilbook/internal/core/apperror"
	"oilbook/internal/core/entity"
	"oilbook/internal/core/id"
	"oilbook/internal/core/types"
	"oilbook/internal/domain/oiltype"
)

// DefaultVATRate is the Thai VAT percentage applied to sales.
const DefaultVATRate = 7

// BillType distinguishes the printed document kind.
type BillType string

const (
	BillTaxInvoice BillType = "TAX_INVOICE"
	BillReceipt    BillType = "RECEIPT"
	BillDelivery   BillType = "DELIVERY_NOTE"
)

// CashCustomerName labels invoices without a customer reference.
const CashCustomerName = "เงินสด"

// Invoice represents one sale. Create-only: a wrong invoice is voided by
// a credit note in the accounting books, never edited here.
type Invoice struct {
	entity.Document

	// CustomerID is nil for walk-in cash sales
	CustomerID *id.ID `db:"customer_id" json:"customerId,omitempty"`

	// CustomerName is denormalized for lists; "เงินสด" when no customer
	CustomerName string `db:"-" json:"customerName,omitempty"`

	BillType BillType `db:"bill_type" json:"billType"`

	// IsCredit marks a sale on credit terms (adds to customer debt)
	IsCredit bool `db:"is_credit" json:"isCredit"`

	// IsPaid tracks settlement of credit sales
	IsPaid bool `db:"is_paid" json:"isPaid"`

	// VATRate applied to the subtotal, percent
	VATRate float64 `db:"vat_rate" json:"vatRate"`

	// Totals, recalculated from lines with decimal arithmetic
	Subtotal  types.Money `db:"subtotal" json:"subtotal"`
	Discount  types.Money `db:"discount" json:"discount"`
	VATAmount types.Money `db:"vat_amount" json:"vatAmount"`
	Total     types.Money `db:"total" json:"total"`

	Lines []Line `db:"-" json:"lines"`
}

// Line is one sold fuel position.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	OilType     oiltype.OilType `db:"oil_type" json:"oilType"`
	Description string          `db:"description" json:"description,omitempty"`

	Liters    types.Liters `db:"liters" json:"liters"`
	UnitPrice types.Money  `db:"unit_price" json:"unitPrice"`
	Amount    types.Money  `db:"amount" json:"amount"`
}

// New creates an invoice for an office. customerID may be nil (cash sale).
func New(officeID id.ID, customerID *id.ID) *Invoice {
	return &Invoice{
		Document:   entity.NewDocument(officeID),
		CustomerID: customerID,
		BillType:   BillTaxInvoice,
		VATRate:    DefaultVATRate,
		Lines:      make([]Line, 0),
	}
}

// AddLine appends a sold position and recalculates totals.
func (inv *Invoice) AddLine(ot oiltype.OilType, description string, liters types.Liters, unitPrice types.Money) {
	amount := unitPrice.Mul(types.NewMoney(liters.Float64())).Round(2)

	inv.Lines = append(inv.Lines, Line{
		LineID:      id.New(),
		LineNo:      len(inv.Lines) + 1,
		OilType:     ot,
		Description: description,
		Liters:      liters,
		UnitPrice:   unitPrice,
		Amount:      amount,
	})
	inv.RecalculateTotals()
}

// RecalculateTotals rebuilds header totals from lines.
// vat = (subtotal - discount) * vatRate%, rounded to satang.
func (inv *Invoice) RecalculateTotals() {
	if inv.VATRate == 0 {
		inv.VATRate = DefaultVATRate
	}

	subtotal := types.ZeroMoney()
	for _, line := range inv.Lines {
		subtotal = subtotal.Add(line.Amount)
	}
	inv.Subtotal = subtotal

	base := subtotal.Sub(inv.Discount)
	inv.VATAmount = base.Mul(types.NewMoney(inv.VATRate)).Div(types.NewMoney(100)).Round(2)
	inv.Total = base.Add(inv.VATAmount)
}

// DisplayName returns the customer name or the cash-sale label.
func (inv *Invoice) DisplayName() string {
	if inv.CustomerName != "" {
		return inv.CustomerName
	}
	return CashCustomerName
}

// Validate implements entity.Validatable.
func (inv *Invoice) Validate(ctx context.Context) error {
	if err := inv.Document.Validate(ctx); err != nil {
		return err
	}

	switch inv.BillType {
	case BillTaxInvoice, BillReceipt, BillDelivery:
	default:
		return apperror.NewValidation("invalid bill type").
			WithDetail("field", "billType").
			WithDetail("value", string(inv.BillType))
	}

	if inv.IsCredit && inv.CustomerID == nil {
		return apperror.NewValidation("credit sale requires a customer").
			WithDetail("field", "customerId")
	}

	if inv.VATRate < 0 || inv.VATRate > 100 {
		return apperror.NewValidation("VAT rate must be between 0 and 100").
			WithDetail("field", "vatRate")
	}

	if inv.Discount.IsNegative() {
		return apperror.NewValidation("discount cannot be negative").
			WithDetail("field", "discount")
	}

	if len(inv.Lines) == 0 {
		return apperror.NewValidation("invoice must have at least one line").
			WithDetail("field", "lines")
	}

	for _, line := range inv.Lines {
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
