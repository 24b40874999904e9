package dto

import (
	"oilbook/internal/core/id"
	"oilbook/internal/core/types"
	"oilbook/internal/domain/documents/invoice"
	"oilbook/internal/domain/documents/purchase"
	"oilbook/internal/domain/oiltype"
)

// DocumentLineRequest is one fuel position of a purchase or invoice.
type DocumentLineRequest struct {
	OilType     string       `json:"oilType" binding:"required"`
	Description string       `json:"description"`
	Liters      types.Liters `json:"liters" binding:"required"`
	UnitPrice   float64      `json:"unitPrice" binding:"required"`
}

// --- Purchases ---

// CreatePurchaseRequest records one supplier delivery.
type CreatePurchaseRequest struct {
	SupplierID string                `json:"supplierId" binding:"required,uuid"`
	Number     string                `json:"number"`
	Date       DateOnly              `json:"date" binding:"required"`
	Comment    string                `json:"comment"`
	Lines      []DocumentLineRequest `json:"lines" binding:"required,min=1"`
}

// ToEntity builds the purchase with recalculated totals.
func (r CreatePurchaseRequest) ToEntity(officeID id.ID) (*purchase.Purchase, error) {
	supplierID, err := id.Parse(r.SupplierID)
	if err != nil {
		return nil, err
	}

	p := purchase.New(officeID, supplierID)
	p.Number = r.Number
	p.Date = r.Date.Time
	p.Comment = r.Comment
	for _, line := range r.Lines {
		p.AddLine(oiltype.OilType(line.OilType), line.Description, line.Liters, types.NewMoney(line.UnitPrice))
	}
	return p, nil
}

// --- Invoices ---

// CreateInvoiceRequest records one sale. CustomerID is omitted for
// walk-in cash sales.
type CreateInvoiceRequest struct {
	CustomerID *string               `json:"customerId"`
	Number     string                `json:"number"`
	Date       DateOnly              `json:"date" binding:"required"`
	BillType   string                `json:"billType"`
	IsCredit   bool                  `json:"isCredit"`
	VATRate    *float64              `json:"vatRate"`
	Discount   *float64              `json:"discount"`
	Comment    string                `json:"comment"`
	Lines      []DocumentLineRequest `json:"lines" binding:"required,min=1"`
}

// ToEntity builds the invoice with recalculated totals.
func (r CreateInvoiceRequest) ToEntity(officeID id.ID) (*invoice.Invoice, error) {
	var customerID *id.ID
	if r.CustomerID != nil && *r.CustomerID != "" {
		parsed, err := id.Parse(*r.CustomerID)
		if err != nil {
			return nil, err
		}
		customerID = &parsed
	}

	inv := invoice.New(officeID, customerID)
	inv.Number = r.Number
	inv.Date = r.Date.Time
	inv.Comment = r.Comment
	inv.IsCredit = r.IsCredit
	if r.BillType != "" {
		inv.BillType = invoice.BillType(r.BillType)
	}
	if r.VATRate != nil {
		inv.VATRate = *r.VATRate
	}
	if r.Discount != nil {
		inv.Discount = types.NewMoney(*r.Discount)
	}
	for _, line := range r.Lines {
		inv.AddLine(oiltype.OilType(line.OilType), line.Description, line.Liters, types.NewMoney(line.UnitPrice))
	}
	return inv, nil
}
