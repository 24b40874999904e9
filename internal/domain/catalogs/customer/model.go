// Package customer provides the Customers catalog: parties that buy fuel
// on cash or credit terms.
package customer

import (
	"context"
	"regexp"

	"oilbook/internal/core/apperror"
	"oilbook/internal/core/entity"
	"oilbook/internal/core/id"
	"oilbook/internal/core/types"
)

var taxIDRE = regexp.MustCompile(`^\d{13}$`)

// Type distinguishes walk-in cash customers from credit accounts.
type Type string

const (
	TypeCash   Type = "CASH"
	TypeCredit Type = "CREDIT"
)

// Customer represents a buying party.
type Customer struct {
	entity.Catalog

	// Type controls whether invoices default to credit terms
	Type Type `db:"type" json:"type"`

	// TaxID is the 13-digit Thai taxpayer identification number
	TaxID *string `db:"tax_id" json:"taxId,omitempty"`

	Address *string `db:"address" json:"address,omitempty"`
	Phone   *string `db:"phone" json:"phone,omitempty"`

	// CreditLimit caps outstanding debt for credit customers (0 = no cap)
	CreditLimit types.Money `db:"credit_limit" json:"creditLimit"`

	// TotalDebt is the running unpaid balance, maintained by invoicing
	TotalDebt types.Money `db:"total_debt" json:"totalDebt"`
}

// New creates a Customer with required fields.
func New(officeID id.ID, code, name string, ctype Type) *Customer {
	return &Customer{
		Catalog: entity.NewCatalog(officeID, code, name),
		Type:    ctype,
	}
}

// Validate implements entity.Validatable.
func (c *Customer) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	switch c.Type {
	case TypeCash, TypeCredit:
	default:
		return apperror.NewValidation("invalid customer type").
			WithDetail("field", "type").
			WithDetail("value", string(c.Type))
	}

	if c.TaxID != nil && *c.TaxID != "" && !taxIDRE.MatchString(*c.TaxID) {
		return apperror.NewValidation("tax id must be 13 digits").
			WithDetail("field", "taxId")
	}

	if c.CreditLimit.IsNegative() {
		return apperror.NewValidation("credit limit cannot be negative").
			WithDetail("field", "creditLimit")
	}

	return nil
}

// IsCredit reports whether invoices to this customer default to credit.
func (c *Customer) IsCredit() bool {
	return c.Type == TypeCredit
}
