// Package supplier provides the Suppliers catalog: fuel wholesalers the
// station purchases from.
package supplier

import (
	"context"
	"regexp"

	"oilbook/internal/core/apperror"
	"oilbook/internal/core/entity"
	"oilbook/internal/core/id"
)

var taxIDRE = regexp.MustCompile(`^\d{13}$`)

// VATType describes how the supplier charges VAT on purchase invoices.
type VATType string

const (
	VATIncluded VATType = "INCLUDED"
	VATExcluded VATType = "EXCLUDED"
	VATExempt   VATType = "EXEMPT"
)

// Supplier represents a fuel wholesaler.
type Supplier struct {
	entity.Catalog

	// TaxID is the 13-digit Thai taxpayer identification number
	TaxID *string `db:"tax_id" json:"taxId,omitempty"`

	Address *string `db:"address" json:"address,omitempty"`
	Phone   *string `db:"phone" json:"phone,omitempty"`

	// VATType controls default VAT handling on purchases
	VATType VATType `db:"vat_type" json:"vatType"`

	// VATRate is the percentage applied when VATType is not EXEMPT
	VATRate float64 `db:"vat_rate" json:"vatRate"`
}

// New creates a Supplier with required fields.
func New(officeID id.ID, code, name string) *Supplier {
	return &Supplier{
		Catalog: entity.NewCatalog(officeID, code, name),
		VATType: VATExcluded,
		VATRate: 7,
	}
}

// Validate implements entity.Validatable.
func (s *Supplier) Validate(ctx context.Context) error {
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}

	switch s.VATType {
	case VATIncluded, VATExcluded, VATExempt:
	default:
		return apperror.NewValidation("invalid VAT type").
			WithDetail("field", "vatType").
			WithDetail("value", string(s.VATType))
	}

	if s.VATRate < 0 || s.VATRate > 100 {
		return apperror.NewValidation("VAT rate must be between 0 and 100").
			WithDetail("field", "vatRate")
	}

	if s.TaxID != nil && *s.TaxID != "" && !taxIDRE.MatchString(*s.TaxID) {
		return apperror.NewValidation("tax id must be 13 digits").
			WithDetail("field", "taxId")
	}

	return nil
}
