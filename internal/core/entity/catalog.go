package entity

import (
	"context"

	"oilbook/internal/core/apperror"
	"oilbook/internal/core/id"
)

// Catalog is the base type for reference data
// (customers, suppliers, products, tanks).
type Catalog struct {
	BaseCatalog

	// Code is a human-readable identifier, unique within the office
	Code string `db:"code" json:"code"`

	// Name is the display name
	Name string `db:"name" json:"name"`
}

// NewCatalog creates a new Catalog scoped to an office.
func NewCatalog(officeID id.ID, code, name string) Catalog {
	return Catalog{
		BaseCatalog: NewBaseCatalog(officeID),
		Code:        code,
		Name:        name,
	}
}

// Validate implements Validatable.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if id.IsNil(c.OfficeID) {
		return apperror.NewValidation("office is required").
			WithDetail("field", "officeId")
	}
	return nil
}
