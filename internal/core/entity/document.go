package entity

import (
	"context"
	"time"

	"oilbook/internal/core/apperror"
	"oilbook/internal/core/id"
)

// Document is the base type for business transactions
// (purchases, sales invoices).
type Document struct {
	BaseDocument

	// Number is the document number shown to users (e.g. "INV-2024-0001")
	Number string `db:"number" json:"number"`

	// Date is the business date of the document (day precision, UTC)
	Date time.Time `db:"date" json:"date"`

	// Comment is an optional user note
	Comment string `db:"comment" json:"comment,omitempty"`
}

// NewDocument creates a new Document scoped to an office, dated today.
func NewDocument(officeID id.ID) Document {
	return Document{
		BaseDocument: NewBaseDocument(officeID),
		Date:         time.Now().UTC().Truncate(24 * time.Hour),
	}
}

// Validate implements Validatable.
func (d *Document) Validate(ctx context.Context) error {
	if id.IsNil(d.OfficeID) {
		return apperror.NewValidation("office is required").
			WithDetail("field", "officeId")
	}
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	return nil
}
