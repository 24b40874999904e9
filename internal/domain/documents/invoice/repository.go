package invoice

import (
	"context"
	"time"

	"oilbook/internal/core/id"
)

// ListFilter narrows invoice lists.
type ListFilter struct {
	OfficeID   id.ID
	From       *time.Time
	To         *time.Time
	CustomerID *id.ID
	IsCredit   *bool
	Limit      int
	Offset     int
}

// Repository defines persistence for invoices.
type Repository interface {
	// Create inserts header and lines.
	Create(ctx context.Context, inv *Invoice) error

	// GetByID returns the invoice with its lines and customer name.
	GetByID(ctx context.Context, id id.ID) (*Invoice, error)

	// List returns invoices newest first, customer names joined.
	List(ctx context.Context, filter ListFilter) ([]*Invoice, error)

	// MarkPaid settles a credit invoice.
	MarkPaid(ctx context.Context, id id.ID) error
}
