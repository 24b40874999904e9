package purchase

import (
	"context"
	"time"

	"oilbook/internal/core/id"
)

// ListFilter narrows purchase lists.
type ListFilter struct {
	OfficeID id.ID
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// Repository defines persistence for purchases.
type Repository interface {
	// Create inserts header and lines.
	Create(ctx context.Context, p *Purchase) error

	// GetByID returns the purchase with its lines and supplier name.
	GetByID(ctx context.Context, id id.ID) (*Purchase, error)

	// List returns purchases newest first, supplier names joined.
	List(ctx context.Context, filter ListFilter) ([]*Purchase, error)
}
