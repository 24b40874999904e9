package adjustments

import (
	"context"

	"oilbook/internal/core/id"
)

// Repository defines persistence for stock adjustments.
// Append-only: no update or delete methods exist on purpose.
type Repository interface {
	Create(ctx context.Context, a *Adjustment) error
	ListRecent(ctx context.Context, officeID id.ID, limit int) ([]Adjustment, error)
}
