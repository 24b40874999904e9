package office

import (
	"context"

	"oilbook/internal/core/id"
)

// Repository defines the interface for Office persistence.
// Offices are the tenancy root and not themselves office-scoped,
// so this does not reuse the generic catalog repository.
type Repository interface {
	Create(ctx context.Context, o *Office) error
	GetByID(ctx context.Context, id id.ID) (*Office, error)
	GetByCode(ctx context.Context, code string) (*Office, error)
	Update(ctx context.Context, o *Office) error
	SetActive(ctx context.Context, id id.ID, active bool) error
	List(ctx context.Context, includeInactive bool) ([]*Office, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
