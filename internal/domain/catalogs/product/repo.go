package product

import (
	"context"

	"oilbook/internal/core/id"
	"oilbook/internal/domain"
	"oilbook/internal/domain/oiltype"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// ListByOilType returns active products of one fuel grade.
	ListByOilType(ctx context.Context, officeID id.ID, ot oiltype.OilType) ([]*Product, error)
}
