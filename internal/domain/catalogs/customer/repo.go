package customer

import (
	"context"

	"oilbook/internal/core/id"
	"oilbook/internal/core/types"
	"oilbook/internal/domain"
)

// Repository defines the interface for Customer persistence.
type Repository interface {
	domain.CatalogRepository[*Customer]

	// AddDebt adjusts the running debt balance (positive for new credit
	// sales, negative for payments received).
	AddDebt(ctx context.Context, id id.ID, delta types.Money) error

	// ListDebtors returns active customers with totalDebt > 0,
	// largest debt first.
	ListDebtors(ctx context.Context, officeID id.ID) ([]*Customer, error)
}
