package customer

import (
	"context"
	"fmt"
	"time"

	"oilbook/internal/core/apperror"
	"oilbook/internal/core/id"
	"oilbook/internal/core/tx"
	"oilbook/internal/core/types"
	"oilbook/internal/domain"
	"oilbook/pkg/numerator"
)

// Service provides business logic for the Customers catalog.
type Service struct {
	*domain.CatalogService[*Customer]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a Customer service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService[*Customer](repo, txManager, "customer")

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)

	return svc
}

// prepareForCreate generates a code and enforces code uniqueness.
func (s *Service) prepareForCreate(ctx context.Context, c *Customer) error {
	if c.Code == "" {
		code, err := s.numerator.Next(ctx, c.OfficeID, numerator.DefaultConfig("CUST"), time.Now())
		if err != nil {
			return fmt.Errorf("generate customer code: %w", err)
		}
		c.Code = code
		return nil
	}

	exists, err := s.repo.ExistsByCode(ctx, c.OfficeID, c.Code)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("customer", "code", c.Code)
	}
	return nil
}

// AddDebt adjusts the customer's running debt balance.
func (s *Service) AddDebt(ctx context.Context, customerID id.ID, delta types.Money) error {
	return s.repo.AddDebt(ctx, customerID, delta)
}

// ListDebtors returns active customers with outstanding debt, largest first.
func (s *Service) ListDebtors(ctx context.Context, officeID id.ID) ([]*Customer, error) {
	if id.IsNil(officeID) {
		return nil, apperror.NewValidation("office is required").WithDetail("field", "officeId")
	}
	return s.repo.ListDebtors(ctx, officeID)
}
