package supplier

import (
	"context"
	"fmt"
	"time"

	"oilbook/internal/core/apperror"
	"oilbook/internal/core/tx"
	"oilbook/internal/domain"
	"oilbook/pkg/numerator"
)

// Service provides business logic for the Suppliers catalog.
type Service struct {
	*domain.CatalogService[*Supplier]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a Supplier service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService[*Supplier](repo, txManager, "supplier")

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, sup *Supplier) error {
	if sup.Code == "" {
		code, err := s.numerator.Next(ctx, sup.OfficeID, numerator.DefaultConfig("SUP"), time.Now())
		if err != nil {
			return fmt.Errorf("generate supplier code: %w", err)
		}
		sup.Code = code
		return nil
	}

	exists, err := s.repo.ExistsByCode(ctx, sup.OfficeID, sup.Code)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("supplier", "code", sup.Code)
	}
	return nil
}
