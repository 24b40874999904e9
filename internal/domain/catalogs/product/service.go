package product

import (
	"context"
	"fmt"
	"time"

	"oilbook/internal/core/apperror"
	"oilbook/internal/core/id"
	"oilbook/internal/core/tx"
	"oilbook/internal/domain"
	"oilbook/internal/domain/oiltype"
	"oilbook/pkg/numerator"
)

// Service provides business logic for the Products catalog.
type Service struct {
	*domain.CatalogService[*Product]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a Product service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService[*Product](repo, txManager, "product")

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, p *Product) error {
	if p.Code == "" {
		code, err := s.numerator.Next(ctx, p.OfficeID, numerator.DefaultConfig("PRD"), time.Now())
		if err != nil {
			return fmt.Errorf("generate product code: %w", err)
		}
		p.Code = code
		return nil
	}

	exists, err := s.repo.ExistsByCode(ctx, p.OfficeID, p.Code)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("product", "code", p.Code)
	}
	return nil
}

// ListByOilType returns active products of one fuel grade.
func (s *Service) ListByOilType(ctx context.Context, officeID id.ID, ot oiltype.OilType) ([]*Product, error) {
	if !ot.IsValid() {
		return nil, apperror.NewValidation("invalid oil type").WithDetail("value", string(ot))
	}
	return s.repo.ListByOilType(ctx, officeID, ot)
}
