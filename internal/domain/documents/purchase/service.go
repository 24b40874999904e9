package purchase

import (
	"context"
	"fmt"

	"oilbook/internal/core/apperror"
	appctx "oilbook/internal/core/context"
	"oilbook/internal/core/id"
	"oilbook/internal/core/tx"
	"oilbook/internal/domain"
	"oilbook/pkg/logger"
	"oilbook/pkg/numerator"
)

// Service provides purchase document operations.
type Service struct {
	repo      Repository
	txManager tx.Manager
	numerator *numerator.Service
	events    domain.EventPublisher
}

// NewService creates a purchase service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	return &Service{repo: repo, txManager: txManager, numerator: num}
}

// SetEventPublisher enables outbox notifications for created purchases.
func (s *Service) SetEventPublisher(p domain.EventPublisher) {
	s.events = p
}

// Create records a supplier delivery. Totals are recomputed server-side;
// a blank number gets the next "PO-..." number inside the same
// transaction, so failed creates leave no gap.
func (s *Service) Create(ctx context.Context, p *Purchase) error {
	p.RecalculateTotals()
	if err := p.Validate(ctx); err != nil {
		return err
	}
	if user := appctx.GetUser(ctx); user != nil {
		p.CreatedBy = user.Email
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if p.Number == "" {
			number, err := s.numerator.Next(ctx, p.OfficeID, numerator.DefaultConfig("PO"), p.Date)
			if err != nil {
				return fmt.Errorf("generate purchase number: %w", err)
			}
			p.Number = number
		}
		if err := s.repo.Create(ctx, p); err != nil {
			return fmt.Errorf("create purchase: %w", err)
		}
		if s.events != nil {
			if err := s.events.Publish(ctx, p.OfficeID, domain.EventPurchaseCreated, p); err != nil {
				return fmt.Errorf("publish purchase event: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "purchase recorded",
		"number", p.Number, "supplier", p.SupplierID.String(), "total", p.Total.String())
	return nil
}

// GetByID returns the purchase with lines.
func (s *Service) GetByID(ctx context.Context, purchaseID id.ID) (*Purchase, error) {
	p, err := s.repo.GetByID(ctx, purchaseID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("purchase", purchaseID.String())
		}
		return nil, err
	}
	return p, nil
}

// List returns purchases for the office, newest first.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Purchase, error) {
	if id.IsNil(filter.OfficeID) {
		return nil, apperror.NewValidation("office is required").WithDetail("field", "officeId")
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, filter)
}
