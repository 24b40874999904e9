package adjustments

import (
	"context"
	"fmt"
	"time"

	"oilbook/internal/core/apperror"
	appctx "oilbook/internal/core/context"
	"oilbook/internal/core/id"
	"oilbook/internal/core/tx"
	"oilbook/pkg/logger"
)

// Service provides the append-only adjustment ledger.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates an adjustment service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Create appends one adjustment row. The author is taken from the
// request's user context.
func (s *Service) Create(ctx context.Context, a *Adjustment) error {
	a.Date = time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), 0, 0, 0, 0, time.UTC)
	if id.IsNil(a.ID) {
		a.ID = id.New()
	}
	a.CreatedAt = time.Now().UTC()
	if user := appctx.GetUser(ctx); user != nil {
		a.CreatedBy = user.Email
	}

	if err := a.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, a); err != nil {
			return fmt.Errorf("create adjustment: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "stock adjustment recorded",
		"oilType", string(a.OilType), "liters", a.Liters.String(), "reason", a.Reason)
	return nil
}

// ListRecent returns the latest adjustments, newest first.
func (s *Service) ListRecent(ctx context.Context, officeID id.ID, limit int) ([]Adjustment, error) {
	if id.IsNil(officeID) {
		return nil, apperror.NewValidation("office is required").WithDetail("field", "officeId")
	}
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListRecent(ctx, officeID, limit)
}
