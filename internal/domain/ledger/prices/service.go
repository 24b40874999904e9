package prices

import (
	"context"
	"fmt"
	"time"

	"oilbook/internal/core/apperror"
	"oilbook/internal/core/id"
	"oilbook/internal/core/tx"
	"oilbook/pkg/logger"
)

// Service provides the daily price board.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a price board service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// UpsertDay replaces the price board of (office, date). Posting prices
// for a day that already has rows overwrites them; the natural key is
// (office, date, oilType).
func (s *Service) UpsertDay(ctx context.Context, officeID id.ID, date time.Time, rows []Row) ([]Row, error) {
	if id.IsNil(officeID) {
		return nil, apperror.NewValidation("office is required").WithDetail("field", "officeId")
	}
	if date.IsZero() {
		return nil, apperror.NewValidation("date is required").WithDetail("field", "date")
	}
	day := normalizeDate(date)

	seen := make(map[string]bool, len(rows))
	kept := make([]Row, 0, len(rows))
	for i := range rows {
		r := rows[i]
		r.OfficeID = officeID
		r.Date = day
		if id.IsNil(r.ID) {
			r.ID = id.New()
		}
		r.CreatedAt = time.Now().UTC()
		if err := r.Validate(ctx); err != nil {
			return nil, err
		}
		if seen[string(r.OilType)] {
			return nil, apperror.NewValidation("duplicate oil type in price board").
				WithDetail("oilType", string(r.OilType))
		}
		seen[string(r.OilType)] = true
		kept = append(kept, r)
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.DeleteDay(ctx, officeID, day); err != nil {
			return fmt.Errorf("clear price day: %w", err)
		}
		if len(kept) == 0 {
			return nil
		}
		if err := s.repo.CreateBatch(ctx, kept); err != nil {
			return fmt.Errorf("insert price day: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "price board saved", "date", day.Format("2006-01-02"), "rows", len(kept))
	return kept, nil
}

// GetDay returns the price board for (office, date).
func (s *Service) GetDay(ctx context.Context, officeID id.ID, date time.Time) ([]Row, error) {
	if id.IsNil(officeID) {
		return nil, apperror.NewValidation("office is required").WithDetail("field", "officeId")
	}
	return s.repo.GetDay(ctx, officeID, normalizeDate(date))
}

// ListRecent returns boards of the latest days, newest first.
func (s *Service) ListRecent(ctx context.Context, officeID id.ID, days int) ([]Row, error) {
	if days <= 0 {
		days = 14
	}
	return s.repo.ListRecent(ctx, officeID, days)
}

func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
