package dips

import (
	"context"
	"fmt"
	"sort"
	"time"

	"oilbook/internal/core/apperror"
	"oilbook/internal/core/id"
	"oilbook/internal/core/tx"
	"oilbook/pkg/logger"
)

// Service provides the day-overwrite lifecycle for tank dips.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a tank dip service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// SaveDay replaces all dip records of (office, date) with the given rows.
// Rows with zero volume and no dip level are dropped as untouched tanks.
func (s *Service) SaveDay(ctx context.Context, officeID id.ID, date time.Time, rows []Record) ([]Record, error) {
	if id.IsNil(officeID) {
		return nil, apperror.NewValidation("office is required").WithDetail("field", "officeId")
	}
	if date.IsZero() {
		return nil, apperror.NewValidation("date is required").WithDetail("field", "date")
	}
	day := normalizeDate(date)

	kept := make([]Record, 0, len(rows))
	for i := range rows {
		r := rows[i]
		if r.Volume.IsZero() && r.DipLevel == nil {
			continue
		}
		r.OfficeID = officeID
		r.Date = day
		if id.IsNil(r.ID) {
			r.ID = id.New()
		}
		r.CreatedAt = time.Now().UTC()
		if err := r.Validate(ctx); err != nil {
			return nil, err
		}
		kept = append(kept, r)
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.DeleteDay(ctx, officeID, day); err != nil {
			return fmt.Errorf("clear dip day: %w", err)
		}
		if len(kept) == 0 {
			return nil
		}
		if err := s.repo.CreateBatch(ctx, kept); err != nil {
			return fmt.Errorf("insert dip day: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "dip day saved", "date", day.Format("2006-01-02"), "rows", len(kept))
	return kept, nil
}

// GetDay returns the saved records for (office, date).
func (s *Service) GetDay(ctx context.Context, officeID id.ID, date time.Time) ([]Record, error) {
	if id.IsNil(officeID) {
		return nil, apperror.NewValidation("office is required").WithDetail("field", "officeId")
	}
	return s.repo.GetDay(ctx, officeID, normalizeDate(date))
}

// DayDefaults returns rows to prefill the day's entry form. Saved rows
// win; otherwise each previously measured tank carries its last volume
// forward as a hint. Defaults are never persisted.
func (s *Service) DayDefaults(ctx context.Context, officeID id.ID, date time.Time) ([]Record, bool, error) {
	day := normalizeDate(date)

	saved, err := s.GetDay(ctx, officeID, day)
	if err != nil {
		return nil, false, err
	}
	if len(saved) > 0 {
		return saved, true, nil
	}

	prior, err := s.repo.LatestPerTank(ctx, officeID, day)
	if err != nil {
		return nil, false, err
	}

	defaults := make([]Record, 0, len(prior))
	for tank, last := range prior {
		defaults = append(defaults, Record{
			OfficeID:   officeID,
			Date:       day,
			TankNumber: tank,
			OilType:    last.OilType,
			Volume:     last.Volume,
		})
	}
	sort.Slice(defaults, func(i, j int) bool { return defaults[i].TankNumber < defaults[j].TankNumber })

	return defaults, false, nil
}

// ListRecent returns records of the latest days, newest first.
func (s *Service) ListRecent(ctx context.Context, officeID id.ID, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.repo.ListRecent(ctx, officeID, limit)
}

func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
