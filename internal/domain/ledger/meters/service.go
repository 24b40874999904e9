package meters

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

// Service provides the day-overwrite lifecycle for meter readings.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a meter reading service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// SaveDay replaces all readings of (office, date) with the given rows.
// Rows with endMeter <= 0 are treated as untouched pumps and dropped.
// The delete and insert run in one transaction, so a failed save never
// leaves the day half-written.
func (s *Service) SaveDay(ctx context.Context, officeID id.ID, date time.Time, rows []Reading) ([]Reading, error) {
	if id.IsNil(officeID) {
		return nil, apperror.NewValidation("office is required").WithDetail("field", "officeId")
	}
	if date.IsZero() {
		return nil, apperror.NewValidation("date is required").WithDetail("field", "date")
	}
	day := normalizeDate(date)

	kept := make([]Reading, 0, len(rows))
	for i := range rows {
		r := rows[i]
		if !r.EndMeter.IsPositive() {
			continue
		}
		r.OfficeID = officeID
		r.Date = day
		if id.IsNil(r.ID) {
			r.ID = id.New()
		}
		r.CreatedAt = time.Now().UTC()
		r.Normalize()
		if err := r.Validate(ctx); err != nil {
			return nil, err
		}
		kept = append(kept, r)
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.DeleteDay(ctx, officeID, day); err != nil {
			return fmt.Errorf("clear meter day: %w", err)
		}
		if len(kept) == 0 {
			return nil
		}
		if err := s.repo.CreateBatch(ctx, kept); err != nil {
			return fmt.Errorf("insert meter day: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "meter day saved", "date", day.Format("2006-01-02"), "rows", len(kept))
	return kept, nil
}

// GetDay returns the saved readings for (office, date).
func (s *Service) GetDay(ctx context.Context, officeID id.ID, date time.Time) ([]Reading, error) {
	if id.IsNil(officeID) {
		return nil, apperror.NewValidation("office is required").WithDetail("field", "officeId")
	}
	return s.repo.GetDay(ctx, officeID, normalizeDate(date))
}

// DayDefaults returns the rows to prefill the day's entry form.
// Saved rows win; otherwise each tank carries its latest prior endMeter
// forward as startMeter (zero for tanks with no history). Defaults are
// never persisted.
func (s *Service) DayDefaults(ctx context.Context, officeID id.ID, date time.Time) ([]Reading, bool, error) {
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

	defaults := DefaultTanks()
	for i := range defaults {
		defaults[i].OfficeID = officeID
		defaults[i].Date = day
		if last, ok := prior[defaults[i].TankNumber]; ok {
			defaults[i].StartMeter = last.EndMeter
			defaults[i].OilType = last.OilType
		}
	}
	// History may contain tanks outside the default plan.
	known := make(map[int]bool, len(defaults))
	for _, d := range defaults {
		known[d.TankNumber] = true
	}
	for tank, last := range prior {
		if known[tank] {
			continue
		}
		defaults = append(defaults, Reading{
			OfficeID:   officeID,
			Date:       day,
			TankNumber: tank,
			OilType:    last.OilType,
			StartMeter: last.EndMeter,
		})
	}
	sort.Slice(defaults, func(i, j int) bool { return defaults[i].TankNumber < defaults[j].TankNumber })

	return defaults, false, nil
}

// ListRecent returns readings of the latest days, newest first.
func (s *Service) ListRecent(ctx context.Context, officeID id.ID, limit int) ([]Reading, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.repo.ListRecent(ctx, officeID, limit)
}

func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
