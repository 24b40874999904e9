package meters

import (
	"context"
	"time"

	"oilbook/internal/core/id"
)

// Repository defines persistence for meter readings.
type Repository interface {
	// DeleteDay removes all rows for (office, date).
	DeleteDay(ctx context.Context, officeID id.ID, date time.Time) error

	// CreateBatch inserts rows. Caller wraps DeleteDay+CreateBatch in one
	// transaction so a day is replaced atomically.
	CreateBatch(ctx context.Context, rows []Reading) error

	// GetDay returns the day's rows ordered by tank number.
	GetDay(ctx context.Context, officeID id.ID, date time.Time) ([]Reading, error)

	// LatestPerTank returns, per tank, the most recent row strictly
	// before the date. Used to carry meters forward into day defaults.
	LatestPerTank(ctx context.Context, officeID id.ID, before time.Time) (map[int]Reading, error)

	// ListRecent returns rows of the latest days, newest first.
	ListRecent(ctx context.Context, officeID id.ID, limit int) ([]Reading, error)
}
