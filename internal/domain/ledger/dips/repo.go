package dips

import (
	"context"
	"time"

	"oilbook/internal/core/id"
)

// Repository defines persistence for tank dip records.
type Repository interface {
	// DeleteDay removes all rows for (office, date).
	DeleteDay(ctx context.Context, officeID id.ID, date time.Time) error

	// CreateBatch inserts rows. Caller wraps DeleteDay+CreateBatch in one
	// transaction so a day is replaced atomically.
	CreateBatch(ctx context.Context, rows []Record) error

	// GetDay returns the day's rows ordered by tank number.
	GetDay(ctx context.Context, officeID id.ID, date time.Time) ([]Record, error)

	// LatestPerTank returns, per tank, the most recent row strictly
	// before the date.
	LatestPerTank(ctx context.Context, officeID id.ID, before time.Time) (map[int]Record, error)

	// ListRecent returns rows of the latest days, newest first.
	ListRecent(ctx context.Context, officeID id.ID, limit int) ([]Record, error)
}
