package prices

import (
	"context"
	"time"

	"oilbook/internal/core/id"
)

// Repository defines persistence for the daily price board.
type Repository interface {
	// DeleteDay removes all rows for (office, date).
	DeleteDay(ctx context.Context, officeID id.ID, date time.Time) error

	// CreateBatch inserts rows. Caller wraps DeleteDay+CreateBatch in one
	// transaction; together they form the day upsert.
	CreateBatch(ctx context.Context, rows []Row) error

	// GetDay returns the day's rows in catalog order.
	GetDay(ctx context.Context, officeID id.ID, date time.Time) ([]Row, error)

	// ListRecent returns rows of the latest days, newest first.
	ListRecent(ctx context.Context, officeID id.ID, days int) ([]Row, error)
}
