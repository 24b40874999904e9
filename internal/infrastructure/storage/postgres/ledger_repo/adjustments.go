package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"oilbook/internal/core/id"
	"oilbook/internal/domain/ledger/adjustments"
	"oilbook/internal/infrastructure/storage/postgres"
)

const adjustmentTable = "stock_adjustments"

// AdjustmentRepo implements adjustments.Repository.
// Append-only: the table has no update or delete paths.
type AdjustmentRepo struct {
	txm  *postgres.TxManager
	cols []string
}

// NewAdjustmentRepo creates a new stock adjustment repository.
func NewAdjustmentRepo(txm *postgres.TxManager) *AdjustmentRepo {
	return &AdjustmentRepo{
		txm:  txm,
		cols: postgres.ExtractDBColumns[adjustments.Adjustment](),
	}
}

// Create inserts one adjustment row.
func (r *AdjustmentRepo) Create(ctx context.Context, a *adjustments.Adjustment) error {
	data := postgres.StructToMap(a)

	q := builder().
		Insert(adjustmentTable).
		SetMap(data)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert adjustment: %w", err)
	}

	return nil
}

// ListRecent returns the latest adjustments, newest first.
func (r *AdjustmentRepo) ListRecent(ctx context.Context, officeID id.ID, limit int) ([]adjustments.Adjustment, error) {
	q := builder().
		Select(r.cols...).
		From(adjustmentTable).
		Where(squirrel.Eq{"office_id": officeID}).
		OrderBy("date DESC", "created_at DESC")

	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []adjustments.Adjustment
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list recent: %w", err)
	}

	return rows, nil
}
