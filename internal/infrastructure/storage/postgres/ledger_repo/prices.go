package ledger_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"oilbook/internal/core/id"
	"oilbook/internal/domain/ledger/prices"
	"oilbook/internal/infrastructure/storage/postgres"
)

const priceTable = "oil_prices"

// PriceRepo implements prices.Repository.
type PriceRepo struct {
	txm      *postgres.TxManager
	inserter *postgres.BatchInserter
	cols     []string
}

// NewPriceRepo creates a new oil price repository.
func NewPriceRepo(txm *postgres.TxManager) *PriceRepo {
	return &PriceRepo{
		txm:      txm,
		inserter: postgres.NewBatchInserter(txm),
		cols:     postgres.ExtractDBColumns[prices.Row](),
	}
}

// DeleteDay removes all rows for (office, date).
func (r *PriceRepo) DeleteDay(ctx context.Context, officeID id.ID, date time.Time) error {
	q := builder().
		Delete(priceTable).
		Where(squirrel.Eq{"office_id": officeID}).
		Where(squirrel.Eq{"date": date})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete day: %w", err)
	}

	return nil
}

// CreateBatch inserts rows using the COPY protocol. Requires a
// transaction in context.
func (r *PriceRepo) CreateBatch(ctx context.Context, rows []prices.Row) error {
	if len(rows) == 0 {
		return nil
	}

	values := make([][]any, 0, len(rows))
	for _, row := range rows {
		values = append(values, []any{
			row.ID, row.OfficeID, row.Date,
			row.OilType, row.SellPrice, row.CostPrice,
			row.CreatedAt,
		})
	}

	columns := []string{
		"id", "office_id", "date",
		"oil_type", "sell_price", "cost_price",
		"created_at",
	}

	if _, err := r.inserter.CopyFromSlice(ctx, priceTable, columns, values); err != nil {
		return fmt.Errorf("insert oil prices: %w", err)
	}

	return nil
}

// GetDay returns the day's rows in catalog order.
func (r *PriceRepo) GetDay(ctx context.Context, officeID id.ID, date time.Time) ([]prices.Row, error) {
	q := builder().
		Select(r.cols...).
		From(priceTable).
		Where(squirrel.Eq{"office_id": officeID}).
		Where(squirrel.Eq{"date": date}).
		OrderBy("oil_type ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []prices.Row
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("get day: %w", err)
	}

	return rows, nil
}

// ListRecent returns rows of the latest N posted days, newest first.
func (r *PriceRepo) ListRecent(ctx context.Context, officeID id.ID, days int) ([]prices.Row, error) {
	sql := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE office_id = $1 AND date IN (
			SELECT DISTINCT date FROM %s
			WHERE office_id = $1
			ORDER BY date DESC
			LIMIT $2
		)
		ORDER BY date DESC, oil_type ASC`,
		columnList(r.cols), priceTable, priceTable)

	var rows []prices.Row
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, officeID, days); err != nil {
		return nil, fmt.Errorf("list recent: %w", err)
	}

	return rows, nil
}
