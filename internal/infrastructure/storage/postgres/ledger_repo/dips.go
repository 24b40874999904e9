package ledger_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"oilbook/internal/core/id"
	"oilbook/internal/domain/ledger/dips"
	"oilbook/internal/infrastructure/storage/postgres"
)

const dipTable = "tank_dips"

// DipRepo implements dips.Repository.
type DipRepo struct {
	txm      *postgres.TxManager
	inserter *postgres.BatchInserter
	cols     []string
}

// NewDipRepo creates a new tank dip repository.
func NewDipRepo(txm *postgres.TxManager) *DipRepo {
	return &DipRepo{
		txm:      txm,
		inserter: postgres.NewBatchInserter(txm),
		cols:     postgres.ExtractDBColumns[dips.Record](),
	}
}

// DeleteDay removes all rows for (office, date).
func (r *DipRepo) DeleteDay(ctx context.Context, officeID id.ID, date time.Time) error {
	q := builder().
		Delete(dipTable).
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
func (r *DipRepo) CreateBatch(ctx context.Context, rows []dips.Record) error {
	if len(rows) == 0 {
		return nil
	}

	values := make([][]any, 0, len(rows))
	for _, row := range rows {
		values = append(values, []any{
			row.ID, row.OfficeID, row.Date,
			row.TankNumber, row.OilType,
			row.DipLevel, row.Volume, row.WaterLevel,
			row.Note, row.CreatedAt,
		})
	}

	columns := []string{
		"id", "office_id", "date",
		"tank_number", "oil_type",
		"dip_level", "volume", "water_level",
		"note", "created_at",
	}

	if _, err := r.inserter.CopyFromSlice(ctx, dipTable, columns, values); err != nil {
		return fmt.Errorf("insert tank dips: %w", err)
	}

	return nil
}

// GetDay returns the day's rows ordered by tank number.
func (r *DipRepo) GetDay(ctx context.Context, officeID id.ID, date time.Time) ([]dips.Record, error) {
	q := builder().
		Select(r.cols...).
		From(dipTable).
		Where(squirrel.Eq{"office_id": officeID}).
		Where(squirrel.Eq{"date": date}).
		OrderBy("tank_number ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []dips.Record
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("get day: %w", err)
	}

	return rows, nil
}

// LatestPerTank returns, per tank, the most recent row strictly before
// the date.
func (r *DipRepo) LatestPerTank(ctx context.Context, officeID id.ID, before time.Time) (map[int]dips.Record, error) {
	sql := fmt.Sprintf(`
		SELECT DISTINCT ON (tank_number) %s
		FROM %s
		WHERE office_id = $1 AND date < $2
		ORDER BY tank_number, date DESC`,
		columnList(r.cols), dipTable)

	var rows []dips.Record
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, officeID, before); err != nil {
		return nil, fmt.Errorf("latest per tank: %w", err)
	}

	out := make(map[int]dips.Record, len(rows))
	for _, row := range rows {
		out[row.TankNumber] = row
	}

	return out, nil
}

// ListRecent returns the latest rows, newest date first.
func (r *DipRepo) ListRecent(ctx context.Context, officeID id.ID, limit int) ([]dips.Record, error) {
	q := builder().
		Select(r.cols...).
		From(dipTable).
		Where(squirrel.Eq{"office_id": officeID}).
		OrderBy("date DESC", "tank_number ASC")

	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []dips.Record
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list recent: %w", err)
	}

	return rows, nil
}
