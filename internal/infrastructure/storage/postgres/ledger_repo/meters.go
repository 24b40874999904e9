// Package ledger_repo provides PostgreSQL implementations for the daily
// ledger repositories: meter readings, tank dips, adjustments and prices.
package ledger_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"oilbook/internal/core/id"
	"oilbook/internal/domain/ledger/meters"
	"oilbook/internal/infrastructure/storage/postgres"
)

const meterTable = "meter_readings"

// MeterRepo implements meters.Repository.
type MeterRepo struct {
	txm      *postgres.TxManager
	inserter *postgres.BatchInserter
	cols     []string
}

// NewMeterRepo creates a new meter reading repository.
func NewMeterRepo(txm *postgres.TxManager) *MeterRepo {
	return &MeterRepo{
		txm:      txm,
		inserter: postgres.NewBatchInserter(txm),
		cols:     postgres.ExtractDBColumns[meters.Reading](),
	}
}

func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// DeleteDay removes all rows for (office, date).
func (r *MeterRepo) DeleteDay(ctx context.Context, officeID id.ID, date time.Time) error {
	q := builder().
		Delete(meterTable).
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
// transaction in context; the service wraps the day replace in one.
func (r *MeterRepo) CreateBatch(ctx context.Context, rows []meters.Reading) error {
	if len(rows) == 0 {
		return nil
	}

	values := make([][]any, 0, len(rows))
	for _, row := range rows {
		values = append(values, []any{
			row.ID, row.OfficeID, row.Date,
			row.TankNumber, row.OilType,
			row.StartMeter, row.EndMeter, row.Liters,
			row.TruckID, row.Note, row.CreatedAt,
		})
	}

	columns := []string{
		"id", "office_id", "date",
		"tank_number", "oil_type",
		"start_meter", "end_meter", "liters",
		"truck_id", "note", "created_at",
	}

	if _, err := r.inserter.CopyFromSlice(ctx, meterTable, columns, values); err != nil {
		return fmt.Errorf("insert meter readings: %w", err)
	}

	return nil
}

// GetDay returns the day's rows ordered by tank number.
func (r *MeterRepo) GetDay(ctx context.Context, officeID id.ID, date time.Time) ([]meters.Reading, error) {
	q := builder().
		Select(r.cols...).
		From(meterTable).
		Where(squirrel.Eq{"office_id": officeID}).
		Where(squirrel.Eq{"date": date}).
		OrderBy("tank_number ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []meters.Reading
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("get day: %w", err)
	}

	return rows, nil
}

// LatestPerTank returns, per tank, the most recent row strictly before
// the date. DISTINCT ON keeps the newest row of each tank.
func (r *MeterRepo) LatestPerTank(ctx context.Context, officeID id.ID, before time.Time) (map[int]meters.Reading, error) {
	sql := fmt.Sprintf(`
		SELECT DISTINCT ON (tank_number) %s
		FROM %s
		WHERE office_id = $1 AND date < $2
		ORDER BY tank_number, date DESC`,
		columnList(r.cols), meterTable)

	var rows []meters.Reading
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, officeID, before); err != nil {
		return nil, fmt.Errorf("latest per tank: %w", err)
	}

	out := make(map[int]meters.Reading, len(rows))
	for _, row := range rows {
		out[row.TankNumber] = row
	}

	return out, nil
}

// ListRecent returns the latest rows, newest date first.
func (r *MeterRepo) ListRecent(ctx context.Context, officeID id.ID, limit int) ([]meters.Reading, error) {
	q := builder().
		Select(r.cols...).
		From(meterTable).
		Where(squirrel.Eq{"office_id": officeID}).
		OrderBy("date DESC", "tank_number ASC")

	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []meters.Reading
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list recent: %w", err)
	}

	return rows, nil
}
