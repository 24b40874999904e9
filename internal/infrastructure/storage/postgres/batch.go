package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// BatchInserter bulk-inserts rows over the COPY protocol. The ledger
// repositories use it to write a whole day of readings in one shot
// after the day's rows were deleted.
type BatchInserter struct {
	txManager *TxManager
}

// NewBatchInserter creates a new batch inserter.
func NewBatchInserter(txManager *TxManager) *BatchInserter {
	return &BatchInserter{txManager: txManager}
}

// CopyFromSlice inserts rows into table via COPY. Each row is []any in
// column order. Must run inside the transaction that cleared the day,
// so overwrite stays atomic.
//
// Example:
//
//	values := make([][]any, len(readings))
//	for i, r := range readings {
//	    values[i] = []any{r.ID, r.OfficeID, r.Date, r.TankNumber, r.Liters}
//	}
//	_, err := inserter.CopyFromSlice(ctx, "meter_readings", columns, values)
func (b *BatchInserter) CopyFromSlice(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	tx := b.txManager.GetTx(ctx)
	if tx == nil {
		return 0, fmt.Errorf("CopyFromSlice requires transaction context")
	}

	return tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
}
