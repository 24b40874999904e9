package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"oilbook/internal/core/id"
	"oilbook/internal/domain/documents/purchase"
	"oilbook/internal/infrastructure/storage/postgres"
)

const (
	purchasesTable     = "purchases"
	purchaseLinesTable = "purchase_lines"
)

// PurchaseRepo implements purchase.Repository.
type PurchaseRepo struct {
	*BaseDocumentRepo[*purchase.Purchase]
}

// NewPurchaseRepo creates a new purchase repository.
func NewPurchaseRepo(txm *postgres.TxManager) *PurchaseRepo {
	return &PurchaseRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*purchase.Purchase](
			txm,
			purchasesTable,
			postgres.ExtractDBColumns[purchase.Purchase](),
			func() *purchase.Purchase { return &purchase.Purchase{} },
		),
	}
}

// Create inserts header and lines. Caller runs this in a transaction
// together with number allocation.
func (r *PurchaseRepo) Create(ctx context.Context, p *purchase.Purchase) error {
	if err := r.CreateHeader(ctx, p); err != nil {
		return err
	}

	if len(p.Lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(purchaseLinesTable).
		Columns(
			"line_id", "document_id", "line_no", "oil_type",
			"description", "liters", "unit_price", "amount",
		)

	for _, line := range p.Lines {
		q = q.Values(
			line.LineID, p.ID, line.LineNo, line.OilType,
			line.Description, line.Liters, line.UnitPrice, line.Amount,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert purchase lines: %w", err)
	}

	return nil
}

// GetByID returns the purchase with its lines and supplier name.
func (r *PurchaseRepo) GetByID(ctx context.Context, docID id.ID) (*purchase.Purchase, error) {
	p, err := r.GetHeader(ctx, docID)
	if err != nil {
		return nil, err
	}

	if err := r.loadSupplierNames(ctx, []*purchase.Purchase{p}); err != nil {
		return nil, err
	}

	lines, err := r.getLines(ctx, docID)
	if err != nil {
		return nil, err
	}
	p.Lines = lines

	return p, nil
}

// List returns purchases newest first, supplier names joined.
// Lines are loaded per document; lists are short (paged).
func (r *PurchaseRepo) List(ctx context.Context, filter purchase.ListFilter) ([]*purchase.Purchase, error) {
	q := r.Builder().
		Select(r.selectCols...).
		From(purchasesTable).
		Where(squirrel.Eq{"office_id": filter.OfficeID}).
		OrderBy("date DESC", "number DESC")

	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.From})
	}
	if filter.To != nil {
		q = q.Where(squirrel.Lt{"date": *filter.To})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*purchase.Purchase
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}

	if err := r.loadSupplierNames(ctx, items); err != nil {
		return nil, err
	}

	for _, p := range items {
		lines, err := r.getLines(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		p.Lines = lines
	}

	return items, nil
}

func (r *PurchaseRepo) getLines(ctx context.Context, docID id.ID) ([]purchase.Line, error) {
	q := r.Builder().
		Select(
			"line_id", "line_no", "oil_type",
			"description", "liters", "unit_price", "amount",
		).
		From(purchaseLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	lines := make([]purchase.Line, 0)
	if err := pgxscan.Select(ctx, r.Querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// loadSupplierNames fills the denormalized SupplierName on each header.
func (r *PurchaseRepo) loadSupplierNames(ctx context.Context, items []*purchase.Purchase) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]id.ID, 0, len(items))
	for _, p := range items {
		ids = append(ids, p.SupplierID)
	}

	q := r.Builder().
		Select("id", "name").
		From("suppliers").
		Where(squirrel.Eq{"id": ids})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	type row struct {
		ID   id.ID  `db:"id"`
		Name string `db:"name"`
	}
	var rows []row
	if err := pgxscan.Select(ctx, r.Querier(ctx), &rows, sql, args...); err != nil {
		return fmt.Errorf("load supplier names: %w", err)
	}

	names := make(map[id.ID]string, len(rows))
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	for _, p := range items {
		p.SupplierName = names[p.SupplierID]
	}

	return nil
}
