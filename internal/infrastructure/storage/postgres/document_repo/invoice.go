package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"oilbook/internal/core/apperror"
	"oilbook/internal/core/id"
	"oilbook/internal/domain/documents/invoice"
	"oilbook/internal/infrastructure/storage/postgres"
)

const (
	invoicesTable     = "invoices"
	invoiceLinesTable = "invoice_lines"
)

// InvoiceRepo implements invoice.Repository.
type InvoiceRepo struct {
	*BaseDocumentRepo[*invoice.Invoice]
}

// NewInvoiceRepo creates a new invoice repository.
func NewInvoiceRepo(txm *postgres.TxManager) *InvoiceRepo {
	return &InvoiceRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*invoice.Invoice](
			txm,
			invoicesTable,
			postgres.ExtractDBColumns[invoice.Invoice](),
			func() *invoice.Invoice { return &invoice.Invoice{} },
		),
	}
}

// Create inserts header and lines. Caller runs this in a transaction
// together with number allocation and debt posting.
func (r *InvoiceRepo) Create(ctx context.Context, inv *invoice.Invoice) error {
	if err := r.CreateHeader(ctx, inv); err != nil {
		return err
	}

	if len(inv.Lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(invoiceLinesTable).
		Columns(
			"line_id", "document_id", "line_no", "oil_type",
			"description", "liters", "unit_price", "amount",
		)

	for _, line := range inv.Lines {
		q = q.Values(
			line.LineID, inv.ID, line.LineNo, line.OilType,
			line.Description, line.Liters, line.UnitPrice, line.Amount,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert invoice lines: %w", err)
	}

	return nil
}

// GetByID returns the invoice with its lines and customer name.
func (r *InvoiceRepo) GetByID(ctx context.Context, docID id.ID) (*invoice.Invoice, error) {
	inv, err := r.GetHeader(ctx, docID)
	if err != nil {
		return nil, err
	}

	if err := r.loadCustomerNames(ctx, []*invoice.Invoice{inv}); err != nil {
		return nil, err
	}

	lines, err := r.getLines(ctx, docID)
	if err != nil {
		return nil, err
	}
	inv.Lines = lines

	return inv, nil
}

// List returns invoices newest first, customer names joined.
func (r *InvoiceRepo) List(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	q := r.Builder().
		Select(r.selectCols...).
		From(invoicesTable).
		Where(squirrel.Eq{"office_id": filter.OfficeID}).
		OrderBy("date DESC", "number DESC")

	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.From})
	}
	if filter.To != nil {
		q = q.Where(squirrel.Lt{"date": *filter.To})
	}
	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.IsCredit != nil {
		q = q.Where(squirrel.Eq{"is_credit": *filter.IsCredit})
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

	var items []*invoice.Invoice
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}

	if err := r.loadCustomerNames(ctx, items); err != nil {
		return nil, err
	}

	for _, inv := range items {
		lines, err := r.getLines(ctx, inv.ID)
		if err != nil {
			return nil, err
		}
		inv.Lines = lines
	}

	return items, nil
}

// MarkPaid settles a credit invoice.
func (r *InvoiceRepo) MarkPaid(ctx context.Context, docID id.ID) error {
	q := r.Builder().
		Update(invoicesTable).
		Set("is_paid", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": docID}).
		Where(squirrel.Eq{"is_paid": false})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("mark paid: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("invoice", docID.String())
	}

	return nil
}

func (r *InvoiceRepo) getLines(ctx context.Context, docID id.ID) ([]invoice.Line, error) {
	q := r.Builder().
		Select(
			"line_id", "line_no", "oil_type",
			"description", "liters", "unit_price", "amount",
		).
		From(invoiceLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	lines := make([]invoice.Line, 0)
	if err := pgxscan.Select(ctx, r.Querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// loadCustomerNames fills the denormalized CustomerName on each header.
// Cash sales have no customer and display the cash label.
func (r *InvoiceRepo) loadCustomerNames(ctx context.Context, items []*invoice.Invoice) error {
	ids := make([]id.ID, 0, len(items))
	for _, inv := range items {
		if inv.CustomerID != nil {
			ids = append(ids, *inv.CustomerID)
		}
	}

	names := make(map[id.ID]string, len(ids))
	if len(ids) > 0 {
		q := r.Builder().
			Select("id", "name").
			From("customers").
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
			return fmt.Errorf("load customer names: %w", err)
		}
		for _, row := range rows {
			names[row.ID] = row.Name
		}
	}

	for _, inv := range items {
		if inv.CustomerID == nil {
			inv.CustomerName = invoice.CashCustomerName
			continue
		}
		inv.CustomerName = names[*inv.CustomerID]
	}

	return nil
}
