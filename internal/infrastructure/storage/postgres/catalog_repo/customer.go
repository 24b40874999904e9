package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"oilbook/internal/core/apperror"
	"oilbook/internal/core/id"
	"oilbook/internal/core/types"
	"oilbook/internal/domain/catalogs/customer"
	"oilbook/internal/infrastructure/storage/postgres"
)

const customerTable = "customers"

// CustomerRepo implements customer.Repository.
type CustomerRepo struct {
	*BaseCatalogRepo[*customer.Customer]
}

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo(txm *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*customer.Customer](
			txm,
			customerTable,
			postgres.ExtractDBColumns[customer.Customer](),
			func() *customer.Customer { return &customer.Customer{} },
		),
	}
}

// AddDebt adjusts the running debt balance atomically in SQL.
// Positive delta for new credit sales, negative for payments.
func (r *CustomerRepo) AddDebt(ctx context.Context, customerID id.ID, delta types.Money) error {
	q := r.Builder().
		Update(customerTable).
		Set("total_debt", squirrel.Expr("total_debt + ?", delta)).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": customerID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build add debt: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("add debt: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("customer", customerID.String())
	}

	return nil
}

// ListDebtors returns active customers with outstanding debt, largest first.
func (r *CustomerRepo) ListDebtors(ctx context.Context, officeID id.ID) ([]*customer.Customer, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[customer.Customer]()...).
		From(customerTable).
		Where(squirrel.Eq{"office_id": officeID}).
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.Gt{"total_debt": 0}).
		OrderBy("total_debt DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*customer.Customer
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list debtors: %w", err)
	}

	return items, nil
}
