package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"oilbook/internal/core/apperror"
	"oilbook/internal/core/id"
	"oilbook/internal/domain/catalogs/office"
	"oilbook/internal/infrastructure/storage/postgres"
)

const officeTable = "offices"

// OfficeRepo implements office.Repository.
// Offices are the tenancy root, so this repo does not embed
// BaseCatalogRepo: there is no office_id column to scope by.
type OfficeRepo struct {
	txm  *postgres.TxManager
	cols []string
}

// NewOfficeRepo creates a new office repository.
func NewOfficeRepo(txm *postgres.TxManager) *OfficeRepo {
	return &OfficeRepo{
		txm:  txm,
		cols: postgres.ExtractDBColumns[office.Office](),
	}
}

func (r *OfficeRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a new office.
func (r *OfficeRepo) Create(ctx context.Context, o *office.Office) error {
	data := postgres.StructToMap(o)

	q := r.builder().
		Insert(officeTable).
		SetMap(data)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert office: %w", err)
	}

	return nil
}

// GetByID retrieves office by ID.
func (r *OfficeRepo) GetByID(ctx context.Context, officeID id.ID) (*office.Office, error) {
	q := r.builder().
		Select(r.cols...).
		From(officeTable).
		Where(squirrel.Eq{"id": officeID}).
		Limit(1)

	return r.getOne(ctx, q, officeID.String())
}

// GetByCode retrieves office by code.
func (r *OfficeRepo) GetByCode(ctx context.Context, code string) (*office.Office, error) {
	q := r.builder().
		Select(r.cols...).
		From(officeTable).
		Where(squirrel.Eq{"code": code}).
		Limit(1)

	return r.getOne(ctx, q, code)
}

func (r *OfficeRepo) getOne(ctx context.Context, q squirrel.SelectBuilder, key string) (*office.Office, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var o office.Office
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &o, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("office", key)
		}
		return nil, fmt.Errorf("get office: %w", err)
	}

	return &o, nil
}

// Update modifies an existing office with optimistic locking.
func (r *OfficeRepo) Update(ctx context.Context, o *office.Office) error {
	data := postgres.StructToMap(o)
	version, _ := data["version"].(int)
	delete(data, "id")
	delete(data, "version")

	q := r.builder().
		Update(officeTable).
		SetMap(data).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": o.ID}).
		Where(squirrel.Eq{"version": version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update office: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("office", o.ID)
	}

	return nil
}

// SetActive activates or deactivates an office.
func (r *OfficeRepo) SetActive(ctx context.Context, officeID id.ID, active bool) error {
	q := r.builder().
		Update(officeTable).
		Set("active", active).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": officeID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build set active: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("execute set active: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("office", officeID.String())
	}

	return nil
}

// List returns offices ordered by code.
func (r *OfficeRepo) List(ctx context.Context, includeInactive bool) ([]*office.Office, error) {
	q := r.builder().
		Select(r.cols...).
		From(officeTable).
		OrderBy("code ASC")

	if !includeInactive {
		q = q.Where(squirrel.Eq{"active": true})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*office.Office
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list offices: %w", err)
	}

	return items, nil
}

// ExistsByCode checks if an office with the given code exists.
func (r *OfficeRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	q := r.builder().
		Select("1").
		From(officeTable).
		Where(squirrel.Eq{"code": code}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists int
	err = r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&exists)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists by code: %w", err)
	}

	return true, nil
}
