package invoice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oilbook/internal/core/apperror"
	"oilbook/internal/core/id"
	"oilbook/internal/core/types"
	"oilbook/internal/domain"
	"oilbook/internal/domain/catalogs/customer"
	"oilbook/internal/domain/oiltype"
)

type nopTxManager struct{}

func (nopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeInvoiceRepo struct {
	created []*Invoice
}

func (f *fakeInvoiceRepo) Create(ctx context.Context, inv *Invoice) error {
	f.created = append(f.created, inv)
	return nil
}

func (f *fakeInvoiceRepo) GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error) {
	return nil, apperror.NewNotFound("invoice", invoiceID.String())
}

func (f *fakeInvoiceRepo) List(ctx context.Context, filter ListFilter) ([]*Invoice, error) {
	return nil, nil
}

func (f *fakeInvoiceRepo) MarkPaid(ctx context.Context, invoiceID id.ID) error {
	return nil
}

// fakeCustomerRepo serves one customer by ID and counts debt changes.
type fakeCustomerRepo struct {
	cust      *customer.Customer
	debtAdded types.Money
}

func (f *fakeCustomerRepo) Create(ctx context.Context, c *customer.Customer) error { return nil }

func (f *fakeCustomerRepo) GetByID(ctx context.Context, customerID id.ID) (*customer.Customer, error) {
	if f.cust != nil && f.cust.ID == customerID {
		return f.cust, nil
	}
	return nil, apperror.NewNotFound("customer", customerID.String())
}

func (f *fakeCustomerRepo) GetByCode(ctx context.Context, officeID id.ID, code string) (*customer.Customer, error) {
	return nil, apperror.NewNotFound("customer", code)
}

func (f *fakeCustomerRepo) Update(ctx context.Context, c *customer.Customer) error { return nil }

func (f *fakeCustomerRepo) SetActive(ctx context.Context, customerID id.ID, active bool) error {
	return nil
}

func (f *fakeCustomerRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*customer.Customer], error) {
	return domain.ListResult[*customer.Customer]{}, nil
}

func (f *fakeCustomerRepo) Exists(ctx context.Context, customerID id.ID) (bool, error) {
	return f.cust != nil && f.cust.ID == customerID, nil
}

func (f *fakeCustomerRepo) ExistsByCode(ctx context.Context, officeID id.ID, code string) (bool, error) {
	return false, nil
}

func (f *fakeCustomerRepo) AddDebt(ctx context.Context, customerID id.ID, delta types.Money) error {
	f.debtAdded = f.debtAdded.Add(delta)
	return nil
}

func (f *fakeCustomerRepo) ListDebtors(ctx context.Context, officeID id.ID) ([]*customer.Customer, error) {
	return nil, nil
}

func newTestInvoice(officeID id.ID, customerID *id.ID) *Invoice {
	inv := New(officeID, customerID)
	inv.Number = "INV-2024-00001"
	inv.Date = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	inv.AddLine(oiltype.Diesel, "", types.NewLitersFromFloat64(100), types.NewMoney(30))
	return inv
}

func TestCreate_CustomerOfAnotherOfficeIsNotFound(t *testing.T) {
	office := id.New()
	otherOffice := id.New()
	cust := customer.New(otherOffice, "00305", "หจก.ทดสอบ", customer.TypeCredit)

	repo := &fakeInvoiceRepo{}
	customers := &fakeCustomerRepo{cust: cust}
	svc := NewService(repo, customers, nopTxManager{}, nil)

	err := svc.Create(context.Background(), newTestInvoice(office, &cust.ID))
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err), "existence of another office's customer must not leak")
	assert.Empty(t, repo.created)
}

func TestCreate_SameOfficeCustomerFillsName(t *testing.T) {
	office := id.New()
	cust := customer.New(office, "00102", "หจก.จรูญการยาง", customer.TypeCredit)

	repo := &fakeInvoiceRepo{}
	customers := &fakeCustomerRepo{cust: cust}
	svc := NewService(repo, customers, nopTxManager{}, nil)

	inv := newTestInvoice(office, &cust.ID)
	inv.IsCredit = true
	require.NoError(t, svc.Create(context.Background(), inv))

	require.Len(t, repo.created, 1)
	assert.Equal(t, "หจก.จรูญการยาง", repo.created[0].CustomerName)
	assert.True(t, customers.debtAdded.Equal(inv.Total), "credit sale adds the total to the customer's debt")
}
