package invoice

import (
	"context"
	"fmt"

	"oilbook/internal/core/apperror"
	appctx "oilbook/internal/core/context"
	"oilbook/internal/core/id"
	"oilbook/internal/core/tx"
	"oilbook/internal/core/types"
	"oilbook/internal/domain"
	"oilbook/internal/domain/catalogs/customer"
	"oilbook/pkg/logger"
	"oilbook/pkg/numerator"
)

// Service provides sales invoice operations.
type Service struct {
	repo      Repository
	customers customer.Repository
	txManager tx.Manager
	numerator *numerator.Service
	events    domain.EventPublisher
}

// NewService creates an invoice service.
func NewService(repo Repository, customers customer.Repository, txManager tx.Manager, num *numerator.Service) *Service {
	return &Service{repo: repo, customers: customers, txManager: txManager, numerator: num}
}

// SetEventPublisher enables outbox notifications for created invoices.
func (s *Service) SetEventPublisher(p domain.EventPublisher) {
	s.events = p
}

// Create records a sale. Totals are recomputed server-side. A credit
// sale adds the invoice total to the customer's running debt in the
// same transaction.
func (s *Service) Create(ctx context.Context, inv *Invoice) error {
	inv.RecalculateTotals()
	if err := inv.Validate(ctx); err != nil {
		return err
	}
	if user := appctx.GetUser(ctx); user != nil {
		inv.CreatedBy = user.Email
	}

	if inv.CustomerID != nil {
		cust, err := s.customers.GetByID(ctx, *inv.CustomerID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("customer", inv.CustomerID.String())
			}
			return err
		}
		// Another office's customer is invisible here, same as a
		// missing one.
		if cust.OfficeID != inv.OfficeID {
			return apperror.NewNotFound("customer", inv.CustomerID.String())
		}
		inv.CustomerName = cust.Name

		if inv.IsCredit && cust.CreditLimit.IsPositive() {
			if cust.TotalDebt.Add(inv.Total).GreaterThan(cust.CreditLimit) {
				return apperror.NewBusinessRule(apperror.CodeBusinessRule, "credit limit exceeded").
					WithDetail("customerId", cust.ID.String()).
					WithDetail("creditLimit", cust.CreditLimit.String()).
					WithDetail("totalDebt", cust.TotalDebt.String())
			}
		}
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if inv.Number == "" {
			number, err := s.numerator.Next(ctx, inv.OfficeID, numerator.DefaultConfig("INV"), inv.Date)
			if err != nil {
				return fmt.Errorf("generate invoice number: %w", err)
			}
			inv.Number = number
		}
		if err := s.repo.Create(ctx, inv); err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}
		if inv.IsCredit && inv.CustomerID != nil {
			if err := s.customers.AddDebt(ctx, *inv.CustomerID, inv.Total); err != nil {
				return fmt.Errorf("add customer debt: %w", err)
			}
		}
		if s.events != nil {
			if err := s.events.Publish(ctx, inv.OfficeID, domain.EventInvoiceCreated, inv); err != nil {
				return fmt.Errorf("publish invoice event: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "invoice recorded",
		"number", inv.Number, "customer", inv.DisplayName(),
		"total", inv.Total.String(), "credit", inv.IsCredit)
	return nil
}

// GetByID returns the invoice with lines.
func (s *Service) GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, invoiceID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("invoice", invoiceID.String())
		}
		return nil, err
	}
	return inv, nil
}

// List returns invoices for the office, newest first.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Invoice, error) {
	if id.IsNil(filter.OfficeID) {
		return nil, apperror.NewValidation("office is required").WithDetail("field", "officeId")
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, filter)
}

// MarkPaid settles a credit invoice and reduces the customer's debt.
func (s *Service) MarkPaid(ctx context.Context, invoiceID id.ID) error {
	inv, err := s.GetByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if inv.IsPaid {
		return apperror.NewBusinessRule(apperror.CodeBusinessRule, "invoice is already paid").
			WithDetail("invoiceId", invoiceID.String())
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.MarkPaid(ctx, invoiceID); err != nil {
			return fmt.Errorf("mark invoice paid: %w", err)
		}
		if inv.IsCredit && inv.CustomerID != nil {
			if err := s.customers.AddDebt(ctx, *inv.CustomerID, types.ZeroMoney().Sub(inv.Total)); err != nil {
				return fmt.Errorf("reduce customer debt: %w", err)
			}
		}
		return nil
	})
}
