package domain

import (
	"context"

	"oilbook/internal/core/id"
)

// Event types published by document services.
const (
	EventInvoiceCreated  = "invoice.created"
	EventPurchaseCreated = "purchase.created"
)

// EventPublisher queues office-scoped notifications. Implementations
// write to a transactional outbox, so publishing participates in the
// caller's transaction.
type EventPublisher interface {
	Publish(ctx context.Context, officeID id.ID, eventType string, payload any) error
}
