package entity

import (
	"context"
	"time"

	"oilbook/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants without database access.
type Validatable interface {
	Validate(ctx context.Context) error
}

// BaseEntity contains fields common to all stored entities.
type BaseEntity struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`
}

// NewBaseEntity creates a new BaseEntity with generated ID.
func NewBaseEntity() BaseEntity {
	return BaseEntity{
		ID:      id.New(),
		Version: 1,
	}
}

// Touch increments version (for optimistic locking).
func (b *BaseEntity) Touch() {
	b.Version++
}

// SetVersion updates the version number (used by repository after sync).
func (b *BaseEntity) SetVersion(v int) {
	b.Version = v
}

// BaseCatalog extends BaseEntity with the office scope and activity flag
// shared by all reference data.
type BaseCatalog struct {
	BaseEntity

	// OfficeID scopes the row to one branch office
	OfficeID id.ID `db:"office_id" json:"officeId"`

	// Active rows show up in pickers; inactive rows stay for history
	Active bool `db:"active" json:"active"`
}

// NewBaseCatalog creates a new BaseCatalog scoped to an office.
func NewBaseCatalog(officeID id.ID) BaseCatalog {
	return BaseCatalog{
		BaseEntity: NewBaseEntity(),
		OfficeID:   officeID,
		Active:     true,
	}
}

// BaseDocument extends BaseEntity with office scope and audit fields.
type BaseDocument struct {
	BaseEntity

	// OfficeID scopes the document to one branch office
	OfficeID id.ID `db:"office_id" json:"officeId"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
	CreatedBy string    `db:"created_by" json:"createdBy,omitempty"`
}

// NewBaseDocument creates a new BaseDocument with generated ID and timestamps.
func NewBaseDocument(officeID id.ID) BaseDocument {
	now := time.Now().UTC()
	return BaseDocument{
		BaseEntity: NewBaseEntity(),
		OfficeID:   officeID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Touch updates the UpdatedAt timestamp and increments version.
func (b *BaseDocument) Touch() {
	b.UpdatedAt = time.Now().UTC()
	b.BaseEntity.Touch()
}
