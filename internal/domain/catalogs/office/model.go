// Package office provides the Offices catalog. An office is a branch
// fuel station; every other row in the system is scoped to one.
package office

import (
	"context"
	"regexp"

	"oilbook/internal/core/apperror"
	"oilbook/internal/core/entity"
)

var taxIDRE = regexp.MustCompile(`^\d{13}$`)

// Office represents a branch fuel station.
type Office struct {
	entity.BaseEntity

	// Code is a short unique identifier (e.g. "HQ")
	Code string `db:"code" json:"code"`

	// Name is the display name
	Name string `db:"name" json:"name"`

	Address *string `db:"address" json:"address,omitempty"`

	// TaxID is the 13-digit Thai taxpayer identification number
	TaxID *string `db:"tax_id" json:"taxId,omitempty"`

	Phone *string `db:"phone" json:"phone,omitempty"`

	// DiscordWebhook, when set, receives daily closing notifications.
	// Stored setting only; delivery is out of scope here.
	DiscordWebhook *string `db:"discord_webhook" json:"discordWebhook,omitempty"`

	Active bool `db:"active" json:"active"`
}

// New creates an Office with required fields.
func New(code, name string) *Office {
	return &Office{
		BaseEntity: entity.NewBaseEntity(),
		Code:       code,
		Name:       name,
		Active:     true,
	}
}

// Validate implements entity.Validatable.
func (o *Office) Validate(ctx context.Context) error {
	if o.Code == "" {
		return apperror.NewValidation("code is required").
			WithDetail("field", "code")
	}
	if o.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if o.TaxID != nil && *o.TaxID != "" && !taxIDRE.MatchString(*o.TaxID) {
		return apperror.NewValidation("tax id must be 13 digits").
			WithDetail("field", "taxId")
	}
	return nil
}
