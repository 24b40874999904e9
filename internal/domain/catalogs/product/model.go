// Package product provides the Products catalog: the sellable fuel grades
// with their pricing defaults.
package product

import (
	"context"

	"oilbook/internal/core/apperror"
	"oilbook/internal/core/entity"
	"oilbook/internal/core/id"
	"oilbook/internal/core/types"
	"oilbook/internal/domain/oiltype"
)

// Product represents a sellable fuel grade.
type Product struct {
	entity.Catalog

	// OilType links the product to the closed fuel grade enumeration
	OilType oiltype.OilType `db:"oil_type" json:"oilType"`

	// Unit is the selling unit, normally "ลิตร" (liters)
	Unit string `db:"unit" json:"unit"`

	// BuyPrice is the default purchase price per unit
	BuyPrice types.Money `db:"buy_price" json:"buyPrice"`

	// SellPrice is the default selling price per unit
	SellPrice types.Money `db:"sell_price" json:"sellPrice"`

	// HasVAT marks whether sales of this product carry VAT
	HasVAT bool `db:"has_vat" json:"hasVat"`
}

// New creates a Product with required fields.
func New(officeID id.ID, code, name string, ot oiltype.OilType) *Product {
	return &Product{
		Catalog: entity.NewCatalog(officeID, code, name),
		OilType: ot,
		Unit:    "ลิตร",
		HasVAT:  true,
	}
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !p.OilType.IsValid() {
		return apperror.NewValidation("invalid oil type").
			WithDetail("field", "oilType").
			WithDetail("value", string(p.OilType))
	}

	if p.BuyPrice.IsNegative() || p.SellPrice.IsNegative() {
		return apperror.NewValidation("prices cannot be negative").
			WithDetail("field", "buyPrice/sellPrice")
	}

	return nil
}
