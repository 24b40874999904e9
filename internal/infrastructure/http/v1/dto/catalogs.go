package dto

import (
	"oilbook/internal/core/id"
	"oilbook/internal/core/types"
	"oilbook/internal/domain/catalogs/customer"
	"oilbook/internal/domain/catalogs/office"
	"oilbook/internal/domain/catalogs/product"
	"oilbook/internal/domain/catalogs/supplier"
	"oilbook/internal/domain/oiltype"
)

// --- Customers ---

// CreateCustomerRequest for creating customers. Code is optional;
// a blank code gets generated.
type CreateCustomerRequest struct {
	Code        string   `json:"code"`
	Name        string   `json:"name" binding:"required"`
	Type        string   `json:"type" binding:"required,oneof=CASH CREDIT"`
	TaxID       *string  `json:"taxId"`
	Address     *string  `json:"address"`
	Phone       *string  `json:"phone"`
	CreditLimit *float64 `json:"creditLimit"`
}

// ToEntity builds a customer scoped to the office.
func (r CreateCustomerRequest) ToEntity(officeID id.ID) *customer.Customer {
	c := customer.New(officeID, r.Code, r.Name, customer.Type(r.Type))
	c.TaxID = r.TaxID
	c.Address = r.Address
	c.Phone = r.Phone
	if r.CreditLimit != nil {
		c.CreditLimit = types.NewMoney(*r.CreditLimit)
	}
	return c
}

// UpdateCustomerRequest for updating customers. Nil fields are left unchanged.
type UpdateCustomerRequest struct {
	Name        *string  `json:"name"`
	Type        *string  `json:"type"`
	TaxID       *string  `json:"taxId"`
	Address     *string  `json:"address"`
	Phone       *string  `json:"phone"`
	CreditLimit *float64 `json:"creditLimit"`
	Version     int      `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the patch onto an existing customer.
func (r UpdateCustomerRequest) ApplyTo(c *customer.Customer) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Type != nil {
		c.Type = customer.Type(*r.Type)
	}
	if r.TaxID != nil {
		c.TaxID = r.TaxID
	}
	if r.Address != nil {
		c.Address = r.Address
	}
	if r.Phone != nil {
		c.Phone = r.Phone
	}
	if r.CreditLimit != nil {
		c.CreditLimit = types.NewMoney(*r.CreditLimit)
	}
	c.Version = r.Version
}

// --- Suppliers ---

// CreateSupplierRequest for creating suppliers.
type CreateSupplierRequest struct {
	Code    string   `json:"code"`
	Name    string   `json:"name" binding:"required"`
	TaxID   *string  `json:"taxId"`
	Address *string  `json:"address"`
	Phone   *string  `json:"phone"`
	VATType *string  `json:"vatType"`
	VATRate *float64 `json:"vatRate"`
}

// ToEntity builds a supplier scoped to the office.
func (r CreateSupplierRequest) ToEntity(officeID id.ID) *supplier.Supplier {
	s := supplier.New(officeID, r.Code, r.Name)
	s.TaxID = r.TaxID
	s.Address = r.Address
	s.Phone = r.Phone
	if r.VATType != nil {
		s.VATType = supplier.VATType(*r.VATType)
	}
	if r.VATRate != nil {
		s.VATRate = *r.VATRate
	}
	return s
}

// UpdateSupplierRequest for updating suppliers. Nil fields are left unchanged.
type UpdateSupplierRequest struct {
	Name    *string  `json:"name"`
	TaxID   *string  `json:"taxId"`
	Address *string  `json:"address"`
	Phone   *string  `json:"phone"`
	VATType *string  `json:"vatType"`
	VATRate *float64 `json:"vatRate"`
	Version int      `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the patch onto an existing supplier.
func (r UpdateSupplierRequest) ApplyTo(s *supplier.Supplier) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.TaxID != nil {
		s.TaxID = r.TaxID
	}
	if r.Address != nil {
		s.Address = r.Address
	}
	if r.Phone != nil {
		s.Phone = r.Phone
	}
	if r.VATType != nil {
		s.VATType = supplier.VATType(*r.VATType)
	}
	if r.VATRate != nil {
		s.VATRate = *r.VATRate
	}
	s.Version = r.Version
}

// --- Products ---

// CreateProductRequest for creating fuel products.
type CreateProductRequest struct {
	Code      string   `json:"code"`
	Name      string   `json:"name" binding:"required"`
	OilType   string   `json:"oilType" binding:"required"`
	Unit      *string  `json:"unit"`
	BuyPrice  *float64 `json:"buyPrice"`
	SellPrice *float64 `json:"sellPrice"`
	HasVAT    *bool    `json:"hasVat"`
}

// ToEntity builds a product scoped to the office.
func (r CreateProductRequest) ToEntity(officeID id.ID) *product.Product {
	p := product.New(officeID, r.Code, r.Name, oiltype.OilType(r.OilType))
	if r.Unit != nil {
		p.Unit = *r.Unit
	}
	if r.BuyPrice != nil {
		p.BuyPrice = types.NewMoney(*r.BuyPrice)
	}
	if r.SellPrice != nil {
		p.SellPrice = types.NewMoney(*r.SellPrice)
	}
	if r.HasVAT != nil {
		p.HasVAT = *r.HasVAT
	}
	return p
}

// UpdateProductRequest for updating products. Nil fields are left unchanged.
type UpdateProductRequest struct {
	Name      *string  `json:"name"`
	OilType   *string  `json:"oilType"`
	Unit      *string  `json:"unit"`
	BuyPrice  *float64 `json:"buyPrice"`
	SellPrice *float64 `json:"sellPrice"`
	HasVAT    *bool    `json:"hasVat"`
	Version   int      `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the patch onto an existing product.
func (r UpdateProductRequest) ApplyTo(p *product.Product) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.OilType != nil {
		p.OilType = oiltype.OilType(*r.OilType)
	}
	if r.Unit != nil {
		p.Unit = *r.Unit
	}
	if r.BuyPrice != nil {
		p.BuyPrice = types.NewMoney(*r.BuyPrice)
	}
	if r.SellPrice != nil {
		p.SellPrice = types.NewMoney(*r.SellPrice)
	}
	if r.HasVAT != nil {
		p.HasVAT = *r.HasVAT
	}
	p.Version = r.Version
}

// --- Offices ---

// CreateOfficeRequest for registering a branch office.
type CreateOfficeRequest struct {
	Code    string  `json:"code" binding:"required"`
	Name    string  `json:"name" binding:"required"`
	Address *string `json:"address"`
	TaxID   *string `json:"taxId"`
	Phone   *string `json:"phone"`
}

// ToEntity builds an office.
func (r CreateOfficeRequest) ToEntity() *office.Office {
	o := office.New(r.Code, r.Name)
	o.Address = r.Address
	o.TaxID = r.TaxID
	o.Phone = r.Phone
	return o
}

// UpdateOfficeSettingsRequest is a partial settings update for the
// caller's own office. Nil fields are left unchanged.
type UpdateOfficeSettingsRequest struct {
	Name           *string `json:"name"`
	Address        *string `json:"address"`
	TaxID          *string `json:"taxId"`
	Phone          *string `json:"phone"`
	DiscordWebhook *string `json:"discordWebhook"`
}

// ToPatch converts to the domain settings patch.
func (r UpdateOfficeSettingsRequest) ToPatch() office.SettingsPatch {
	return office.SettingsPatch{
		Name:           r.Name,
		Address:        r.Address,
		TaxID:          r.TaxID,
		Phone:          r.Phone,
		DiscordWebhook: r.DiscordWebhook,
	}
}
