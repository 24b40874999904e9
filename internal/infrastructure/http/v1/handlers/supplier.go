package handlers

import (
	"oilbook/internal/core/id"
	"oilbook/internal/domain/catalogs/supplier"
	"oilbook/internal/infrastructure/http/v1/dto"
)

// SupplierHTTPHandler is the configured generic handler for suppliers.
type SupplierHTTPHandler = CatalogHandler[
	*supplier.Supplier,
	dto.CreateSupplierRequest,
	dto.UpdateSupplierRequest,
]

// NewSupplierHandler creates a supplier handler.
func NewSupplierHandler(base *BaseHandler, service *supplier.Service) *SupplierHTTPHandler {
	config := CatalogHandlerConfig[
		*supplier.Supplier,
		dto.CreateSupplierRequest,
		dto.UpdateSupplierRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "supplier",
		MapCreateDTO: func(officeID id.ID, req dto.CreateSupplierRequest) *supplier.Supplier {
			return req.ToEntity(officeID)
		},
		MapUpdateDTO: func(req dto.UpdateSupplierRequest, existing *supplier.Supplier) *supplier.Supplier {
			req.ApplyTo(existing)
			return existing
		},
		OfficeOf: func(s *supplier.Supplier) id.ID { return s.OfficeID },
	}

	return NewCatalogHandler(base, config)
}
