package handlers

import (
	"github.com/gin-gonic/gin"

	"oilbook/internal/core/id"
	"oilbook/internal/domain/catalogs/customer"
	"oilbook/internal/infrastructure/http/v1/dto"
)

// CustomerHandler serves the Customers catalog plus the debtor listing.
type CustomerHandler struct {
	*CatalogHandler[*customer.Customer, dto.CreateCustomerRequest, dto.UpdateCustomerRequest]
	service *customer.Service
}

// NewCustomerHandler creates a customer handler.
func NewCustomerHandler(base *BaseHandler, service *customer.Service) *CustomerHandler {
	config := CatalogHandlerConfig[*customer.Customer, dto.CreateCustomerRequest, dto.UpdateCustomerRequest]{
		Service:    service.CatalogService,
		EntityName: "customer",
		MapCreateDTO: func(officeID id.ID, req dto.CreateCustomerRequest) *customer.Customer {
			return req.ToEntity(officeID)
		},
		MapUpdateDTO: func(req dto.UpdateCustomerRequest, existing *customer.Customer) *customer.Customer {
			req.ApplyTo(existing)
			return existing
		},
		OfficeOf: func(c *customer.Customer) id.ID { return c.OfficeID },
	}

	return &CustomerHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// Debtors handles GET /catalog/customers/debtors - credit customers
// with outstanding debt, largest first.
func (h *CustomerHandler) Debtors(c *gin.Context) {
	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}

	debtors, err := h.service.ListDebtors(c.Request.Context(), officeID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, debtors)
}
