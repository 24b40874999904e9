package handlers

import (
	"github.com/gin-gonic/gin"

	"oilbook/internal/core/apperror"
	"oilbook/internal/core/id"
	"oilbook/internal/domain/catalogs/product"
	"oilbook/internal/domain/oiltype"
	"oilbook/internal/infrastructure/http/v1/dto"
)

// ProductHandler serves the fuel products catalog.
type ProductHandler struct {
	*CatalogHandler[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest]
	service *product.Service
}

// NewProductHandler creates a product handler.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	config := CatalogHandlerConfig[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest]{
		Service:    service.CatalogService,
		EntityName: "product",
		MapCreateDTO: func(officeID id.ID, req dto.CreateProductRequest) *product.Product {
			return req.ToEntity(officeID)
		},
		MapUpdateDTO: func(req dto.UpdateProductRequest, existing *product.Product) *product.Product {
			req.ApplyTo(existing)
			return existing
		},
		OfficeOf: func(p *product.Product) id.ID { return p.OfficeID },
	}

	return &ProductHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// ByOilType handles GET /catalog/products/by-oil-type/:oilType.
func (h *ProductHandler) ByOilType(c *gin.Context) {
	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}

	ot, err := oiltype.Parse(c.Param("oilType"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid oil type").WithDetail("value", c.Param("oilType")))
		return
	}

	products, err := h.service.ListByOilType(c.Request.Context(), officeID, ot)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, products)
}
