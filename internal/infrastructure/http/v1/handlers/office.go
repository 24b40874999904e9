package handlers

import (
	"github.com/gin-gonic/gin"

	"oilbook/internal/core/apperror"
	"oilbook/internal/domain/catalogs/office"
	"oilbook/internal/infrastructure/http/v1/dto"
)

// OfficeHandler serves the Offices catalog. Offices are the tenancy
// root, so routes here split between the caller's own office and the
// superadmin-only fleet management.
type OfficeHandler struct {
	*BaseHandler
	service *office.Service
}

// NewOfficeHandler creates an office handler.
func NewOfficeHandler(base *BaseHandler, service *office.Service) *OfficeHandler {
	return &OfficeHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /catalog/offices.
func (h *OfficeHandler) List(c *gin.Context) {
	includeInactive := c.Query("includeInactive") == "true"

	offices, err := h.service.List(c.Request.Context(), includeInactive)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, offices)
}

// Create handles POST /catalog/offices.
func (h *OfficeHandler) Create(c *gin.Context) {
	var req dto.CreateOfficeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	o := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), o); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(201, o)
}

// Get handles GET /catalog/offices/:id.
func (h *OfficeHandler) Get(c *gin.Context) {
	officeID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	o, err := h.service.GetByID(c.Request.Context(), officeID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, o)
}

// SetActive handles POST /catalog/offices/:id/active.
func (h *OfficeHandler) SetActive(c *gin.Context) {
	officeID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var req dto.SetActiveRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetActive(c.Request.Context(), officeID, *req.Active); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// Me handles GET /settings/office - the caller's own office.
func (h *OfficeHandler) Me(c *gin.Context) {
	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}

	o, err := h.service.GetByID(c.Request.Context(), officeID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, o)
}

// UpdateSettings handles PUT /settings/office - partial update of the
// caller's own office. Other offices cannot be reached from here.
func (h *OfficeHandler) UpdateSettings(c *gin.Context) {
	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}

	var req dto.UpdateOfficeSettingsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if req == (dto.UpdateOfficeSettingsRequest{}) {
		h.Error(c, apperror.NewValidation("no settings provided"))
		return
	}

	o, err := h.service.UpdateSettings(c.Request.Context(), officeID, req.ToPatch())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, o)
}
