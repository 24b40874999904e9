package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"oilbook/internal/core/apperror"
	"oilbook/internal/core/id"
	"oilbook/internal/domain/documents/invoice"
	"oilbook/internal/domain/documents/purchase"
	"oilbook/internal/infrastructure/http/v1/dto"
)

// parseRangeQuery reads optional from/to date bounds. to is made
// exclusive by adding one day, matching the half-open report windows.
func parseRangeQuery(c *gin.Context) (from, to *time.Time, err error) {
	if v := c.Query("from"); v != "" {
		t, perr := time.Parse("2006-01-02", v)
		if perr != nil {
			return nil, nil, apperror.NewValidation("from must be in YYYY-MM-DD format").WithDetail("value", v)
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, perr := time.Parse("2006-01-02", v)
		if perr != nil {
			return nil, nil, apperror.NewValidation("to must be in YYYY-MM-DD format").WithDetail("value", v)
		}
		end := t.AddDate(0, 0, 1)
		to = &end
	}
	return from, to, nil
}

// --- Purchases ---

// PurchaseHandler serves purchase documents (fuel deliveries).
type PurchaseHandler struct {
	*BaseHandler
	service *purchase.Service
}

// NewPurchaseHandler creates a purchase handler.
func NewPurchaseHandler(base *BaseHandler, service *purchase.Service) *PurchaseHandler {
	return &PurchaseHandler{BaseHandler: base, service: service}
}

// Create handles POST /documents/purchases.
func (h *PurchaseHandler) Create(c *gin.Context) {
	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}

	var req dto.CreatePurchaseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := req.ToEntity(officeID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid supplier id"))
		return
	}

	if err := h.service.Create(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// Get handles GET /documents/purchases/:id.
func (h *PurchaseHandler) Get(c *gin.Context) {
	purchaseID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), purchaseID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if officeID, ok := h.OfficeID(c); !ok || p.OfficeID != officeID {
		h.Error(c, apperror.NewNotFound("purchase", purchaseID.String()))
		return
	}

	h.OK(c, p)
}

// List handles GET /documents/purchases?from=&to=&limit=&offset=.
func (h *PurchaseHandler) List(c *gin.Context) {
	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}

	from, to, err := parseRangeQuery(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	filter := purchase.ListFilter{
		OfficeID: officeID,
		From:     from,
		To:       to,
		Limit:    h.ParseIntQuery(c, "limit", 50),
		Offset:   h.ParseIntQuery(c, "offset", 0),
	}

	docs, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, docs)
}

// --- Invoices ---

// InvoiceHandler serves sales invoice documents.
type InvoiceHandler struct {
	*BaseHandler
	service *invoice.Service
}

// NewInvoiceHandler creates an invoice handler.
func NewInvoiceHandler(base *BaseHandler, service *invoice.Service) *InvoiceHandler {
	return &InvoiceHandler{BaseHandler: base, service: service}
}

// Create handles POST /documents/invoices.
func (h *InvoiceHandler) Create(c *gin.Context) {
	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}

	var req dto.CreateInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	inv, err := req.ToEntity(officeID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid customer id"))
		return
	}

	if err := h.service.Create(c.Request.Context(), inv); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, inv)
}

// Get handles GET /documents/invoices/:id.
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoiceID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	inv, err := h.service.GetByID(c.Request.Context(), invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if officeID, ok := h.OfficeID(c); !ok || inv.OfficeID != officeID {
		h.Error(c, apperror.NewNotFound("invoice", invoiceID.String()))
		return
	}

	h.OK(c, inv)
}

// List handles GET /documents/invoices?from=&to=&customerId=&isCredit=&limit=&offset=.
func (h *InvoiceHandler) List(c *gin.Context) {
	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}

	from, to, err := parseRangeQuery(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	filter := invoice.ListFilter{
		OfficeID: officeID,
		From:     from,
		To:       to,
		Limit:    h.ParseIntQuery(c, "limit", 50),
		Offset:   h.ParseIntQuery(c, "offset", 0),
	}

	if v := c.Query("customerId"); v != "" {
		customerID, perr := id.Parse(v)
		if perr != nil {
			h.Error(c, apperror.NewValidation("invalid customer id"))
			return
		}
		filter.CustomerID = &customerID
	}
	if v := c.Query("isCredit"); v != "" {
		isCredit := v == "true"
		filter.IsCredit = &isCredit
	}

	docs, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, docs)
}

// MarkPaid handles POST /documents/invoices/:id/pay - settle a credit sale.
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	invoiceID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	inv, err := h.service.GetByID(c.Request.Context(), invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if officeID, ok := h.OfficeID(c); !ok || inv.OfficeID != officeID {
		h.Error(c, apperror.NewNotFound("invoice", invoiceID.String()))
		return
	}

	if err := h.service.MarkPaid(c.Request.Context(), invoiceID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "invoice settled")
}
