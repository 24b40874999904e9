package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"oilbook/internal/core/apperror"
	"oilbook/internal/domain/catalogs/customer"
	"oilbook/internal/domain/reports"
)

// ReportsHandler serves the reporting endpoints: monthly stock
// reconciliation, the daily closing view and the supporting summaries.
type ReportsHandler struct {
	*BaseHandler
	service   *reports.Service
	customers *customer.Service
}

// NewReportsHandler creates a reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service, customers *customer.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
		customers:   customers,
	}
}

func (h *ReportsHandler) monthQuery(c *gin.Context) (string, bool) {
	month := c.Query("month")
	if month == "" {
		h.Error(c, apperror.NewValidation("month is required").WithDetail("field", "month"))
		return "", false
	}
	return month, true
}

// StockMonth handles GET /reports/stock?month=YYYY-MM.
func (h *ReportsHandler) StockMonth(c *gin.Context) {
	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}
	month, ok := h.monthQuery(c)
	if !ok {
		return
	}

	report, err := h.service.StockMonth(c.Request.Context(), officeID, month)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// StockMonthXLSX handles GET /reports/stock/export?month=YYYY-MM and
// streams the report as a spreadsheet download.
func (h *ReportsHandler) StockMonthXLSX(c *gin.Context) {
	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}
	month, ok := h.monthQuery(c)
	if !ok {
		return
	}

	report, err := h.service.StockMonth(c.Request.Context(), officeID, month)
	if err != nil {
		h.Error(c, err)
		return
	}

	data, err := reports.ExportStockXLSX(report)
	if err != nil {
		h.Error(c, apperror.NewInternal(err))
		return
	}

	filename := fmt.Sprintf("stock-%s.xlsx", month)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// DailyClosing handles GET /reports/daily-closing?date=YYYY-MM-DD.
func (h *ReportsHandler) DailyClosing(c *gin.Context) {
	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}
	date, ok := h.ParseDateQuery(c, "date")
	if !ok {
		return
	}

	report, err := h.service.DailyClosing(c.Request.Context(), officeID, date)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// MeterUsage handles GET /reports/meter-usage?from=&to=.
func (h *ReportsHandler) MeterUsage(c *gin.Context) {
	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}
	from, ok := h.ParseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := h.ParseDateQuery(c, "to")
	if !ok {
		return
	}

	report, err := h.service.MeterUsage(c.Request.Context(), officeID, from, to)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// Sales handles GET /reports/sales?from=&to=.
func (h *ReportsHandler) Sales(c *gin.Context) {
	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}
	from, ok := h.ParseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := h.ParseDateQuery(c, "to")
	if !ok {
		return
	}

	report, err := h.service.Sales(c.Request.Context(), officeID, from, to)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// VAT handles GET /reports/vat?month=YYYY-MM.
func (h *ReportsHandler) VAT(c *gin.Context) {
	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}
	month, ok := h.monthQuery(c)
	if !ok {
		return
	}

	report, err := h.service.VAT(c.Request.Context(), officeID, month)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// Debtors handles GET /reports/debtors - outstanding credit balances.
func (h *ReportsHandler) Debtors(c *gin.Context) {
	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}

	debtors, err := h.customers.ListDebtors(c.Request.Context(), officeID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, debtors)
}
