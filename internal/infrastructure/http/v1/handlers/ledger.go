package handlers

import (
	"github.com/gin-gonic/gin"

	appctx "oilbook/internal/core/context"
	"oilbook/internal/domain/ledger/adjustments"
	"oilbook/internal/domain/ledger/dips"
	"oilbook/internal/domain/ledger/meters"
	"oilbook/internal/domain/ledger/prices"
	"oilbook/internal/infrastructure/http/v1/dto"
)

// --- Meter readings ---

// MeterHandler serves the daily pump meter ledger.
type MeterHandler struct {
	*BaseHandler
	service *meters.Service
}

// NewMeterHandler creates a meter handler.
func NewMeterHandler(base *BaseHandler, service *meters.Service) *MeterHandler {
	return &MeterHandler{BaseHandler: base, service: service}
}

// GetDay handles GET /ledgers/meters?date= - the saved day, possibly empty.
func (h *MeterHandler) GetDay(c *gin.Context) {
	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}
	date, ok := h.ParseDateQuery(c, "date")
	if !ok {
		return
	}

	rows, err := h.service.GetDay(c.Request.Context(), officeID, date)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.MeterDayResponse{Date: dto.DateOnly{Time: date}, Saved: len(rows) > 0, Rows: rows})
}

// Defaults handles GET /ledgers/meters/defaults?date= - the entry form
// prefill: saved rows if any, otherwise carried-forward meters.
func (h *MeterHandler) Defaults(c *gin.Context) {
	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}
	date, ok := h.ParseDateQuery(c, "date")
	if !ok {
		return
	}

	rows, saved, err := h.service.DayDefaults(c.Request.Context(), officeID, date)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.MeterDayResponse{Date: dto.DateOnly{Time: date}, Saved: saved, Rows: rows})
}

// SaveDay handles PUT /ledgers/meters - replace the whole day.
func (h *MeterHandler) SaveDay(c *gin.Context) {
	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}

	var req dto.SaveMeterDayRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rows, err := h.service.SaveDay(c.Request.Context(), officeID, req.Date.Time, req.ToReadings())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.MeterDayResponse{Date: req.Date, Saved: true, Rows: rows})
}

// Recent handles GET /ledgers/meters/recent?limit=.
func (h *MeterHandler) Recent(c *gin.Context) {
	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}

	rows, err := h.service.ListRecent(c.Request.Context(), officeID, h.ParseIntQuery(c, "limit", 200))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, rows)
}

// --- Tank dips ---

// DipHandler serves the daily tank dip ledger.
type DipHandler struct {
	*BaseHandler
	service *dips.Service
}

// NewDipHandler creates a dip handler.
func NewDipHandler(base *BaseHandler, service *dips.Service) *DipHandler {
	return &DipHandler{BaseHandler: base, service: service}
}

// GetDay handles GET /ledgers/dips?date=.
func (h *DipHandler) GetDay(c *gin.Context) {
	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}
	date, ok := h.ParseDateQuery(c, "date")
	if !ok {
		return
	}

	rows, err := h.service.GetDay(c.Request.Context(), officeID, date)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.DipDayResponse{Date: dto.DateOnly{Time: date}, Saved: len(rows) > 0, Rows: rows})
}

// Defaults handles GET /ledgers/dips/defaults?date=.
func (h *DipHandler) Defaults(c *gin.Context) {
	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}
	date, ok := h.ParseDateQuery(c, "date")
	if !ok {
		return
	}

	rows, saved, err := h.service.DayDefaults(c.Request.Context(), officeID, date)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.DipDayResponse{Date: dto.DateOnly{Time: date}, Saved: saved, Rows: rows})
}

// SaveDay handles PUT /ledgers/dips - replace the whole day.
func (h *DipHandler) SaveDay(c *gin.Context) {
	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}

	var req dto.SaveDipDayRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rows, err := h.service.SaveDay(c.Request.Context(), officeID, req.Date.Time, req.ToRecords())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.DipDayResponse{Date: req.Date, Saved: true, Rows: rows})
}

// Recent handles GET /ledgers/dips/recent?limit=.
func (h *DipHandler) Recent(c *gin.Context) {
	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}

	rows, err := h.service.ListRecent(c.Request.Context(), officeID, h.ParseIntQuery(c, "limit", 200))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, rows)
}

// --- Stock adjustments ---

// AdjustmentHandler serves the append-only stock adjustment ledger.
type AdjustmentHandler struct {
	*BaseHandler
	service *adjustments.Service
}

// NewAdjustmentHandler creates an adjustment handler.
func NewAdjustmentHandler(base *BaseHandler, service *adjustments.Service) *AdjustmentHandler {
	return &AdjustmentHandler{BaseHandler: base, service: service}
}

// Create handles POST /ledgers/adjustments.
func (h *AdjustmentHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}

	var req dto.CreateAdjustmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	adj := req.ToEntity()
	adj.OfficeID = officeID
	if user := appctx.GetUser(ctx); user != nil {
		adj.CreatedBy = user.Email
	}

	if err := h.service.Create(ctx, adj); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(201, adj)
}

// Recent handles GET /ledgers/adjustments?limit=.
func (h *AdjustmentHandler) Recent(c *gin.Context) {
	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}

	rows, err := h.service.ListRecent(c.Request.Context(), officeID, h.ParseIntQuery(c, "limit", 100))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, rows)
}

// --- Oil prices ---

// PriceHandler serves the daily price board.
type PriceHandler struct {
	*BaseHandler
	service *prices.Service
}

// NewPriceHandler creates a price handler.
func NewPriceHandler(base *BaseHandler, service *prices.Service) *PriceHandler {
	return &PriceHandler{BaseHandler: base, service: service}
}

// GetDay handles GET /ledgers/prices?date=.
func (h *PriceHandler) GetDay(c *gin.Context) {
	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}
	date, ok := h.ParseDateQuery(c, "date")
	if !ok {
		return
	}

	rows, err := h.service.GetDay(c.Request.Context(), officeID, date)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, rows)
}

// Upsert handles PUT /ledgers/prices - set the board for one date.
func (h *PriceHandler) Upsert(c *gin.Context) {
	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}

	var req dto.SavePricesRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rows, err := h.service.UpsertDay(c.Request.Context(), officeID, req.Date.Time, req.ToRows())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, rows)
}

// Recent handles GET /ledgers/prices/recent?days=.
func (h *PriceHandler) Recent(c *gin.Context) {
	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}

	rows, err := h.service.ListRecent(c.Request.Context(), officeID, h.ParseIntQuery(c, "days", 14))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, rows)
}
