package dto

import (
	"oilbook/internal/core/types"
	"oilbook/internal/domain/ledger/adjustments"
	"oilbook/internal/domain/ledger/dips"
	"oilbook/internal/domain/ledger/meters"
	"oilbook/internal/domain/ledger/prices"
	"oilbook/internal/domain/oiltype"
)

// --- Meter readings ---

// MeterRowRequest is one pump row of the daily meter form.
type MeterRowRequest struct {
	TankNumber int          `json:"tankNumber" binding:"required,min=1"`
	OilType    string       `json:"oilType" binding:"required"`
	StartMeter types.Liters `json:"startMeter"`
	EndMeter   types.Liters `json:"endMeter"`
	TruckID    *string      `json:"truckId"`
	Note       *string      `json:"note"`
}

// ToReading converts to the domain row. Office, date and identity are
// filled in by the service.
func (r MeterRowRequest) ToReading() meters.Reading {
	return meters.Reading{
		TankNumber: r.TankNumber,
		OilType:    oiltype.OilType(r.OilType),
		StartMeter: r.StartMeter,
		EndMeter:   r.EndMeter,
		TruckID:    r.TruckID,
		Note:       r.Note,
	}
}

// SaveMeterDayRequest replaces the whole meter day.
type SaveMeterDayRequest struct {
	Date DateOnly          `json:"date" binding:"required"`
	Rows []MeterRowRequest `json:"rows"`
}

// ToReadings converts all rows.
func (r SaveMeterDayRequest) ToReadings() []meters.Reading {
	out := make([]meters.Reading, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = row.ToReading()
	}
	return out
}

// MeterDayResponse is the day form payload. Saved reports whether the
// rows come from storage or are carried-forward defaults.
type MeterDayResponse struct {
	Date  DateOnly         `json:"date"`
	Saved bool             `json:"saved"`
	Rows  []meters.Reading `json:"rows"`
}

// --- Tank dips ---

// DipRowRequest is one tank row of the daily dip form.
type DipRowRequest struct {
	TankNumber int          `json:"tankNumber" binding:"required,min=1"`
	OilType    string       `json:"oilType" binding:"required"`
	DipLevel   *float64     `json:"dipLevel"`
	Volume     types.Liters `json:"volume"`
	WaterLevel *float64     `json:"waterLevel"`
	Note       *string      `json:"note"`
}

// ToRecord converts to the domain row.
func (r DipRowRequest) ToRecord() dips.Record {
	return dips.Record{
		TankNumber: r.TankNumber,
		OilType:    oiltype.OilType(r.OilType),
		DipLevel:   r.DipLevel,
		Volume:     r.Volume,
		WaterLevel: r.WaterLevel,
		Note:       r.Note,
	}
}

// SaveDipDayRequest replaces the whole dip day.
type SaveDipDayRequest struct {
	Date DateOnly        `json:"date" binding:"required"`
	Rows []DipRowRequest `json:"rows"`
}

// ToRecords converts all rows.
func (r SaveDipDayRequest) ToRecords() []dips.Record {
	out := make([]dips.Record, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = row.ToRecord()
	}
	return out
}

// DipDayResponse is the dip day form payload.
type DipDayResponse struct {
	Date  DateOnly      `json:"date"`
	Saved bool          `json:"saved"`
	Rows  []dips.Record `json:"rows"`
}

// --- Stock adjustments ---

// CreateAdjustmentRequest records one signed stock correction.
type CreateAdjustmentRequest struct {
	Date    DateOnly     `json:"date" binding:"required"`
	OilType string       `json:"oilType" binding:"required"`
	Liters  types.Liters `json:"liters"`
	Reason  string       `json:"reason" binding:"required"`
}

// ToEntity builds the adjustment. Office and creator are filled in by
// the handler and service.
func (r CreateAdjustmentRequest) ToEntity() *adjustments.Adjustment {
	return &adjustments.Adjustment{
		Date:    r.Date.Time,
		OilType: oiltype.OilType(r.OilType),
		Liters:  r.Liters,
		Reason:  r.Reason,
	}
}

// --- Oil prices ---

// PriceRowRequest is one grade row of the daily price board.
type PriceRowRequest struct {
	OilType   string  `json:"oilType" binding:"required"`
	SellPrice float64 `json:"sellPrice" binding:"required"`
	CostPrice float64 `json:"costPrice"`
}

// ToRow converts to the domain row.
func (r PriceRowRequest) ToRow() prices.Row {
	return prices.Row{
		OilType:   oiltype.OilType(r.OilType),
		SellPrice: types.NewMoney(r.SellPrice),
		CostPrice: types.NewMoney(r.CostPrice),
	}
}

// SavePricesRequest upserts the price board for one date.
type SavePricesRequest struct {
	Date DateOnly          `json:"date" binding:"required"`
	Rows []PriceRowRequest `json:"rows" binding:"required,min=1"`
}

// ToRows converts all rows.
func (r SavePricesRequest) ToRows() []prices.Row {
	out := make([]prices.Row, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = row.ToRow()
	}
	return out
}
