// Package oiltype defines the closed fuel type enumeration used as the
// grouping key across stock movements, documents and reports.
package oiltype

import (
	"fmt"
)

// OilType identifies a fuel grade. The set is closed: reports iterate
// the enumeration, never the observed data, so every grade always gets
// its row even with zero activity.
type OilType string

const (
	Diesel      OilType = "DIESEL"
	DieselB7    OilType = "DIESEL_B7"
	Gasohol91   OilType = "GASOHOL_91"
	Gasohol95   OilType = "GASOHOL_95"
	GasoholE20  OilType = "GASOHOL_E20"
	Benzin      OilType = "BENZIN"
	PowerDiesel OilType = "POWER_DIESEL"
	NGV         OilType = "NGV"
	SuperDiesel OilType = "SUPER_DIESEL"
	Other       OilType = "OTHER"
)

// all is the canonical ordering. Report rows follow this order.
var all = []OilType{
	Diesel,
	DieselB7,
	Gasohol91,
	Gasohol95,
	GasoholE20,
	Benzin,
	PowerDiesel,
	NGV,
	SuperDiesel,
	Other,
}

// labels are the Thai display names used on printed reports.
var labels = map[OilType]string{
	Diesel:      "ดีเซล",
	DieselB7:    "ดีเซล B7",
	Gasohol91:   "แก๊สโซฮอล์ 91",
	Gasohol95:   "แก๊สโซฮอล์ 95",
	GasoholE20:  "แก๊สโซฮอล์ E20",
	Benzin:      "เบนซิน",
	PowerDiesel: "พาวเวอร์ดีเซล",
	NGV:         "NGV",
	SuperDiesel: "ซูเปอร์ดีเซล",
	Other:       "อื่นๆ",
}

// dailyClosing is the subset of grades shown in Part B of the daily
// closing report (the grades the station actually stocks in tanks).
var dailyClosing = []OilType{
	Diesel,
	DieselB7,
	Gasohol95,
	Gasohol91,
	GasoholE20,
	Benzin,
}

// All returns the full catalog in canonical order.
// The returned slice must not be mutated by callers; a copy is returned.
func All() []OilType {
	out := make([]OilType, len(all))
	copy(out, all)
	return out
}

// DailyClosing returns the grades included in the daily closing stock section.
func DailyClosing() []OilType {
	out := make([]OilType, len(dailyClosing))
	copy(out, dailyClosing)
	return out
}

// Parse validates a string against the enumeration.
func Parse(s string) (OilType, error) {
	t := OilType(s)
	if _, ok := labels[t]; !ok {
		return "", fmt.Errorf("unknown oil type %q", s)
	}
	return t, nil
}

// IsValid reports whether t is a member of the enumeration.
func (t OilType) IsValid() bool {
	_, ok := labels[t]
	return ok
}

// String returns the enumeration code.
func (t OilType) String() string { return string(t) }

// Label returns the Thai display name, falling back to the code for
// values outside the enumeration.
func (t OilType) Label() string {
	if l, ok := labels[t]; ok {
		return l
	}
	return string(t)
}
