package models

import "encoding/json"

// RatePlan carries the price components applied to a charging session.
// All components must be greater than zero.
type RatePlan struct {
	Energy      float64 `json:"energy" validate:"required,gt=0"`
	Time        float64 `json:"time" validate:"required,gt=0"`
	Transaction float64 `json:"transaction" validate:"required,gt=0"`
}

// CDR is the charge detail record for one charging event. Timestamps are
// ISO 8601 strings and meters are watt-hour readings; full consistency
// checks happen in the service layer.
type CDR struct {
	TimestampStart string `json:"timestamp_start" validate:"required"`
	TimestampStop  string `json:"timestamp_stop" validate:"required"`
	MeterStart     int64  `json:"meter_start" validate:"gte=0"`
	MeterStop      int64  `json:"meter_stop" validate:"gte=0"`
}

// RateComponents holds the formatted per-component prices. Fields are
// json.Number so whole values render without a decimal point while
// fractional values keep their fixed precision.
type RateComponents struct {
	Energy      json.Number `json:"energy"`
	Time        json.Number `json:"time"`
	Transaction json.Number `json:"transaction"`
}

// RateResult is the priced session returned by rate calculation.
type RateResult struct {
	Overall    json.Number    `json:"overall"`
	Components RateComponents `json:"components"`
}

// ConvertedRateResult is a RateResult denominated in the given currency.
type ConvertedRateResult struct {
	RateResult
	Currency Currency `json:"currency"`
}
