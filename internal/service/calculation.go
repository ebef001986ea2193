package service

import (
	"encoding/json"
	"math"
	"strconv"

	"chargerate/internal/models"
)

const (
	componentPrecision = 3
	overallPrecision   = 2
)

// CalculateRate prices a validated session. The overall price is summed from
// the unformatted values; formatting is applied per field afterwards.
func CalculateRate(totalSeconds int64, totalKWh, energyRate, timeRate, transactionRate float64) models.RateResult {
	energy := totalKWh * energyRate
	timePrice := (float64(totalSeconds) / 3600) * timeRate
	overall := energy + timePrice + transactionRate

	return models.RateResult{
		Overall: formatAmount(overall, overallPrecision),
		Components: models.RateComponents{
			Energy:      formatAmount(energy, componentPrecision),
			Time:        formatAmount(timePrice, componentPrecision),
			Transaction: formatAmount(transactionRate, componentPrecision),
		},
	}
}

// ConvertRateResult multiplies each amount by the quoted exchange rate and
// reformats every field with the same precision rules as CalculateRate.
func ConvertRateResult(quote models.Quote, currency models.Currency, overall, energy, timePrice, transaction float64) models.ConvertedRateResult {
	return models.ConvertedRateResult{
		RateResult: models.RateResult{
			Overall: formatAmount(overall*quote.Rate, overallPrecision),
			Components: models.RateComponents{
				Energy:      formatAmount(energy*quote.Rate, componentPrecision),
				Time:        formatAmount(timePrice*quote.Rate, componentPrecision),
				Transaction: formatAmount(transaction*quote.Rate, componentPrecision),
			},
		},
		Currency: currency,
	}
}

// formatAmount renders whole values as integers (no decimal point) and
// everything else with exactly the given number of fractional digits. Both
// the calculator and the converter go through here so rounding never diverges.
func formatAmount(value float64, precision int) json.Number {
	if value == math.Trunc(value) {
		return json.Number(strconv.FormatInt(int64(value), 10))
	}
	return json.Number(strconv.FormatFloat(value, 'f', precision, 64))
}

// rawNumber keeps a caller-supplied amount exactly as given, for fallback
// responses that must echo their inputs verbatim.
func rawNumber(value float64) json.Number {
	return json.Number(strconv.FormatFloat(value, 'f', -1, 64))
}
