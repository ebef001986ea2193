package models

import "fmt"

// Currency is a supported conversion target.
type Currency string

const (
	USD Currency = "USD"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	CAD Currency = "CAD"
	EUR Currency = "EUR"
)

// BaseCurrency is the currency input amounts are denominated in. Fallback
// responses are labeled with it when the exchange provider is unavailable.
const BaseCurrency = EUR

// DefaultTargetCurrency applies when a conversion request omits the currency parameter.
const DefaultTargetCurrency = USD

// ParseCurrency validates a currency code against the supported set.
func ParseCurrency(code string) (Currency, error) {
	switch Currency(code) {
	case USD, GBP, JPY, CAD, EUR:
		return Currency(code), nil
	}
	return "", fmt.Errorf("unsupported currency code %q", code)
}
