package model

import "github.com/shopspring/decimal"

// RateTable holds exchange rates quoted against a single base currency.
// Rates[Base] is always 1.
type RateTable struct {
	Base  string
	Rates map[string]decimal.Decimal
}

// Rate returns the quote for a currency code and whether it is known.
func (t RateTable) Rate(code string) (decimal.Decimal, bool) {
	if code == t.Base {
		return decimal.NewFromInt(1), true
	}
	rate, ok := t.Rates[code]
	return rate, ok
}

// Supports reports whether the table can price the given currency.
func (t RateTable) Supports(code string) bool {
	_, ok := t.Rate(code)
	return ok
}
