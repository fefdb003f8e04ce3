package bulkorder

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/boostlane/panel/internal/domain/model"
)

// ErrRateUnavailable signals that the supplied rate table has no quote for a
// currency involved in a conversion.
var ErrRateUnavailable = errors.New("no exchange rate for currency")

// ServiceResolver maps service identifiers to catalog descriptors.
// Missing ids are simply absent from the returned map.
type ServiceResolver interface {
	ResolveMany(ctx context.Context, ids []int64) (map[int64]model.ServiceDescriptor, error)
}

// CurrencyConverter converts an amount between currencies using the rate
// table supplied by the caller. Implementations must not perform I/O.
type CurrencyConverter interface {
	Convert(amount decimal.Decimal, from, to string, rates model.RateTable) (decimal.Decimal, error)
}

// RateTableConverter converts through the table's base currency:
// amount / rate[from] * rate[to].
type RateTableConverter struct{}

// Convert implements CurrencyConverter.
func (RateTableConverter) Convert(amount decimal.Decimal, from, to string, rates model.RateTable) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}

	fromRate, ok := rates.Rate(from)
	if !ok || fromRate.IsZero() {
		return decimal.Decimal{}, ErrRateUnavailable
	}
	toRate, ok := rates.Rate(to)
	if !ok {
		return decimal.Decimal{}, ErrRateUnavailable
	}

	return amount.Div(fromRate).Mul(toRate), nil
}
