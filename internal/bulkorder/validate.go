package bulkorder

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/boostlane/panel/internal/domain/model"
)

var perThousand = decimal.NewFromInt(1000)

// validator applies per-record business rules against a resolved catalog
// snapshot and the caller-supplied rate table. It performs no I/O.
type validator struct {
	converter CurrencyConverter
}

// validate produces exactly one of a priced order or an invalid line.
func (v validator) validate(rec normalizedRecord, services map[int64]model.ServiceDescriptor, userCurrency string, rates model.RateTable) (*ParsedOrder, *InvalidOrderLine) {
	reject := func(code ReasonCode, message string) (*ParsedOrder, *InvalidOrderLine) {
		return nil, &InvalidOrderLine{
			LineNumber:    rec.lineNumber,
			RawText:       rec.rawText,
			ReasonCode:    code,
			ReasonMessage: message,
		}
	}

	service, ok := services[rec.serviceID]
	if !ok {
		return reject(ReasonServiceNotFound, fmt.Sprintf("service %d does not exist", rec.serviceID))
	}

	if rec.quantity < service.MinOrder || rec.quantity > service.MaxOrder {
		return reject(ReasonQuantityOutOfRange, fmt.Sprintf("quantity must be between %d and %d", service.MinOrder, service.MaxOrder))
	}

	nativePrice := service.RatePerThousand.Mul(decimal.NewFromInt(int64(rec.quantity))).Div(perThousand)

	userPrice, err := v.converter.Convert(nativePrice, service.NativeCurrency, userCurrency, rates)
	if err != nil {
		return reject(ReasonCurrencyUnavailable, fmt.Sprintf("no exchange rate from %s to %s", service.NativeCurrency, userCurrency))
	}

	return &ParsedOrder{
		LineNumber:             rec.lineNumber,
		ServiceID:              rec.serviceID,
		Link:                   rec.link,
		Quantity:               rec.quantity,
		Service:                service,
		PriceInServiceCurrency: nativePrice,
		PriceInUserCurrency:    userPrice,
	}, nil
}
