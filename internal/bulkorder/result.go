package bulkorder

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/boostlane/panel/internal/domain/model"
)

// DisplayPrecision is the number of fractional digits shown for money.
// Aggregation always runs at full precision; rounding happens once, here.
const DisplayPrecision = 2

// RoundDisplay rounds a monetary amount to display precision.
func RoundDisplay(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(DisplayPrecision)
}

// ParsedOrder is one fully validated and priced order line. The price in the
// service's native currency is kept for audit; the user-currency price feeds
// aggregation.
type ParsedOrder struct {
	LineNumber             int
	ServiceID              int64
	Link                   string
	Quantity               int
	Service                model.ServiceDescriptor
	PriceInServiceCurrency decimal.Decimal
	PriceInUserCurrency    decimal.Decimal
}

// ValidationResult is the outcome of one full validation pass. It is
// recomputed wholesale on every pass, never patched incrementally.
type ValidationResult struct {
	ValidOrders             []ParsedOrder
	InvalidOrders           []InvalidOrderLine
	TotalCostInUserCurrency decimal.Decimal
	UserCurrency            string
}

// TotalForDisplay is the batch total rounded once, after exact summation.
func (r *ValidationResult) TotalForDisplay() decimal.Decimal {
	return RoundDisplay(r.TotalCostInUserCurrency)
}

// aggregate reduces validator output into a single result. Both groups keep
// original line order; the total is the exact sum of unrounded prices.
func aggregate(valid []ParsedOrder, invalid []InvalidOrderLine, userCurrency string) *ValidationResult {
	sort.SliceStable(invalid, func(i, j int) bool {
		return invalid[i].LineNumber < invalid[j].LineNumber
	})

	total := decimal.Zero
	for _, order := range valid {
		total = total.Add(order.PriceInUserCurrency)
	}

	return &ValidationResult{
		ValidOrders:             valid,
		InvalidOrders:           invalid,
		TotalCostInUserCurrency: total,
		UserCurrency:            userCurrency,
	}
}
