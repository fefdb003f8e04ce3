package bulkorder

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BalanceCheckResult is the sufficiency verdict for one validation result
// against a wallet balance.
type BalanceCheckResult struct {
	Sufficient bool
	Available  decimal.Decimal
	Required   decimal.Decimal
	Message    string
}

// CheckBalance compares the batch total against the available balance.
// Comparison happens at display precision so the verdict always agrees with
// the numbers the user sees; exact equality is sufficient.
func CheckBalance(result *ValidationResult, available decimal.Decimal) BalanceCheckResult {
	required := result.TotalForDisplay()
	rounded := RoundDisplay(available)

	check := BalanceCheckResult{
		Sufficient: rounded.GreaterThanOrEqual(required),
		Available:  rounded,
		Required:   required,
	}
	if !check.Sufficient {
		shortfall := required.Sub(rounded)
		check.Message = fmt.Sprintf("insufficient funds: %s %s more required", shortfall.StringFixed(DisplayPrecision), result.UserCurrency)
	}
	return check
}
