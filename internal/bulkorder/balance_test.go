package bulkorder

import (
	"testing"

	"github.com/shopspring/decimal"
)

func resultWithTotal(total string) *ValidationResult {
	return &ValidationResult{
		TotalCostInUserCurrency: decimal.RequireFromString(total),
		UserCurrency:            "USD",
	}
}

func TestCheckBalanceExactEqualityIsSufficient(t *testing.T) {
	check := CheckBalance(resultWithTotal("100.00"), decimal.RequireFromString("100.00"))
	if !check.Sufficient {
		t.Fatal("available == required must be sufficient")
	}
	if check.Message != "" {
		t.Fatalf("sufficient check must carry no message, got %q", check.Message)
	}
}

func TestCheckBalanceShortfall(t *testing.T) {
	check := CheckBalance(resultWithTotal("100.01"), decimal.RequireFromString("100.00"))
	if check.Sufficient {
		t.Fatal("expected insufficient balance")
	}
	if check.Message != "insufficient funds: 0.01 USD more required" {
		t.Fatalf("unexpected message %q", check.Message)
	}
	if !check.Required.Equal(decimal.RequireFromString("100.01")) {
		t.Fatalf("unexpected required amount %s", check.Required)
	}
}

func TestCheckBalanceComparesAtDisplayPrecision(t *testing.T) {
	// Exact total 99.999 displays as 100.00; a 100.00 wallet must cover it.
	check := CheckBalance(resultWithTotal("99.999"), decimal.RequireFromString("100.00"))
	if !check.Sufficient {
		t.Fatal("comparison must use display rounding, not raw totals")
	}
	if !check.Required.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("required must be the display total, got %s", check.Required)
	}
}

func TestCheckBalanceZeroTotal(t *testing.T) {
	check := CheckBalance(resultWithTotal("0"), decimal.Zero)
	if !check.Sufficient {
		t.Fatal("empty batch must always be affordable")
	}
}
