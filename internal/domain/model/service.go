package model

import "github.com/shopspring/decimal"

// ServiceDescriptor describes a catalog service orders are placed against.
// Rate is quoted per thousand units in the service's native currency.
type ServiceDescriptor struct {
	ID              int64
	Name            string
	Category        string
	RatePerThousand decimal.Decimal
	NativeCurrency  string
	MinOrder        int
	MaxOrder        int
}
