package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletSummary aggregates a user's current balance and lifetime spend.
type WalletSummary struct {
	Balance  decimal.Decimal
	Spent    decimal.Decimal
	Currency string
}

// TransactionType distinguishes wallet credits from debits.
type TransactionType string

const (
	TransactionTopUp  TransactionType = "TOPUP"
	TransactionCharge TransactionType = "CHARGE"
)

// WalletTransaction is one entry in the wallet ledger.
type WalletTransaction struct {
	ID        int64
	UserID    int64
	Type      TransactionType
	Amount    decimal.Decimal
	Currency  string
	BatchID   *string
	CreatedAt time.Time
}
