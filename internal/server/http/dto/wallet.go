package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletResponse summarizes balance and lifetime spend.
type WalletResponse struct {
	Balance  string `json:"balance"`
	Spent    string `json:"spent"`
	Currency string `json:"currency"`
}

// TopUpRequest carries the credited amount; decimal accepts both JSON
// numbers and strings.
type TopUpRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// TransactionResponse describes one wallet ledger entry.
type TransactionResponse struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	Amount      string    `json:"amount"`
	Currency    string    `json:"currency"`
	BatchID     *string   `json:"batch_id,omitempty"`
	ProcessedAt time.Time `json:"processed_at"`
}
