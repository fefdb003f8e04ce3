package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/boostlane/panel/internal/domain/model"
)

// WalletRepository manages user wallet balances and the transaction ledger.
type WalletRepository interface {
	Summary(ctx context.Context, userID int64) (*model.WalletSummary, error)
	TopUp(ctx context.Context, userID int64, amount decimal.Decimal, currency string) error
	Transactions(ctx context.Context, userID int64) ([]model.WalletTransaction, error)
}
