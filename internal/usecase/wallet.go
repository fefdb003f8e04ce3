package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	domainErrors "github.com/boostlane/panel/internal/domain/errors"
	"github.com/boostlane/panel/internal/domain/model"
	"github.com/boostlane/panel/internal/domain/repository"
)

// WalletUseCase manages wallet balances and the transaction ledger.
type WalletUseCase struct {
	wallets repository.WalletRepository
	users   repository.UserRepository
}

// NewWalletUseCase constructs WalletUseCase.
func NewWalletUseCase(wallets repository.WalletRepository, users repository.UserRepository) *WalletUseCase {
	return &WalletUseCase{wallets: wallets, users: users}
}

// Summary returns the wallet state for a user. A user without wallet rows
// gets a zero balance in their display currency.
func (u *WalletUseCase) Summary(ctx context.Context, userID int64) (*model.WalletSummary, error) {
	summary, err := u.wallets.Summary(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			usr, err := u.users.GetByID(ctx, userID)
			if err != nil {
				return nil, err
			}
			return &model.WalletSummary{Currency: usr.Currency}, nil
		}
		return nil, err
	}
	return summary, nil
}

// TopUp credits the wallet.
func (u *WalletUseCase) TopUp(ctx context.Context, userID int64, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return domainErrors.ErrInvalidAmount
	}

	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	return u.wallets.TopUp(ctx, userID, amount, usr.Currency)
}

// History returns wallet transactions sorted by time.
func (u *WalletUseCase) History(ctx context.Context, userID int64) ([]model.WalletTransaction, error) {
	return u.wallets.Transactions(ctx, userID)
}
