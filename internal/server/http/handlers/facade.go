package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/boostlane/panel/internal/domain/model"
	"github.com/boostlane/panel/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password, currency string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// CatalogFacade serves the service catalog.
type CatalogFacade interface {
	Services(ctx context.Context) ([]model.ServiceDescriptor, error)
}

// BulkOrderFacade validates and submits pasted order batches.
type BulkOrderFacade interface {
	PreviewBatch(ctx context.Context, userID int64, text string) (*usecase.Preview, error)
	SubmitBatch(ctx context.Context, userID int64, text string) (*usecase.SubmissionReceipt, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	BatchOrders(ctx context.Context, userID int64, batchID string) ([]model.Order, error)
}

// WalletFacade provides wallet related operations.
type WalletFacade interface {
	Wallet(ctx context.Context, userID int64) (*model.WalletSummary, error)
	TopUpWallet(ctx context.Context, userID int64, amount decimal.Decimal) error
	WalletHistory(ctx context.Context, userID int64) ([]model.WalletTransaction, error)
}

// PanelFacade aggregates the full set of operations used across handlers.
type PanelFacade interface {
	AuthFacade
	CatalogFacade
	BulkOrderFacade
	OrderFacade
	WalletFacade
}
