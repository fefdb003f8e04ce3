package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/boostlane/panel/internal/domain/model"
	"github.com/boostlane/panel/internal/usecase"
)

// ProviderGateway places orders with the upstream SMM provider.
type ProviderGateway interface {
	Place(ctx context.Context, order model.Order) (string, error)
}

// PanelFacade is the single entry point the HTTP layer and the dispatch
// worker use to reach application use cases.
type PanelFacade struct {
	auth     *usecase.AuthUseCase
	catalog  *usecase.CatalogUseCase
	bulk     *usecase.BulkOrderUseCase
	orders   *usecase.OrderUseCase
	wallet   *usecase.WalletUseCase
	provider ProviderGateway
}

func NewPanelFacade(auth *usecase.AuthUseCase, catalog *usecase.CatalogUseCase, bulk *usecase.BulkOrderUseCase, orders *usecase.OrderUseCase, wallet *usecase.WalletUseCase, provider ProviderGateway) *PanelFacade {
	return &PanelFacade{auth: auth, catalog: catalog, bulk: bulk, orders: orders, wallet: wallet, provider: provider}
}

func (f *PanelFacade) Register(ctx context.Context, login, password, currency string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password, currency)
	return token, err
}

func (f *PanelFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *PanelFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *PanelFacade) Services(ctx context.Context) ([]model.ServiceDescriptor, error) {
	return f.catalog.List(ctx)
}

func (f *PanelFacade) PreviewBatch(ctx context.Context, userID int64, text string) (*usecase.Preview, error) {
	return f.bulk.Preview(ctx, userID, text)
}

func (f *PanelFacade) SubmitBatch(ctx context.Context, userID int64, text string) (*usecase.SubmissionReceipt, error) {
	return f.bulk.Submit(ctx, userID, text)
}

func (f *PanelFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *PanelFacade) BatchOrders(ctx context.Context, userID int64, batchID string) ([]model.Order, error) {
	return f.orders.ListByBatch(ctx, userID, batchID)
}

func (f *PanelFacade) OrdersForDispatch(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.SelectBatchForDispatch(ctx, limit)
}

func (f *PanelFacade) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus, providerOrderID *string) error {
	return f.orders.UpdateStatus(ctx, orderID, status, providerOrderID)
}

func (f *PanelFacade) PlaceOrder(ctx context.Context, order model.Order) (string, error) {
	return f.provider.Place(ctx, order)
}

func (f *PanelFacade) Wallet(ctx context.Context, userID int64) (*model.WalletSummary, error) {
	return f.wallet.Summary(ctx, userID)
}

func (f *PanelFacade) TopUpWallet(ctx context.Context, userID int64, amount decimal.Decimal) error {
	return f.wallet.TopUp(ctx, userID, amount)
}

func (f *PanelFacade) WalletHistory(ctx context.Context, userID int64) ([]model.WalletTransaction, error) {
	return f.wallet.History(ctx, userID)
}
