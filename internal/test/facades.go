package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/boostlane/panel/internal/bulkorder"
	"github.com/boostlane/panel/internal/domain/model"
	"github.com/boostlane/panel/internal/usecase"
)

// CatalogFacadeStub serves a fixed service catalog.
type CatalogFacadeStub struct {
	ServicesFn func(context.Context) ([]model.ServiceDescriptor, error)
}

// Services delegates to the override or returns a one-entry catalog.
func (s CatalogFacadeStub) Services(ctx context.Context) ([]model.ServiceDescriptor, error) {
	if s.ServicesFn != nil {
		return s.ServicesFn(ctx)
	}
	return []model.ServiceDescriptor{{
		ID:              101,
		Name:            "Instagram Followers",
		Category:        "Instagram",
		RatePerThousand: decimal.RequireFromString("0.90"),
		NativeCurrency:  "USD",
		MinOrder:        100,
		MaxOrder:        10000,
	}}, nil
}

// BulkOrderFacadeStub provides controllable behaviour for mass order endpoints.
type BulkOrderFacadeStub struct {
	PreviewFn func(context.Context, int64, string) (*usecase.Preview, error)
	SubmitFn  func(context.Context, int64, string) (*usecase.SubmissionReceipt, error)
}

// PreviewBatch delegates to the override or returns an empty passing preview.
func (s BulkOrderFacadeStub) PreviewBatch(ctx context.Context, userID int64, text string) (*usecase.Preview, error) {
	if s.PreviewFn != nil {
		return s.PreviewFn(ctx, userID, text)
	}
	return &usecase.Preview{
		Result:  &bulkorder.ValidationResult{UserCurrency: "USD"},
		Balance: bulkorder.BalanceCheckResult{Sufficient: true},
	}, nil
}

// SubmitBatch delegates to the override or acknowledges a one-order batch.
func (s BulkOrderFacadeStub) SubmitBatch(ctx context.Context, userID int64, text string) (*usecase.SubmissionReceipt, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, userID, text)
	}
	return &usecase.SubmissionReceipt{
		BatchID:       "B1-U1",
		OrdersCreated: 1,
		TotalCost:     decimal.RequireFromString("0.45"),
		Currency:      "USD",
	}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	OrdersFn      func(context.Context, int64) ([]model.Order, error)
	BatchOrdersFn func(context.Context, int64, string) ([]model.Order, error)
}

// Orders returns predefined orders for given user.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{ID: 1, UserID: userID, BatchID: "B1-U1", Status: model.OrderStatusPending}}, nil
}

// BatchOrders returns predefined orders of one batch.
func (s OrderFacadeStub) BatchOrders(ctx context.Context, userID int64, batchID string) ([]model.Order, error) {
	if s.BatchOrdersFn != nil {
		return s.BatchOrdersFn(ctx, userID, batchID)
	}
	return []model.Order{{ID: 1, UserID: userID, BatchID: batchID, Status: model.OrderStatusPending}}, nil
}

// WalletFacadeStub simulates wallet operations.
type WalletFacadeStub struct {
	WalletFn  func(context.Context, int64) (*model.WalletSummary, error)
	TopUpFn   func(context.Context, int64, decimal.Decimal) error
	HistoryFn func(context.Context, int64) ([]model.WalletTransaction, error)
}

// Wallet returns stored summary or default data.
func (s WalletFacadeStub) Wallet(ctx context.Context, userID int64) (*model.WalletSummary, error) {
	if s.WalletFn != nil {
		return s.WalletFn(ctx, userID)
	}
	return &model.WalletSummary{Balance: decimal.NewFromInt(10), Spent: decimal.NewFromInt(5), Currency: "USD"}, nil
}

// TopUpWallet executes configured top up handler.
func (s WalletFacadeStub) TopUpWallet(ctx context.Context, userID int64, amount decimal.Decimal) error {
	if s.TopUpFn != nil {
		return s.TopUpFn(ctx, userID, amount)
	}
	return nil
}

// WalletHistory returns preconfigured ledger entries.
func (s WalletFacadeStub) WalletHistory(ctx context.Context, userID int64) ([]model.WalletTransaction, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, userID)
	}
	return []model.WalletTransaction{{ID: 1, UserID: userID, Type: model.TransactionTopUp, Amount: decimal.NewFromInt(10), Currency: "USD", CreatedAt: time.Unix(0, 0)}}, nil
}

// OrderUpdateCall stores information about UpdateOrderStatus invocations.
type OrderUpdateCall struct {
	OrderID         int64
	Status          model.OrderStatus
	ProviderOrderID *string
}

// DispatchFacadeStub mimics worker interactions with the panel facade.
type DispatchFacadeStub struct {
	Batches         [][]model.Order
	OrdersFn        func(context.Context, int) ([]model.Order, error)
	PlaceFn         func(context.Context, model.Order) (string, error)
	UpdateFn        func(context.Context, int64, model.OrderStatus, *string) error
	Updates         []OrderUpdateCall
	mu              sync.Mutex
	ordersCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *DispatchFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *DispatchFacadeStub) Unlock() { s.mu.Unlock() }

// OrdersForDispatch returns batches from configured queue.
func (s *DispatchFacadeStub) OrdersForDispatch(ctx context.Context, limit int) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.ordersCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// PlaceOrder forwards the order to the override or returns a canned id.
func (s *DispatchFacadeStub) PlaceOrder(ctx context.Context, order model.Order) (string, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, order)
	}
	return "prov-1", nil
}

// UpdateOrderStatus records update requests.
func (s *DispatchFacadeStub) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus, providerOrderID *string) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, orderID, status, providerOrderID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Updates = append(s.Updates, OrderUpdateCall{OrderID: orderID, Status: status, ProviderOrderID: providerOrderID})
	return nil
}
