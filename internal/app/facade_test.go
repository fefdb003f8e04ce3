package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/boostlane/panel/internal/domain/errors"
	"github.com/boostlane/panel/internal/domain/model"
	testhelpers "github.com/boostlane/panel/internal/test"
	"github.com/boostlane/panel/internal/usecase"
)

type providerGatewayStub struct {
	placeFn func(context.Context, model.Order) (string, error)
}

func (s providerGatewayStub) Place(ctx context.Context, order model.Order) (string, error) {
	if s.placeFn != nil {
		return s.placeFn(ctx, order)
	}
	return "prov-1", nil
}

type facadeFixture struct {
	facade   *PanelFacade
	users    *testhelpers.UserRepositoryStub
	orders   *testhelpers.OrderRepositoryStub
	wallets  *testhelpers.WalletRepositoryStub
	provider *providerGatewayStub
}

func newFacade() facadeFixture {
	users := testhelpers.NewUserRepositoryStub()
	strategy := testhelpers.StrategyStub{ParseFn: func(string) (int64, error) { return 99, nil }}
	authUC := usecase.NewAuthUseCase(users, testhelpers.HasherStub{}, strategy, testhelpers.RateProviderStub{}, "USD")

	catalog := &testhelpers.CatalogRepositoryStub{}
	catalogUC := usecase.NewCatalogUseCase(catalog)

	orders := &testhelpers.OrderRepositoryStub{}
	orderUC := usecase.NewOrderUseCase(orders)

	wallets := &testhelpers.WalletRepositoryStub{}
	walletUC := usecase.NewWalletUseCase(wallets, users)

	bulkUC := usecase.NewBulkOrderUseCase(catalog, testhelpers.RateProviderStub{}, users, wallets, orders)

	provider := &providerGatewayStub{}
	facade := NewPanelFacade(authUC, catalogUC, bulkUC, orderUC, walletUC, provider)
	return facadeFixture{facade: facade, users: users, orders: orders, wallets: wallets, provider: provider}
}

func TestPanelFacadeAuth(t *testing.T) {
	fx := newFacade()
	token, err := fx.facade.Register(context.Background(), "user", "pass", "bdt")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	stored, err := fx.users.GetByLogin(context.Background(), "user")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if stored.Currency != "BDT" {
		t.Fatalf("unexpected stored currency %q", stored.Currency)
	}

	if _, err := fx.facade.Authenticate(context.Background(), "user", "pass"); err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}

	id, err := fx.facade.ParseToken("anything")
	if err != nil {
		t.Fatalf("parse token returned error: %v", err)
	}
	if id != 99 {
		t.Fatalf("expected id 99, got %d", id)
	}
}

func TestPanelFacadeServices(t *testing.T) {
	fx := newFacade()
	services, err := fx.facade.Services(context.Background())
	if err != nil {
		t.Fatalf("services returned error: %v", err)
	}
	if len(services) != 2 {
		t.Fatalf("expected two services, got %d", len(services))
	}
}

func TestPanelFacadeBulkFlow(t *testing.T) {
	fx := newFacade()

	preview, err := fx.facade.PreviewBatch(context.Background(), 7, "101|https://a|500")
	if err != nil {
		t.Fatalf("preview returned error: %v", err)
	}
	if len(preview.Result.ValidOrders) != 1 || len(preview.Result.InvalidOrders) != 0 {
		t.Fatalf("unexpected preview verdicts: %+v", preview.Result)
	}
	if !preview.Balance.Sufficient {
		t.Fatalf("expected sufficient balance, got %+v", preview.Balance)
	}

	var persisted []model.NewOrder
	fx.orders.CreateBatchFn = func(_ context.Context, userID int64, batchID string, orders []model.NewOrder, total decimal.Decimal, currency string) error {
		persisted = orders
		if userID != 7 || !strings.HasSuffix(batchID, "-U7") {
			t.Fatalf("unexpected batch identity: user=%d batch=%q", userID, batchID)
		}
		if !total.Equal(decimal.RequireFromString("0.45")) || currency != "USD" {
			t.Fatalf("unexpected totals: %s %s", total, currency)
		}
		return nil
	}

	receipt, err := fx.facade.SubmitBatch(context.Background(), 7, "101|https://a|500")
	if err != nil {
		t.Fatalf("submit returned error: %v", err)
	}
	if receipt.OrdersCreated != 1 || len(persisted) != 1 {
		t.Fatalf("expected one persisted order, got %+v", receipt)
	}
}

func TestPanelFacadeOrders(t *testing.T) {
	fx := newFacade()
	fx.orders.ListByUserFn = func(context.Context, int64) ([]model.Order, error) {
		return []model.Order{{ID: 1}, {ID: 2}}, nil
	}
	fx.orders.ListByBatchFn = func(_ context.Context, _ int64, batchID string) ([]model.Order, error) {
		return []model.Order{{ID: 3, BatchID: batchID}}, nil
	}
	fx.orders.SelectFn = func(context.Context, int) ([]model.Order, error) {
		return []model.Order{{ID: 4, Status: model.OrderStatusInProgress}}, nil
	}
	var updated int64
	fx.orders.UpdateStatusFn = func(_ context.Context, orderID int64, _ model.OrderStatus, _ *string) error {
		updated = orderID
		return nil
	}

	listed, err := fx.facade.Orders(context.Background(), 7)
	if err != nil || len(listed) != 2 {
		t.Fatalf("expected two orders, got %v err=%v", listed, err)
	}

	batch, err := fx.facade.BatchOrders(context.Background(), 7, "B1-U7")
	if err != nil || len(batch) != 1 || batch[0].BatchID != "B1-U7" {
		t.Fatalf("unexpected batch result %v err=%v", batch, err)
	}

	dispatch, err := fx.facade.OrdersForDispatch(context.Background(), 5)
	if err != nil || len(dispatch) != 1 {
		t.Fatalf("expected dispatch batch of one, got %v err=%v", dispatch, err)
	}

	if err := fx.facade.UpdateOrderStatus(context.Background(), 4, model.OrderStatusCompleted, nil); err != nil {
		t.Fatalf("update status error: %v", err)
	}
	if updated != 4 {
		t.Fatalf("expected update for order 4, got %d", updated)
	}

	providerID, err := fx.facade.PlaceOrder(context.Background(), model.Order{ID: 4})
	if err != nil || providerID != "prov-1" {
		t.Fatalf("unexpected placement result %q err=%v", providerID, err)
	}
}

func TestPanelFacadeWallet(t *testing.T) {
	fx := newFacade()

	summary, err := fx.facade.Wallet(context.Background(), 1)
	if err != nil {
		t.Fatalf("wallet returned error: %v", err)
	}
	if !summary.Balance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected summary %+v", summary)
	}

	if err := fx.facade.TopUpWallet(context.Background(), 1, decimal.Zero); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	fx.wallets.TransactionsFn = func(context.Context, int64) ([]model.WalletTransaction, error) {
		return []model.WalletTransaction{{ID: 1, Type: model.TransactionTopUp}}, nil
	}
	history, err := fx.facade.WalletHistory(context.Background(), 1)
	if err != nil || len(history) != 1 {
		t.Fatalf("unexpected history %v err=%v", history, err)
	}
}
