package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	domainErrors "github.com/boostlane/panel/internal/domain/errors"
	"github.com/boostlane/panel/internal/domain/model"
)

type stubUserRepository struct {
	createFn     func(context.Context, string, string, string) (*model.User, error)
	getByLoginFn func(context.Context, string) (*model.User, error)
	getByIDFn    func(context.Context, int64) (*model.User, error)
}

func (s stubUserRepository) Create(ctx context.Context, login, hash, currency string) (*model.User, error) {
	if s.createFn != nil {
		return s.createFn(ctx, login, hash, currency)
	}
	return &model.User{ID: 1, Login: login, PasswordHash: hash, Currency: currency}, nil
}

func (s stubUserRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.getByLoginFn != nil {
		return s.getByLoginFn(ctx, login)
	}
	return nil, domainErrors.ErrNotFound
}

func (s stubUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return &model.User{ID: id, Login: "user", Currency: "USD"}, nil
}

type stubCatalogRepository struct {
	listFn    func(context.Context) ([]model.ServiceDescriptor, error)
	resolveFn func(context.Context, []int64) (map[int64]model.ServiceDescriptor, error)
}

func (s stubCatalogRepository) List(ctx context.Context) ([]model.ServiceDescriptor, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return nil, nil
}

func (s stubCatalogRepository) ResolveMany(ctx context.Context, ids []int64) (map[int64]model.ServiceDescriptor, error) {
	if s.resolveFn != nil {
		return s.resolveFn(ctx, ids)
	}
	return nil, nil
}

type stubWalletRepository struct {
	summaryFn      func(context.Context, int64) (*model.WalletSummary, error)
	topUpFn        func(context.Context, int64, decimal.Decimal, string) error
	transactionsFn func(context.Context, int64) ([]model.WalletTransaction, error)
}

func (s stubWalletRepository) Summary(ctx context.Context, userID int64) (*model.WalletSummary, error) {
	if s.summaryFn != nil {
		return s.summaryFn(ctx, userID)
	}
	return nil, domainErrors.ErrNotFound
}

func (s stubWalletRepository) TopUp(ctx context.Context, userID int64, amount decimal.Decimal, currency string) error {
	if s.topUpFn != nil {
		return s.topUpFn(ctx, userID, amount, currency)
	}
	return nil
}

func (s stubWalletRepository) Transactions(ctx context.Context, userID int64) ([]model.WalletTransaction, error) {
	if s.transactionsFn != nil {
		return s.transactionsFn(ctx, userID)
	}
	return nil, nil
}

type stubOrderRepository struct {
	createBatchFn func(context.Context, int64, string, []model.NewOrder, decimal.Decimal, string) error
	listByUserFn  func(context.Context, int64) ([]model.Order, error)
	listByBatchFn func(context.Context, int64, string) ([]model.Order, error)
	selectFn      func(context.Context, int) ([]model.Order, error)
	updateFn      func(context.Context, int64, model.OrderStatus, *string) error
}

func (s stubOrderRepository) CreateBatch(ctx context.Context, userID int64, batchID string, orders []model.NewOrder, total decimal.Decimal, currency string) error {
	if s.createBatchFn != nil {
		return s.createBatchFn(ctx, userID, batchID, orders, total, currency)
	}
	return nil
}

func (s stubOrderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.listByUserFn != nil {
		return s.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (s stubOrderRepository) ListByBatch(ctx context.Context, userID int64, batchID string) ([]model.Order, error) {
	if s.listByBatchFn != nil {
		return s.listByBatchFn(ctx, userID, batchID)
	}
	return nil, nil
}

func (s stubOrderRepository) SelectBatchForDispatch(ctx context.Context, limit int) ([]model.Order, error) {
	if s.selectFn != nil {
		return s.selectFn(ctx, limit)
	}
	return nil, nil
}

func (s stubOrderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, providerOrderID *string) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, orderID, status, providerOrderID)
	}
	return nil
}

type stubRateProvider struct {
	fetchFn func(context.Context) (model.RateTable, error)
}

func (s stubRateProvider) Fetch(ctx context.Context) (model.RateTable, error) {
	if s.fetchFn != nil {
		return s.fetchFn(ctx)
	}
	return model.RateTable{
		Base: "USD",
		Rates: map[string]decimal.Decimal{
			"BDT": decimal.RequireFromString("121.52"),
		},
	}, nil
}

type hasherStub struct {
	hashFn    func(string) (string, error)
	compareFn func(string, string) error
}

func (h hasherStub) Hash(password string) (string, error) {
	if h.hashFn != nil {
		return h.hashFn(password)
	}
	return "hash:" + password, nil
}

func (h hasherStub) Compare(hash, password string) error {
	if h.compareFn != nil {
		return h.compareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type strategyStub struct {
	issueFn func(int64) (string, error)
	parseFn func(string) (int64, error)
}

func (s strategyStub) IssueToken(userID int64) (string, error) {
	if s.issueFn != nil {
		return s.issueFn(userID)
	}
	return "token", nil
}

func (s strategyStub) ParseToken(token string) (int64, error) {
	if s.parseFn != nil {
		return s.parseFn(token)
	}
	return 1, nil
}

func (s strategyStub) Name() string { return "stub" }
