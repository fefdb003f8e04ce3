package test

import (
	"context"

	"github.com/shopspring/decimal"

	domainErrors "github.com/boostlane/panel/internal/domain/errors"
	"github.com/boostlane/panel/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users    map[string]*model.User
	ByID     map[int64]*model.User
	Next     int64
	Err      error
	Currency string
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash, currency string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash, Currency: currency}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	currency := s.Currency
	if currency == "" {
		currency = "USD"
	}
	return &model.User{ID: id, Login: "user", Currency: currency}, nil
}

// CatalogRepositoryStub resolves services from an in-memory map.
type CatalogRepositoryStub struct {
	Services  map[int64]model.ServiceDescriptor
	ListFn    func(context.Context) ([]model.ServiceDescriptor, error)
	ResolveFn func(context.Context, []int64) (map[int64]model.ServiceDescriptor, error)
}

// DefaultServices returns the catalog fixture shared by tests.
func DefaultServices() map[int64]model.ServiceDescriptor {
	return map[int64]model.ServiceDescriptor{
		101: {
			ID:              101,
			Name:            "Instagram Followers",
			Category:        "Instagram",
			RatePerThousand: decimal.RequireFromString("0.90"),
			NativeCurrency:  "USD",
			MinOrder:        100,
			MaxOrder:        10000,
		},
		205: {
			ID:              205,
			Name:            "YouTube Views",
			Category:        "YouTube",
			RatePerThousand: decimal.RequireFromString("1.20"),
			NativeCurrency:  "USD",
			MinOrder:        500,
			MaxOrder:        50000,
		},
	}
}

// List returns every configured service.
func (s *CatalogRepositoryStub) List(ctx context.Context) ([]model.ServiceDescriptor, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	services := s.Services
	if services == nil {
		services = DefaultServices()
	}
	result := make([]model.ServiceDescriptor, 0, len(services))
	for _, svc := range services {
		result = append(result, svc)
	}
	return result, nil
}

// ResolveMany returns the subset of configured services matching ids.
func (s *CatalogRepositoryStub) ResolveMany(ctx context.Context, ids []int64) (map[int64]model.ServiceDescriptor, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, ids)
	}
	services := s.Services
	if services == nil {
		services = DefaultServices()
	}
	result := make(map[int64]model.ServiceDescriptor, len(ids))
	for _, id := range ids {
		if svc, ok := services[id]; ok {
			result[id] = svc
		}
	}
	return result, nil
}

// OrderRepositoryStub allows tests to customize order persistence behaviour.
type OrderRepositoryStub struct {
	CreateBatchFn  func(context.Context, int64, string, []model.NewOrder, decimal.Decimal, string) error
	ListByUserFn   func(context.Context, int64) ([]model.Order, error)
	ListByBatchFn  func(context.Context, int64, string) ([]model.Order, error)
	SelectFn       func(context.Context, int) ([]model.Order, error)
	UpdateStatusFn func(context.Context, int64, model.OrderStatus, *string) error
}

// CreateBatch delegates to configured function or succeeds silently.
func (s *OrderRepositoryStub) CreateBatch(ctx context.Context, userID int64, batchID string, orders []model.NewOrder, total decimal.Decimal, currency string) error {
	if s.CreateBatchFn != nil {
		return s.CreateBatchFn(ctx, userID, batchID, orders, total, currency)
	}
	return nil
}

// ListByUser returns configured orders.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

// ListByBatch returns configured batch contents.
func (s *OrderRepositoryStub) ListByBatch(ctx context.Context, userID int64, batchID string) ([]model.Order, error) {
	if s.ListByBatchFn != nil {
		return s.ListByBatchFn(ctx, userID, batchID)
	}
	return nil, nil
}

// SelectBatchForDispatch returns configured dispatch candidates.
func (s *OrderRepositoryStub) SelectBatchForDispatch(ctx context.Context, limit int) ([]model.Order, error) {
	if s.SelectFn != nil {
		return s.SelectFn(ctx, limit)
	}
	return nil, nil
}

// UpdateStatus records status transitions through the override.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, providerOrderID *string) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status, providerOrderID)
	}
	return nil
}

// WalletRepositoryStub simulates wallet persistence.
type WalletRepositoryStub struct {
	SummaryFn      func(context.Context, int64) (*model.WalletSummary, error)
	TopUpFn        func(context.Context, int64, decimal.Decimal, string) error
	TransactionsFn func(context.Context, int64) ([]model.WalletTransaction, error)
}

// Summary returns configured wallet state or a funded default.
func (s *WalletRepositoryStub) Summary(ctx context.Context, userID int64) (*model.WalletSummary, error) {
	if s.SummaryFn != nil {
		return s.SummaryFn(ctx, userID)
	}
	return &model.WalletSummary{Balance: decimal.NewFromInt(100), Currency: "USD"}, nil
}

// TopUp delegates to configured function or succeeds silently.
func (s *WalletRepositoryStub) TopUp(ctx context.Context, userID int64, amount decimal.Decimal, currency string) error {
	if s.TopUpFn != nil {
		return s.TopUpFn(ctx, userID, amount, currency)
	}
	return nil
}

// Transactions returns configured ledger entries.
func (s *WalletRepositoryStub) Transactions(ctx context.Context, userID int64) ([]model.WalletTransaction, error) {
	if s.TransactionsFn != nil {
		return s.TransactionsFn(ctx, userID)
	}
	return nil, nil
}

// RateProviderStub serves a fixed rate table for tests.
type RateProviderStub struct {
	FetchFn func(context.Context) (model.RateTable, error)
	Table   *model.RateTable
	Err     error
}

// Fetch returns configured response or a USD-based default table.
func (s RateProviderStub) Fetch(ctx context.Context) (model.RateTable, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx)
	}
	if s.Err != nil {
		return model.RateTable{}, s.Err
	}
	if s.Table != nil {
		return *s.Table, nil
	}
	return model.RateTable{
		Base: "USD",
		Rates: map[string]decimal.Decimal{
			"BDT": decimal.RequireFromString("121.52"),
			"EUR": decimal.RequireFromString("0.92"),
		},
	}, nil
}
