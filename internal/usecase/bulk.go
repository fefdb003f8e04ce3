package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/boostlane/panel/internal/bulkorder"
	domainErrors "github.com/boostlane/panel/internal/domain/errors"
	"github.com/boostlane/panel/internal/domain/model"
	"github.com/boostlane/panel/internal/domain/repository"
)

// RateProvider supplies a fresh rate table for each validation pass.
type RateProvider interface {
	Fetch(ctx context.Context) (model.RateTable, error)
}

// Preview couples one validation pass with its balance verdict.
type Preview struct {
	Result  *bulkorder.ValidationResult
	Balance bulkorder.BalanceCheckResult
}

// SubmissionReceipt summarizes a persisted batch.
type SubmissionReceipt struct {
	BatchID       string
	OrdersCreated int
	TotalCost     decimal.Decimal
	Currency      string
	InvalidLines  []bulkorder.InvalidOrderLine
}

// BulkOrderUseCase drives the mass order flow: validate pasted text against
// the live catalog and rates, check the wallet, and persist accepted batches.
type BulkOrderUseCase struct {
	pipeline *bulkorder.Pipeline
	rates    RateProvider
	users    repository.UserRepository
	wallets  repository.WalletRepository
	orders   repository.OrderRepository

	mu       sync.Mutex
	sessions map[int64]*bulkorder.Session

	now func() time.Time
}

// NewBulkOrderUseCase constructs BulkOrderUseCase. The catalog repository
// doubles as the pipeline's service resolver.
func NewBulkOrderUseCase(catalog repository.CatalogRepository, rates RateProvider, users repository.UserRepository, wallets repository.WalletRepository, orders repository.OrderRepository) *BulkOrderUseCase {
	return &BulkOrderUseCase{
		pipeline: bulkorder.NewPipeline(catalog, bulkorder.RateTableConverter{}),
		rates:    rates,
		users:    users,
		wallets:  wallets,
		orders:   orders,
		sessions: make(map[int64]*bulkorder.Session),
		now:      time.Now,
	}
}

// Preview runs one validation pass over the pasted text. Passes are sequenced
// per user so a slow pass that resolves after a newer one never overwrites
// the fresher result; the latest accepted result is returned in that case.
func (u *BulkOrderUseCase) Preview(ctx context.Context, userID int64, text string) (*Preview, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	session := u.session(userID)
	seq := session.Begin()

	rates, err := u.rates.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	result, err := u.pipeline.Run(ctx, bulkorder.Input{
		Text:         text,
		UserCurrency: usr.Currency,
		Rates:        rates,
	})
	if err != nil {
		return nil, err
	}

	if !session.Commit(seq, result) {
		if latest := session.Latest(); latest != nil {
			result = latest
		}
	}

	available := decimal.Zero
	if summary, err := u.wallets.Summary(ctx, userID); err == nil {
		available = summary.Balance
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	return &Preview{
		Result:  result,
		Balance: bulkorder.CheckBalance(result, available),
	}, nil
}

// Submit revalidates the text and persists the batch. The wallet debit and
// all order inserts happen in one transaction; a batch with no valid lines
// or an insufficient wallet is rejected before touching storage.
func (u *BulkOrderUseCase) Submit(ctx context.Context, userID int64, text string) (*SubmissionReceipt, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	rates, err := u.rates.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	result, err := u.pipeline.Run(ctx, bulkorder.Input{
		Text:         text,
		UserCurrency: usr.Currency,
		Rates:        rates,
	})
	if err != nil {
		return nil, err
	}

	if len(result.ValidOrders) == 0 {
		return nil, domainErrors.ErrEmptyBatch
	}

	batchID := bulkorder.NewBatchID(userID, u.now())
	submission := bulkorder.BuildSubmission(result, batchID)

	newOrders := make([]model.NewOrder, 0, len(submission.Orders))
	for _, order := range result.ValidOrders {
		newOrders = append(newOrders, model.NewOrder{
			ServiceID: order.ServiceID,
			Link:      order.Link,
			Quantity:  order.Quantity,
			Charge:    order.PriceInUserCurrency,
			Currency:  result.UserCurrency,
		})
	}

	total := result.TotalForDisplay()
	if err := u.orders.CreateBatch(ctx, userID, batchID, newOrders, total, result.UserCurrency); err != nil {
		return nil, err
	}

	return &SubmissionReceipt{
		BatchID:       batchID,
		OrdersCreated: len(newOrders),
		TotalCost:     total,
		Currency:      result.UserCurrency,
		InvalidLines:  result.InvalidOrders,
	}, nil
}

func (u *BulkOrderUseCase) session(userID int64) *bulkorder.Session {
	u.mu.Lock()
	defer u.mu.Unlock()
	session, ok := u.sessions[userID]
	if !ok {
		session = bulkorder.NewSession()
		u.sessions[userID] = session
	}
	return session
}
