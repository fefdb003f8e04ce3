package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/boostlane/panel/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// CreateBatch inserts every order of the batch and debits the wallet for
	// the total charge inside a single transaction.
	CreateBatch(ctx context.Context, userID int64, batchID string, orders []model.NewOrder, total decimal.Decimal, currency string) error
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	ListByBatch(ctx context.Context, userID int64, batchID string) ([]model.Order, error)
	SelectBatchForDispatch(ctx context.Context, limit int) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, providerOrderID *string) error
}
