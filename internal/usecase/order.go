package usecase

import (
	"context"

	"github.com/boostlane/panel/internal/domain/model"
	"github.com/boostlane/panel/internal/domain/repository"
)

// OrderUseCase exposes persisted orders and their dispatch lifecycle.
type OrderUseCase struct {
	orders repository.OrderRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders}
}

// ListByUser returns orders sorted by creation time.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// ListByBatch returns the orders of one submitted batch.
func (u *OrderUseCase) ListByBatch(ctx context.Context, userID int64, batchID string) ([]model.Order, error) {
	return u.orders.ListByBatch(ctx, userID, batchID)
}

// SelectBatchForDispatch returns pending orders to hand to the provider.
func (u *OrderUseCase) SelectBatchForDispatch(ctx context.Context, limit int) ([]model.Order, error) {
	return u.orders.SelectBatchForDispatch(ctx, limit)
}

// UpdateStatus persists dispatch status and provider order id.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, providerOrderID *string) error {
	return u.orders.UpdateStatus(ctx, orderID, status, providerOrderID)
}
