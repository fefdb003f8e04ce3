package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/boostlane/panel/internal/adapter/provider"
	"github.com/boostlane/panel/internal/domain/model"
)

// PanelFacade exposes the subset of application functionality required by the worker.
type PanelFacade interface {
	OrdersForDispatch(ctx context.Context, limit int) ([]model.Order, error)
	PlaceOrder(ctx context.Context, order model.Order) (string, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus, providerOrderID *string) error
}

// OrderDispatcher forwards pending orders to the upstream provider concurrently.
type OrderDispatcher struct {
	facade       PanelFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewOrderDispatcher constructs the dispatch worker pool.
func NewOrderDispatcher(facade PanelFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *OrderDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &OrderDispatcher{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background dispatching.
func (d *OrderDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}

	d.wg.Add(1)
	go d.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (d *OrderDispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *OrderDispatcher) dispatch(ctx context.Context) {
	defer d.wg.Done()
	defer close(d.jobs)
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.fetchAndDispatch(ctx)
		}
	}
}

func (d *OrderDispatcher) fetchAndDispatch(ctx context.Context) {
	orders, err := d.facade.OrdersForDispatch(ctx, d.batchSize)
	if err != nil {
		d.logger.Error("fetch orders for dispatch failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case d.jobs <- order:
		}
	}
}

func (d *OrderDispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-d.jobs:
			if !ok {
				return
			}
			d.handleOrder(ctx, order)
		}
	}
}

// handleOrder places one order with the provider. Rejected orders are marked
// FAILED; transient failures put the order back to PENDING for the next poll.
func (d *OrderDispatcher) handleOrder(ctx context.Context, order model.Order) {
	providerOrderID, err := d.facade.PlaceOrder(ctx, order)
	if err != nil {
		switch e := err.(type) {
		case provider.TooManyRequestsError:
			d.logger.Warn("provider rate limited", slog.Duration("retry_after", e.RetryAfter))
			d.requeue(ctx, order)
			time.Sleep(e.RetryAfter)
		default:
			if errors.Is(err, provider.ErrOrderRejected) {
				if updateErr := d.facade.UpdateOrderStatus(ctx, order.ID, model.OrderStatusFailed, nil); updateErr != nil {
					d.logger.Error("mark order failed", slog.Int64("order_id", order.ID), slog.String("error", updateErr.Error()))
				}
				return
			}
			d.logger.Error("provider placement failed", slog.Int64("order_id", order.ID), slog.String("error", err.Error()))
			d.requeue(ctx, order)
		}
		return
	}

	if err := d.facade.UpdateOrderStatus(ctx, order.ID, model.OrderStatusInProgress, &providerOrderID); err != nil {
		d.logger.Error("update order status failed", slog.Int64("order_id", order.ID), slog.String("error", err.Error()))
	}
}

func (d *OrderDispatcher) requeue(ctx context.Context, order model.Order) {
	if err := d.facade.UpdateOrderStatus(ctx, order.ID, model.OrderStatusPending, nil); err != nil {
		d.logger.Error("requeue order failed", slog.Int64("order_id", order.ID), slog.String("error", err.Error()))
	}
}
