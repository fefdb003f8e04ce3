package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes the dispatch lifecycle of a placed order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusFailed     OrderStatus = "FAILED"
)

// Order is a single persisted order belonging to a submitted batch.
type Order struct {
	ID              int64
	UserID          int64
	BatchID         string
	ServiceID       int64
	Link            string
	Quantity        int
	Charge          decimal.Decimal
	Currency        string
	Status          OrderStatus
	ProviderOrderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewOrder carries the fields needed to insert one order of a batch.
type NewOrder struct {
	ServiceID int64
	Link      string
	Quantity  int
	Charge    decimal.Decimal
	Currency  string
}
