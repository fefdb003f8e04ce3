package dto

import "time"

// OrderResponse describes one persisted order.
type OrderResponse struct {
	ID              int64     `json:"id"`
	BatchID         string    `json:"batch_id"`
	ServiceID       int64     `json:"service_id"`
	Link            string    `json:"link"`
	Quantity        int       `json:"quantity"`
	Charge          string    `json:"charge"`
	Currency        string    `json:"currency"`
	Status          string    `json:"status"`
	ProviderOrderID *string   `json:"provider_order_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
