package bulkorder

import (
	"fmt"
	"time"
)

// SubmissionOrder is one order in the wire format of the mass order endpoint.
type SubmissionOrder struct {
	ServiceID int64  `json:"serviceId"`
	Link      string `json:"link"`
	Quantity  int    `json:"quantity"`
	BatchID   string `json:"batchId"`
}

// BatchSubmission is the canonical payload handed to order creation.
type BatchSubmission struct {
	BatchID string            `json:"batchId"`
	Orders  []SubmissionOrder `json:"orders"`
}

// NewBatchID generates a batch identifier from submission time and user.
// A fresh id is issued per submit attempt and never reused across retries.
func NewBatchID(userID int64, now time.Time) string {
	return fmt.Sprintf("B%d-U%d", now.UnixMilli(), userID)
}

// BuildSubmission converts the valid orders of a result into the submission
// payload. Invalid orders are never submitted. Content is deterministic for a
// given result; only the batch id varies between attempts.
func BuildSubmission(result *ValidationResult, batchID string) BatchSubmission {
	orders := make([]SubmissionOrder, 0, len(result.ValidOrders))
	for _, order := range result.ValidOrders {
		orders = append(orders, SubmissionOrder{
			ServiceID: order.ServiceID,
			Link:      order.Link,
			Quantity:  order.Quantity,
			BatchID:   batchID,
		})
	}
	return BatchSubmission{BatchID: batchID, Orders: orders}
}
