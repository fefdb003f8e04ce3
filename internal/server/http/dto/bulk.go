package dto

// BulkOrderRequest carries the raw pasted order text.
type BulkOrderRequest struct {
	Orders string `json:"orders"`
}

// InvalidLineResponse describes one rejected input line.
type InvalidLineResponse struct {
	Line    int    `json:"line"`
	Text    string `json:"text"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PreviewLineResponse describes one accepted input line with its price.
type PreviewLineResponse struct {
	Line        int    `json:"line"`
	ServiceID   int64  `json:"service_id"`
	ServiceName string `json:"service_name"`
	Link        string `json:"link"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
}

// BalanceVerdictResponse reports whether the wallet covers the batch.
type BalanceVerdictResponse struct {
	Sufficient bool   `json:"sufficient"`
	Available  string `json:"available"`
	Required   string `json:"required"`
	Message    string `json:"message,omitempty"`
}

// PreviewResponse is the full validation verdict for pasted text.
type PreviewResponse struct {
	Valid    []PreviewLineResponse  `json:"valid"`
	Invalid  []InvalidLineResponse  `json:"invalid"`
	Total    string                 `json:"total"`
	Currency string                 `json:"currency"`
	Balance  BalanceVerdictResponse `json:"balance"`
}

// SubmitResponse acknowledges a persisted batch.
type SubmitResponse struct {
	BatchID       string                `json:"batch_id"`
	OrdersCreated int                   `json:"orders_created"`
	Total         string                `json:"total"`
	Currency      string                `json:"currency"`
	Invalid       []InvalidLineResponse `json:"invalid,omitempty"`
}
