package bulkorder

// ReasonCode identifies why a single input line was rejected.
type ReasonCode string

const (
	ReasonMalformedLine       ReasonCode = "MALFORMED_LINE"
	ReasonInvalidServiceID    ReasonCode = "INVALID_SERVICE_ID"
	ReasonInvalidQuantity     ReasonCode = "INVALID_QUANTITY"
	ReasonServiceNotFound     ReasonCode = "SERVICE_NOT_FOUND"
	ReasonQuantityOutOfRange  ReasonCode = "QUANTITY_OUT_OF_RANGE"
	ReasonCurrencyUnavailable ReasonCode = "CURRENCY_UNAVAILABLE"
)

// InvalidOrderLine captures a rejected line together with the reason.
// Rejected lines never abort the batch; they travel alongside valid orders.
type InvalidOrderLine struct {
	LineNumber    int
	RawText       string
	ReasonCode    ReasonCode
	ReasonMessage string
}
