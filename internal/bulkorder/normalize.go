package bulkorder

import (
	"fmt"
	"strconv"
	"strings"
)

// normalizedRecord is a candidate record with all three fields coerced into
// typed values, ready for catalog resolution and pricing.
type normalizedRecord struct {
	lineNumber int
	rawText    string
	serviceID  int64
	link       string
	quantity   int
}

// normalize trims and coerces the raw tokens of one candidate record.
// It returns exactly one of a normalized record or an invalid line.
func normalize(rec CandidateRecord) (*normalizedRecord, *InvalidOrderLine) {
	reject := func(code ReasonCode, message string) (*normalizedRecord, *InvalidOrderLine) {
		return nil, &InvalidOrderLine{
			LineNumber:    rec.LineNumber,
			RawText:       rec.RawText,
			ReasonCode:    code,
			ReasonMessage: message,
		}
	}

	serviceID, err := strconv.ParseInt(strings.TrimSpace(rec.ServiceIDToken), 10, 64)
	if err != nil || serviceID <= 0 {
		return reject(ReasonInvalidServiceID, fmt.Sprintf("service id %q is not a valid identifier", strings.TrimSpace(rec.ServiceIDToken)))
	}

	link := strings.TrimSpace(rec.LinkToken)
	if link == "" {
		return reject(ReasonMalformedLine, "link field is empty")
	}

	quantityToken := strings.TrimSpace(rec.QuantityToken)
	quantity, err := strconv.Atoi(quantityToken)
	if err != nil || quantity <= 0 {
		return reject(ReasonInvalidQuantity, fmt.Sprintf("quantity %q must be a positive integer", quantityToken))
	}

	return &normalizedRecord{
		lineNumber: rec.LineNumber,
		rawText:    rec.RawText,
		serviceID:  serviceID,
		link:       link,
		quantity:   quantity,
	}, nil
}
