package bulkorder

import (
	"fmt"
	"strings"
)

// delimiter separates the three fields of a bulk order line.
const delimiter = "|"

// fieldCount is the exact number of fields a well-formed line carries.
const fieldCount = 3

// CandidateRecord is one non-blank input line split into raw field tokens.
// LineNumber is 1-indexed against the original text, counting blank lines,
// so error messages map back to what the user sees.
type CandidateRecord struct {
	LineNumber     int
	RawText        string
	ServiceIDToken string
	LinkToken      string
	QuantityToken  string
}

// Tokenize splits raw multi-line input into candidate records. Blank and
// whitespace-only lines are silently dropped. Lines that do not split into
// exactly three fields are rejected immediately with MALFORMED_LINE.
func Tokenize(text string) ([]CandidateRecord, []InvalidOrderLine) {
	var records []CandidateRecord
	var invalid []InvalidOrderLine

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		number := i + 1
		parts := strings.Split(line, delimiter)
		if len(parts) != fieldCount {
			invalid = append(invalid, InvalidOrderLine{
				LineNumber:    number,
				RawText:       line,
				ReasonCode:    ReasonMalformedLine,
				ReasonMessage: fmt.Sprintf("expected %d fields separated by %q, got %d", fieldCount, delimiter, len(parts)),
			})
			continue
		}

		records = append(records, CandidateRecord{
			LineNumber:     number,
			RawText:        line,
			ServiceIDToken: parts[0],
			LinkToken:      parts[1],
			QuantityToken:  parts[2],
		})
	}

	return records, invalid
}
