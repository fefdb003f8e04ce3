package bulkorder

import "testing"

func TestTokenizeSplitsFields(t *testing.T) {
	records, invalid := Tokenize("42|https://instagram.com/user1|1000")
	if len(invalid) != 0 {
		t.Fatalf("unexpected invalid lines: %+v", invalid)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.LineNumber != 1 {
		t.Fatalf("expected line number 1, got %d", rec.LineNumber)
	}
	if rec.ServiceIDToken != "42" || rec.LinkToken != "https://instagram.com/user1" || rec.QuantityToken != "1000" {
		t.Fatalf("unexpected tokens: %+v", rec)
	}
}

func TestTokenizeDropsBlankLinesKeepingOriginalNumbers(t *testing.T) {
	text := "42|link|100\n\n   \n7|other|200\n"
	records, invalid := Tokenize(text)
	if len(invalid) != 0 {
		t.Fatalf("unexpected invalid lines: %+v", invalid)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].LineNumber != 1 || records[1].LineNumber != 4 {
		t.Fatalf("expected original line numbers 1 and 4, got %d and %d", records[0].LineNumber, records[1].LineNumber)
	}
}

func TestTokenizeRejectsWrongFieldCount(t *testing.T) {
	records, invalid := Tokenize("42|link")
	if len(records) != 0 {
		t.Fatalf("unexpected records: %+v", records)
	}
	if len(invalid) != 1 {
		t.Fatalf("expected 1 invalid line, got %d", len(invalid))
	}
	if invalid[0].ReasonCode != ReasonMalformedLine {
		t.Fatalf("expected %s, got %s", ReasonMalformedLine, invalid[0].ReasonCode)
	}
	if invalid[0].RawText != "42|link" {
		t.Fatalf("raw text must be preserved, got %q", invalid[0].RawText)
	}
}

func TestTokenizeRejectsExtraDelimiter(t *testing.T) {
	_, invalid := Tokenize("42|https://a.b/c|d|100")
	if len(invalid) != 1 || invalid[0].ReasonCode != ReasonMalformedLine {
		t.Fatalf("line with embedded delimiter must be malformed: %+v", invalid)
	}
}

func TestTokenizeHandlesCRLF(t *testing.T) {
	records, invalid := Tokenize("42|link|100\r\n7|other|200\r\n")
	if len(invalid) != 0 || len(records) != 2 {
		t.Fatalf("expected 2 clean records, got %d records %d invalid", len(records), len(invalid))
	}
	if records[0].QuantityToken != "100" {
		t.Fatalf("carriage return must be stripped, got %q", records[0].QuantityToken)
	}
}

func TestTokenizeEmptyInput(t *testing.T) {
	records, invalid := Tokenize("")
	if len(records) != 0 || len(invalid) != 0 {
		t.Fatalf("empty input must produce nothing, got %d/%d", len(records), len(invalid))
	}
}
