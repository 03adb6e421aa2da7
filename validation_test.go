package fundnav

import (
	"errors"
	"testing"
	"time"

	"github.com/etnz/fundnav/date"
)

func TestValidateRecord(t *testing.T) {
	rec, err := ValidateRecord(row(nil))
	if err != nil {
		t.Fatalf("ValidateRecord() unexpected error: %v", err)
	}
	if rec.ID() != 1 || rec.Fund() != "Fund I" || rec.When() != t0 || rec.Type() != Investment ||
		rec.LocalCurrency() != "GBP" || rec.AmountLocal() != -100 || rec.AmountBase() != -115 || rec.BaseCurrency() != "EUR" {
		t.Errorf("ValidateRecord() = %+v", rec)
	}
}

func TestValidateRecord_CurrencyCorrection(t *testing.T) {
	for _, code := range []string{"GPB", "GBP"} {
		rec, err := ValidateRecord(row(Row{ColLocalCcy: code}))
		if err != nil {
			t.Fatalf("ValidateRecord(%q) unexpected error: %v", code, err)
		}
		if got := rec.LocalCurrency(); got != "GBP" {
			t.Errorf("ValidateRecord(%q).LocalCurrency() = %q, want GBP", code, got)
		}
	}
	if got := NormalizeCurrency(NormalizeCurrency("GPB")); got != "GBP" {
		t.Errorf("NormalizeCurrency twice = %q, want GBP", got)
	}
}

func TestParseDate(t *testing.T) {
	want := date.MustParse("2025-02-01")
	testCases := []struct {
		name  string
		value any
	}{
		{"day first", "01/02/2025"},
		{"iso", "2025-02-01"},
		{"backticks", "`2025-02-01`"},
		{"padded", "  01/02/2025 "},
		{"time", time.Date(2025, 2, 1, 13, 30, 0, 0, time.UTC)},
		{"date", want},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDate(tc.value)
			if err != nil {
				t.Fatalf("ParseDate(%v) unexpected error: %v", tc.value, err)
			}
			if got != want {
				t.Errorf("ParseDate(%v) = %s, want %s", tc.value, got, want)
			}
		})
	}

	for _, bad := range []any{nil, "", "not a date", 3.5} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%v) want an error, got nil", bad)
		}
	}
}

func TestValidateRecord_Errors(t *testing.T) {
	testCases := []struct {
		name      string
		overrides Row
		field     string
		reason    string
	}{
		{"unknown type", Row{ColCashflowType: "Dividend"}, "Cashflow_Type", `invalid Cashflow_Type: "Dividend"`},
		{"unknown currency", Row{ColLocalCcy: "JPY"}, "Local_Currency", `invalid Local_Currency: "JPY"`},
		{"not a currency", Row{ColLocalCcy: "ABC"}, "Local_Currency", `invalid Local_Currency: "ABC" is not an ISO 4217 code`},
		{"padded type", Row{ColCashflowType: "Investment "}, "Cashflow_Type", `invalid Cashflow_Type: "Investment "`},
		{"padded currency", Row{ColLocalCcy: " GPB"}, "Local_Currency", `invalid Local_Currency: " GPB" is not an ISO 4217 code`},
		{"padded base", Row{ColBaseCcy: " EUR "}, "Base_Currency", `Base_Currency must be EUR, got " EUR "`},
		{"base not EUR", Row{ColBaseCcy: "USD"}, "Base_Currency", `Base_Currency must be EUR, got "USD"`},
		{"bad date", Row{ColDate: "yesterday"}, "Date", ""},
		{"missing fund", Row{ColFundName: ""}, "Fund_Name", "missing fund name"},
		{"fractional id", Row{ColID: 1.5}, "ID", ""},
		{"bad amount", Row{ColAmountLocal: "abc"}, "Cashflow_Amount_Local", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateRecord(row(tc.overrides))
			if !errors.Is(err, ErrInvalidRecord) {
				t.Fatalf("ValidateRecord() error = %v, want %v", err, ErrInvalidRecord)
			}
			var rerr *RecordError
			if !errors.As(err, &rerr) {
				t.Fatalf("ValidateRecord() error = %T, want *RecordError", err)
			}
			if len(rerr.Fields) != 1 {
				t.Fatalf("ValidateRecord() = %d field errors, want 1: %v", len(rerr.Fields), rerr)
			}
			f := rerr.Fields[0]
			if f.Field != tc.field {
				t.Errorf("field = %q, want %q", f.Field, tc.field)
			}
			if tc.reason != "" && f.Reason != tc.reason {
				t.Errorf("reason = %q, want %q", f.Reason, tc.reason)
			}
		})
	}
}

func TestValidateRecord_AllFieldsReported(t *testing.T) {
	_, err := ValidateRecord(row(Row{ColCashflowType: "X", ColLocalCcy: "XXX", ColBaseCcy: "GBP"}))
	var rerr *RecordError
	if !errors.As(err, &rerr) {
		t.Fatalf("ValidateRecord() error = %v, want *RecordError", err)
	}
	if len(rerr.Fields) != 3 {
		t.Errorf("ValidateRecord() = %d field errors, want 3: %v", len(rerr.Fields), rerr)
	}
}

func TestValidateRecords_StopsAtFirstInvalid(t *testing.T) {
	rows := []Row{
		row(nil),
		row(Row{ColID: 2, ColDate: "31/12/2025", ColCashflowType: "Interest"}),
		row(Row{ColID: 3, ColBaseCcy: "USD"}),
		row(Row{ColID: 4, ColLocalCcy: "JPY"}),
	}
	records, err := ValidateRecords(rows)
	if records != nil {
		t.Errorf("ValidateRecords() = %v, want no records", records)
	}
	var rerr *RecordError
	if !errors.As(err, &rerr) {
		t.Fatalf("ValidateRecords() error = %v, want *RecordError", err)
	}
	if rerr.Row != 2 {
		t.Errorf("failing row = %d, want 2", rerr.Row)
	}

	records, err = ValidateRecords(rows[:2])
	if err != nil {
		t.Fatalf("ValidateRecords() unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("ValidateRecords() = %d records, want 2", len(records))
	}
}

func TestValidateRecord_LooseNumbers(t *testing.T) {
	rec, err := ValidateRecord(row(Row{ColID: "7", ColAmountLocal: "1,250.50", ColAmountBase: int64(-3)}))
	if err != nil {
		t.Fatalf("ValidateRecord() unexpected error: %v", err)
	}
	if rec.ID() != 7 || rec.AmountLocal() != 1250.5 || rec.AmountBase() != -3 {
		t.Errorf("ValidateRecord() = %+v", rec)
	}
}
