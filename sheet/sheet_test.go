package sheet

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/etnz/fundnav"
	"github.com/etnz/fundnav/date"
	"github.com/xuri/excelize/v2"
)

func header() []any {
	h := make([]any, len(fundnav.Columns))
	for i, c := range fundnav.Columns {
		h[i] = c
	}
	return h
}

// writeWorkbook creates a workbook in a temp dir with 'lines' under the header.
func writeWorkbook(t *testing.T, lines map[int][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	h := header()
	if err := f.SetSheetRow("Sheet1", "A1", &h); err != nil {
		t.Fatal(err)
	}
	for n, line := range lines {
		cell, err := excelize.CoordinatesToCellName(1, n)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &line); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "ledger.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadWorkbook(t *testing.T) {
	path := writeWorkbook(t, map[int][]any{
		2: {1, "Fund I", time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC), "Investment", "GPB", -100.0, -115.0, "EUR"},
		// row 3 is blank.
		4: {2, "Fund I", "31/12/2025", "Interest", "GBP", 2.5, 2.875, "EUR"},
	})

	rows, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Open() = %d rows, want 2", len(rows))
	}
	if _, ok := rows[0][fundnav.ColDate].(time.Time); !ok {
		t.Errorf("Date cell = %T, want time.Time", rows[0][fundnav.ColDate])
	}

	records, err := fundnav.ValidateRecords(rows)
	if err != nil {
		t.Fatalf("ValidateRecords() unexpected error: %v", err)
	}
	if got := records[0].When(); got != date.MustParse("2025-09-30") {
		t.Errorf("first date = %s, want 2025-09-30", got)
	}
	if got := records[0].LocalCurrency(); got != "GBP" {
		t.Errorf("first currency = %s, want GBP", got)
	}
	if got := records[1].When(); got != date.MustParse("2025-12-31") {
		t.Errorf("second date = %s, want 2025-12-31", got)
	}
	if got := records[1].AmountLocal(); got != 2.5 {
		t.Errorf("second amount = %g, want 2.5", got)
	}
}

func TestReadWorkbook_UnknownSheet(t *testing.T) {
	path := writeWorkbook(t, nil)
	if _, err := Open(path, Options{Sheet: "Nope"}); err == nil {
		t.Error("Open() want an error for an unknown sheet, got nil")
	}
}

func TestReadCSV(t *testing.T) {
	input := "\ufeffID,Fund Name,Date,Cashflow Type,Local Currency,Cashflow Amount Local,Cashflow Amount Base,Base Currency,Comment\n" +
		"1,Fund I,30/09/2025,Investment,GBP,-100,-115,EUR,first\n" +
		",,,,,,,,\n" +
		"2,Fund I,`2025-12-31`,Interest,GBP,2.5,2.875,EUR,\n"
	rows, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV() unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("ReadCSV() = %d rows, want 2", len(rows))
	}
	if got := rows[1][fundnav.ColDate]; got != "`2025-12-31`" {
		t.Errorf("Date = %v", got)
	}
	if _, err := fundnav.ValidateRecords(rows); err != nil {
		t.Errorf("ValidateRecords() unexpected error: %v", err)
	}
}

func TestReadCSV_MissingColumn(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("ID,Fund Name,Date\n1,Fund I,2025-01-01\n"))
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("ReadCSV() error = %v, want %v", err, ErrMissingColumn)
	}
	if !strings.Contains(err.Error(), "Cashflow Type") {
		t.Errorf("ReadCSV() error = %q, want it to name the column", err)
	}
}

func TestReadJSON(t *testing.T) {
	doc := `{"fund": "Fund I", "cashflows": [
		{"ID": 1, "Fund Name": "Fund I", "Date": "2025-09-30", "Cashflow Type": "Investment", "Local Currency": "GBP",
		 "Cashflow Amount Local": -100, "Cashflow Amount Base": -115, "Base Currency": "EUR"},
		{"ID": 2, "Fund Name": "Fund I", "Date": "2025-12-31", "Cashflow Type": "Interest", "Local Currency": "GBP",
		 "Cashflow Amount Local": 2.5, "Cashflow Amount Base": 2.875, "Base Currency": "EUR"}
	]}`
	rows, err := ReadJSON([]byte(doc), "$.cashflows[*]")
	if err != nil {
		t.Fatalf("ReadJSON() unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("ReadJSON() = %d rows, want 2", len(rows))
	}
	records, err := fundnav.ValidateRecords(rows)
	if err != nil {
		t.Fatalf("ValidateRecords() unexpected error: %v", err)
	}
	if records[1].ID() != 2 {
		t.Errorf("ID = %d, want 2", records[1].ID())
	}

	if _, err := ReadJSON([]byte(`[{"ID": 1}]`), ""); !errors.Is(err, ErrMissingColumn) {
		t.Errorf("ReadJSON() error = %v, want %v", err, ErrMissingColumn)
	}
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := Open(filepath.Join(dir, "missing.xlsx"), Options{})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Open(missing) error = %v, want %v", err, fs.ErrNotExist)
	}

	other := filepath.Join(dir, "ledger.txt")
	if err := os.WriteFile(other, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(other, Options{}); err == nil {
		t.Error("Open(.txt) want an error, got nil")
	}
}
