// Package sheet reads cashflow ledgers out of spreadsheets.
//
// Workbooks (.xlsx, .xlsm), CSV and JSON files are supported. Every reader
// returns raw fundnav.Row values keyed by column header, validation is left to
// fundnav.ValidateRecords.
package sheet

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/fundnav"
)

// ErrMissingColumn is returned when a required column header is absent.
var ErrMissingColumn = errors.New("missing column")

// Options tune the readers.
type Options struct {
	// Sheet is the workbook sheet to read, the first one when empty.
	Sheet string
	// JSONPath selects the row objects in a JSON document, "$[*]" when empty.
	JSONPath string
}

// Open reads the rows of the ledger file at 'path', choosing the reader from
// the file extension.
func Open(path string, opts Options) ([]fundnav.Row, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("input file %q: %w", path, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("input file %q: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return ReadWorkbook(path, opts.Sheet)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadCSV(f)
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return ReadJSON(data, opts.JSONPath)
	default:
		return nil, fmt.Errorf("unsupported input format %q for %q", ext, path)
	}
}

// checkHeader returns the position of each required column in 'header'.
func checkHeader(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	for _, col := range fundnav.Columns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, col)
		}
	}
	return index, nil
}

// blank returns true if all cells are empty.
func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
