package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/fundnav"
)

// ReadCSV reads a ledger from CSV with a header row. All values are strings.
func ReadCSV(r io.Reader) ([]fundnav.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty CSV input")
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read CSV header: %w", err)
	}
	index, err := checkHeader(header)
	if err != nil {
		return nil, err
	}

	var rows []fundnav.Row
	for {
		line, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read CSV: %w", err)
		}
		if blank(line) {
			continue
		}
		row := make(fundnav.Row, len(fundnav.Columns))
		for _, col := range fundnav.Columns {
			if j := index[col]; j < len(line) {
				row[col] = strings.TrimSpace(line[j])
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
