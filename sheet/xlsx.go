package sheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/fundnav"
	"github.com/xuri/excelize/v2"
)

// ReadWorkbook reads the rows of 'sheet' in the workbook at 'path', or of the
// first sheet when 'sheet' is empty.
//
// Cells are read raw: numbers become float64, and serial numbers in the Date
// column are converted to time.Time.
func ReadWorkbook(path, sheet string) ([]fundnav.Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open workbook %q: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %q has no sheet", path)
		}
		sheet = sheets[0]
	}

	cells, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q of %q: %w", sheet, path, err)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("sheet %q of %q is empty", sheet, path)
	}
	index, err := checkHeader(cells[0])
	if err != nil {
		return nil, fmt.Errorf("sheet %q of %q: %w", sheet, path, err)
	}

	var rows []fundnav.Row
	for i, line := range cells[1:] {
		if blank(line) {
			continue
		}
		row := make(fundnav.Row, len(fundnav.Columns))
		for _, col := range fundnav.Columns {
			var raw string
			if j := index[col]; j < len(line) {
				raw = strings.TrimSpace(line[j])
			}
			v, err := cellValue(col, raw)
			if err != nil {
				return nil, fmt.Errorf("sheet %q of %q row %d: %w", sheet, path, i+2, err)
			}
			row[col] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// cellValue converts a raw cell into the loosely typed value of a Row.
func cellValue(col, raw string) (any, error) {
	num, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw, nil
	}
	if col == fundnav.ColDate {
		t, err := excelize.ExcelDateToTime(num, false)
		if err != nil {
			return nil, fmt.Errorf("invalid date serial %q: %w", raw, err)
		}
		return t, nil
	}
	return num, nil
}
