package fundnav

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/etnz/fundnav/date"
)

// ErrInvalidRecord is wrapped by every record validation failure.
var ErrInvalidRecord = errors.New("invalid cashflow record")

// FieldError describes why a single field of a row was rejected.
type FieldError struct {
	Field  string
	Value  any
	Reason string
}

func (e FieldError) Error() string { return fmt.Sprintf("%s: %s", e.Field, e.Reason) }

// RecordError holds all the field failures of one row.
type RecordError struct {
	Row    int // zero based position of the row in its batch
	Fields []FieldError
}

func (e *RecordError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error())
	}
	return fmt.Sprintf("row %d: %d validation error(s): %s", e.Row, len(e.Fields), strings.Join(msgs, "; "))
}

func (e *RecordError) Unwrap() error { return ErrInvalidRecord }

// ValidateRecord validates and normalizes a raw row.
//
// Every field is checked, and all failures are reported in a single *RecordError.
func ValidateRecord(row Row) (CashflowRecord, error) {
	var r CashflowRecord
	var fails []FieldError
	fail := func(field string, value any, format string, args ...any) {
		fails = append(fails, FieldError{Field: field, Value: value, Reason: fmt.Sprintf(format, args...)})
	}

	if v, err := toInt(row[ColID]); err != nil {
		fail("ID", row[ColID], "%v", err)
	} else {
		r.id = v
	}

	if v, ok := toString(row[ColFundName]); !ok || v == "" {
		fail("Fund_Name", row[ColFundName], "missing fund name")
	} else {
		r.fund = v
	}

	if v, err := ParseDate(row[ColDate]); err != nil {
		fail("Date", row[ColDate], "%v", err)
	} else {
		r.on = v
	}

	kind := literal(row[ColCashflowType])
	if !ValidCashflowType(CashflowType(kind)) {
		fail("Cashflow_Type", row[ColCashflowType], "invalid Cashflow_Type: %q", kind)
	} else {
		r.kind = CashflowType(kind)
	}

	ccy := literal(row[ColLocalCcy])
	ccy = NormalizeCurrency(ccy)
	switch {
	case ValidCurrency(ccy):
		r.localCcy = ccy
	case ccy != "" && !KnownCurrency(ccy):
		fail("Local_Currency", row[ColLocalCcy], "invalid Local_Currency: %q is not an ISO 4217 code", ccy)
	default:
		fail("Local_Currency", row[ColLocalCcy], "invalid Local_Currency: %q", ccy)
	}

	if v, err := toFloat(row[ColAmountLocal]); err != nil {
		fail("Cashflow_Amount_Local", row[ColAmountLocal], "%v", err)
	} else {
		r.amountLocal = v
	}

	if v, err := toFloat(row[ColAmountBase]); err != nil {
		fail("Cashflow_Amount_Base", row[ColAmountBase], "%v", err)
	} else {
		r.amountBase = v
	}

	if base := literal(row[ColBaseCcy]); base != BaseCurrency {
		fail("Base_Currency", row[ColBaseCcy], "Base_Currency must be %s, got %q", BaseCurrency, base)
	} else {
		r.baseCcy = base
	}

	if len(fails) > 0 {
		return CashflowRecord{}, &RecordError{Fields: fails}
	}
	return r, nil
}

// ValidateRecords validates all rows in order and stops at the first invalid one.
//
// On failure no record is returned: a batch is either fully valid or rejected.
func ValidateRecords(rows []Row) ([]CashflowRecord, error) {
	records := make([]CashflowRecord, 0, len(rows))
	for i, row := range rows {
		rec, err := ValidateRecord(row)
		if err != nil {
			var rerr *RecordError
			if errors.As(err, &rerr) {
				rerr.Row = i
			}
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// ParseDate converts a loosely typed date value into a Date.
//
// It accepts time.Time, date.Date, or a free-form string. Strings are cleaned
// from stray backticks and parsed day first when ambiguous ("01/02/2025" is the
// 1st of February).
func ParseDate(value any) (date.Date, error) {
	switch v := value.(type) {
	case date.Date:
		return v, nil
	case time.Time:
		return date.FromTime(v), nil
	case *time.Time:
		if v == nil {
			return date.Date{}, errors.New("missing date")
		}
		return date.FromTime(*v), nil
	case string:
		cleaned := strings.TrimSpace(strings.ReplaceAll(v, "`", ""))
		if cleaned == "" {
			return date.Date{}, errors.New("missing date")
		}
		t, err := dateparse.ParseAny(cleaned, dateparse.PreferMonthFirst(false))
		if err != nil {
			return date.Date{}, fmt.Errorf("unparseable date %q: %w", v, err)
		}
		return date.FromTime(t), nil
	case nil:
		return date.Date{}, errors.New("missing date")
	default:
		return date.Date{}, fmt.Errorf("unsupported date value %v (%T)", value, value)
	}
}

func toString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v), true
	case nil:
		return "", false
	case fmt.Stringer:
		return v.String(), true
	default:
		return fmt.Sprint(v), true
	}
}

// literal returns the value as is, for fields compared against closed sets.
func literal(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(v), ",", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("not a number %q", v)
		}
		return f, nil
	case nil:
		return 0, errors.New("missing number")
	default:
		return 0, fmt.Errorf("unsupported number %v (%T)", value, value)
	}
}

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case int32:
		return int(v), nil
	}
	f, err := toFloat(value)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer %v", value)
	}
	return int(f), nil
}
