package fundnav

import (
	"math"
	"strings"
	"testing"

	"github.com/etnz/fundnav/date"
)

var (
	t0 = date.MustParse("2025-09-30")
	t1 = date.MustParse("2025-12-31")
	t2 = date.MustParse("2026-03-31")
)

// GBP is a helper for test to create a GBP record of "Fund I".
func GBP(id int, on date.Date, kind CashflowType, amount float64) CashflowRecord {
	return NewCashflowRecord(id, "Fund I", on, kind, "GBP", amount, amount*1.15)
}

// EURRecord is a helper for test to create a EUR record of "Fund I".
func EURRecord(id int, on date.Date, kind CashflowType, amount float64) CashflowRecord {
	return NewCashflowRecord(id, "Fund I", on, kind, "EUR", amount, amount)
}

// scenario is the three GBP flows of the reference case.
func scenario() []CashflowRecord {
	return []CashflowRecord{
		GBP(1, t0, Investment, -100),
		GBP(2, t1, Interest, 2.5),
		GBP(3, t2, PrincipalRepayment, 100),
	}
}

// row is a helper to create a valid raw row, with 'overrides' applied.
func row(overrides Row) Row {
	r := Row{
		ColID:           1,
		ColFundName:     "Fund I",
		ColDate:         "30/09/2025",
		ColCashflowType: "Investment",
		ColLocalCcy:     "GBP",
		ColAmountLocal:  -100.0,
		ColAmountBase:   -115.0,
		ColBaseCcy:      "EUR",
	}
	for k, v := range overrides {
		r[k] = v
	}
	return r
}

func assertNear(t *testing.T, what string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %.9f, want %.9f (±%g)", what, got, want, tol)
	}
}

func containsString(s, sub string) bool { return strings.Contains(s, sub) }
