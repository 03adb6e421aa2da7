package fundnav

import (
	"reflect"
	"strings"
	"testing"

	"github.com/etnz/fundnav/date"
)

func TestFilterByFund(t *testing.T) {
	records := []CashflowRecord{
		GBP(3, t2, PrincipalRepayment, 100),
		NewCashflowRecord(10, "Fund II", t0, Investment, "USD", -10, -9),
		GBP(1, t0, Investment, -100),
		GBP(2, t1, Interest, 2.5),
	}

	l, err := FilterByFund(records, "Fund I")
	if err != nil {
		t.Fatalf("FilterByFund() unexpected error: %v", err)
	}
	if l.Fund() != "Fund I" || l.Len() != 3 {
		t.Fatalf("FilterByFund() = %s with %d records, want Fund I with 3", l.Fund(), l.Len())
	}
	var ids []int
	for _, r := range l.All() {
		ids = append(ids, r.ID())
	}
	if want := []int{1, 2, 3}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
	if got := l.Span(); got != (date.Range{From: t0, To: t2}) {
		t.Errorf("Span() = %s", got)
	}

	if got, want := Funds(records), []string{"Fund I", "Fund II"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Funds() = %v, want %v", got, want)
	}

	_, err = FilterByFund(records, "Fund III")
	if err == nil || !strings.Contains(err.Error(), `"Fund III" not found`) || !strings.Contains(err.Error(), "Fund II") {
		t.Errorf("FilterByFund(unknown) error = %v", err)
	}
	if _, err := FilterByFund(nil, "Fund I"); err == nil {
		t.Error("FilterByFund(nil) want an error, got nil")
	}
}

func TestLedger_Flows(t *testing.T) {
	l := NewLedger("Fund I", []CashflowRecord{
		GBP(1, t0, Investment, -100),
		GBP(2, t1, Interest, 2.5),
		GBP(3, t1, PrincipalRepayment, 50),
		EURRecord(4, t1, Investment, -20),
	})
	if got, want := l.Currencies(), []string{"EUR", "GBP"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Currencies() = %v, want %v", got, want)
	}
	if got := len(l.Records("GBP")); got != 3 {
		t.Errorf("Records(GBP) = %d, want 3", got)
	}

	gbp := l.LocalFlows("GBP")
	if got, _ := gbp.Get(t1); got != 52.5 {
		t.Errorf("GBP flow on %s = %g, want 52.5", t1, got)
	}
	base := l.BaseFlows()
	got, _ := base.Get(t1)
	assertNear(t, "base flow on "+t1.String(), got, 52.5*1.15-20, 1e-9)
	if l.BaseCurrency() != "EUR" {
		t.Errorf("BaseCurrency() = %q", l.BaseCurrency())
	}
}
