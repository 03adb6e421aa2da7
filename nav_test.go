package fundnav

import (
	"errors"
	"testing"

	"github.com/etnz/fundnav/date"
)

func TestGenerateNAVSchedules(t *testing.T) {
	l := NewLedger("Fund I", scenario())
	irrs, err := CurrencyIRRs(l)
	if err != nil {
		t.Fatalf("CurrencyIRRs() unexpected error: %v", err)
	}
	schedules, err := GenerateNAVSchedules(l, irrs)
	if err != nil {
		t.Fatalf("GenerateNAVSchedules() unexpected error: %v", err)
	}

	s, ok := schedules["GBP"]
	if !ok {
		t.Fatalf("GenerateNAVSchedules() = %v, want a GBP schedule", schedules)
	}
	if s.Len() != 3 {
		t.Fatalf("GBP schedule has %d dates, want 3", s.Len())
	}

	testCases := []struct {
		on   date.Date
		want float64
	}{
		{t0, 0},
		{t1, 101.271546},
		{t2, 100},
	}
	for _, tc := range testCases {
		got, err := s.At(tc.on)
		if err != nil {
			t.Errorf("At(%s) unexpected error: %v", tc.on, err)
			continue
		}
		assertNear(t, "NAV at "+tc.on.String(), got, tc.want, 1e-6)
	}

	// boundaries are exact.
	if got, _ := s.At(t0); got != 0 {
		t.Errorf("NAV at first date = %g, want exactly 0", got)
	}
	if got, _ := s.At(t2); got != 100 {
		t.Errorf("NAV at last date = %g, want exactly 100", got)
	}
}

// TestNAVBoundaries checks first and last NAV of several currencies.
func TestNAVBoundaries(t *testing.T) {
	d := date.MustParse
	l := NewLedger("Fund I", []CashflowRecord{
		GBP(1, t0, Investment, -100),
		GBP(2, t1, Interest, 2.5),
		GBP(3, t2, PrincipalRepayment, 100),
		NewCashflowRecord(4, "Fund I", d("2024-02-10"), Investment, "USD", -1000, -920),
		NewCashflowRecord(5, "Fund I", d("2024-02-10"), Investment, "USD", -500, -460),
		NewCashflowRecord(6, "Fund I", d("2024-08-01"), Interest, "USD", 40, 37),
		NewCashflowRecord(7, "Fund I", d("2025-02-10"), Interest, "USD", 40, 37),
		NewCashflowRecord(8, "Fund I", d("2025-07-15"), PrincipalRepayment, "USD", 1200, 1100),
		NewCashflowRecord(9, "Fund I", d("2025-07-15"), Interest, "USD", 410, 376),
	})
	irrs, err := CurrencyIRRs(l)
	if err != nil {
		t.Fatalf("CurrencyIRRs() unexpected error: %v", err)
	}
	schedules, err := GenerateNAVSchedules(l, irrs)
	if err != nil {
		t.Fatalf("GenerateNAVSchedules() unexpected error: %v", err)
	}
	for _, cur := range l.Currencies() {
		s := schedules[cur]
		days := s.Dates()
		first, last := days[0], days[len(days)-1]
		if got, _ := s.At(first); got != 0 {
			t.Errorf("%s NAV at %s = %g, want 0", cur, first, got)
		}
		flow, _ := l.LocalFlows(cur).Get(last)
		if got, _ := s.At(last); got != flow {
			t.Errorf("%s NAV at %s = %g, want %g", cur, last, got, flow)
		}
	}
	if got := schedules["USD"].Len(); got != 4 {
		t.Errorf("USD schedule has %d dates, want 4", got)
	}
}

func TestNAVAt(t *testing.T) {
	flows := new(date.History[float64])
	flows.Append(t0, -100).Append(t1, 2.5).Append(t2, 100)

	// after the last flow nothing remains.
	if got := NAVAt(flows, t2.Add(1), 0.05); got != 0 {
		t.Errorf("NAVAt(after last) = %g, want 0", got)
	}
	// zero rate is a plain sum.
	if got := NAVAt(flows, t1, 0); got != 102.5 {
		t.Errorf("NAVAt(t1, 0) = %g, want 102.5", got)
	}
	// noise is snapped.
	tiny := new(date.History[float64]).Append(t0, 5e-7)
	if got := NAVAt(tiny, t0, 0.1); got != 0 {
		t.Errorf("NAVAt(tiny) = %g, want 0", got)
	}
}

func TestNAVSchedule_Errors(t *testing.T) {
	l := NewLedger("Fund I", scenario())

	_, err := GenerateNAVSchedules(l, map[string]float64{})
	if !errors.Is(err, ErrNoIRR) {
		t.Errorf("GenerateNAVSchedules() error = %v, want %v", err, ErrNoIRR)
	}

	s := NewNAVSchedule("GBP", l.LocalFlows("GBP"), 0.05)
	missing := date.MustParse("2025-10-01")
	_, err = s.At(missing)
	if !errors.Is(err, ErrNoNAV) {
		t.Fatalf("At() error = %v, want %v", err, ErrNoNAV)
	}
	if !containsString(err.Error(), "2025-10-01") {
		t.Errorf("At() error = %q, want it to name the date", err)
	}
}
