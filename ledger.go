package fundnav

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"

	"github.com/etnz/fundnav/date"
)

// Ledger holds the validated cashflows of a single fund, sorted by date.
//
// A ledger may span several local currencies, but a single base currency.
type Ledger struct {
	fund    string
	records []CashflowRecord
}

// NewLedger returns a ledger over 'records'. Records on the same day keep their
// relative order.
func NewLedger(fund string, records []CashflowRecord) *Ledger {
	l := &Ledger{fund: fund, records: slices.Clone(records)}
	l.stableSort()
	return l
}

// stableSort sorts the ledger by record date. The sort is stable, meaning
// records on the same day maintain their original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.records, func(i, j int) bool {
		return l.records[i].When().Before(l.records[j].When())
	})
}

// Funds returns the sorted list of distinct fund names in 'records'.
func Funds(records []CashflowRecord) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		seen[r.Fund()] = struct{}{}
	}
	funds := slices.Collect(maps.Keys(seen))
	slices.Sort(funds)
	return funds
}

// FilterByFund returns the ledger of the records belonging to 'fund'.
func FilterByFund(records []CashflowRecord, fund string) (*Ledger, error) {
	if len(records) == 0 {
		return nil, errors.New("cannot filter an empty record set")
	}
	var kept []CashflowRecord
	for _, r := range records {
		if r.Fund() == fund {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("fund %q not found, available funds: %q", fund, Funds(records))
	}
	return NewLedger(fund, kept), nil
}

// Fund returns the fund name.
func (l *Ledger) Fund() string { return l.fund }

// Len returns the number of records.
func (l *Ledger) Len() int { return len(l.records) }

// All returns all the records in chronological order.
func (l *Ledger) All() []CashflowRecord { return slices.Clone(l.records) }

// Records returns the records in 'currency' in chronological order.
func (l *Ledger) Records(currency string) []CashflowRecord {
	var res []CashflowRecord
	for _, r := range l.records {
		if r.LocalCurrency() == currency {
			res = append(res, r)
		}
	}
	return res
}

// Currencies returns the sorted local currencies used in the ledger.
func (l *Ledger) Currencies() []string {
	seen := make(map[string]struct{})
	for _, r := range l.records {
		seen[r.LocalCurrency()] = struct{}{}
	}
	currencies := slices.Collect(maps.Keys(seen))
	slices.Sort(currencies)
	return currencies
}

// BaseCurrency returns the base currency of the ledger, or "" if it is empty.
func (l *Ledger) BaseCurrency() string {
	if len(l.records) == 0 {
		return ""
	}
	return l.records[0].BaseCurrency()
}

// Span returns the range from the first to the last cashflow date.
func (l *Ledger) Span() date.Range {
	if len(l.records) == 0 {
		return date.Range{}
	}
	return date.Range{From: l.records[0].When(), To: l.records[len(l.records)-1].When()}
}

// LocalFlows returns the net local amount per date for 'currency'.
func (l *Ledger) LocalFlows(currency string) *date.History[float64] {
	h := new(date.History[float64])
	for _, r := range l.records {
		if r.LocalCurrency() == currency {
			h.AppendAdd(r.When(), r.AmountLocal())
		}
	}
	return h
}

// BaseFlows returns the net base amount per date, all currencies together.
func (l *Ledger) BaseFlows() *date.History[float64] {
	h := new(date.History[float64])
	for _, r := range l.records {
		h.AppendAdd(r.When(), r.AmountBase())
	}
	return h
}
