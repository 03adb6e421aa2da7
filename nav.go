package fundnav

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/etnz/fundnav/date"
)

// snapTolerance is the magnitude under which a NAV is considered exactly zero.
const snapTolerance = 1e-6

var (
	ErrNoNAV = errors.New("no NAV on date")
	ErrNoIRR = errors.New("no IRR for currency")
)

// NAVAt returns the present value on 'on' of every flow dated on or after 'on',
// discounted at 'irr'.
//
// Values smaller than 1e-6 in magnitude are returned as exactly 0.
func NAVAt(flows *date.History[float64], on date.Date, irr float64) float64 {
	nav := 0.0
	for day, v := range flows.Since(on) {
		nav += v / math.Pow(1+irr, float64(day.Sub(on))/DaysInYear)
	}
	if math.Abs(nav) < snapTolerance {
		return 0
	}
	return nav
}

// NAVSchedule is the NAV of a single currency at each of its cashflow dates.
type NAVSchedule struct {
	currency string
	irr      float64
	points   date.History[float64]
}

// NewNAVSchedule computes the schedule of 'flows' discounted at 'irr'.
func NewNAVSchedule(currency string, flows *date.History[float64], irr float64) *NAVSchedule {
	s := &NAVSchedule{currency: currency, irr: irr}
	for day := range flows.Values() {
		s.points.Append(day, NAVAt(flows, day, irr))
	}
	return s
}

func (s *NAVSchedule) Currency() string { return s.currency }
func (s *NAVSchedule) IRR() float64     { return s.irr }
func (s *NAVSchedule) Len() int         { return s.points.Len() }

// Dates returns the NAV dates in ascending order.
func (s *NAVSchedule) Dates() []date.Date { return s.points.Days() }

// Values iterates over date/NAV pairs in ascending date order.
func (s *NAVSchedule) Values() iter.Seq2[date.Date, float64] { return s.points.Values() }

// At returns the NAV on 'day'.
func (s *NAVSchedule) At(day date.Date) (float64, error) {
	v, ok := s.points.Get(day)
	if !ok {
		return 0, fmt.Errorf("%w %s in %s schedule", ErrNoNAV, day, s.currency)
	}
	return v, nil
}

// GenerateNAVSchedules builds the NAV schedule of every ledger currency,
// discounted at that currency's IRR.
func GenerateNAVSchedules(l *Ledger, irrs map[string]float64) (map[string]*NAVSchedule, error) {
	schedules := make(map[string]*NAVSchedule)
	for _, cur := range l.Currencies() {
		irr, ok := irrs[cur]
		if !ok {
			return nil, fmt.Errorf("cannot build NAV schedule: %w %s", ErrNoIRR, cur)
		}
		schedules[cur] = NewNAVSchedule(cur, l.LocalFlows(cur), irr)
	}
	return schedules, nil
}
