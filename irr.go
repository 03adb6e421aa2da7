package fundnav

import (
	"errors"
	"fmt"
	"math"

	"github.com/etnz/fundnav/date"
)

// DaysInYear is the day count convention used to annualize rates.
const DaysInYear = 365.0

var (
	ErrEmptySeries    = errors.New("cannot compute IRR of an empty series")
	ErrLengthMismatch = errors.New("cashflows and dates length mismatch")
	ErrNoConvergence  = errors.New("IRR did not converge")
)

// solver parameters.
const (
	newtonMaxIter = 100
	newtonTol     = 1e-9 // on |NPV|
	newtonStep    = 1e-15
	bisectMaxIter = 300
	bisectWidth   = 1e-12 // on the bracket width
	minRate       = -0.999999
	maxRate       = 100.0 // 10000% annual
	acceptTol     = 1e-6  // |NPV| at the returned rate
)

// IRR computes the annualized internal rate of return of dated cashflows.
//
// Cashflows on the same date are summed first. The rate r solves
//
//	Σ CF_i / (1+r)^((d_i - d_0)/365) = 0
//
// where d_0 is the earliest date. The series must change sign, otherwise no
// rate exists and ErrNoConvergence is returned.
func IRR(cashflows []float64, dates []date.Date) (float64, error) {
	if len(cashflows) == 0 && len(dates) == 0 {
		return 0, ErrEmptySeries
	}
	if len(cashflows) != len(dates) {
		return 0, fmt.Errorf("%w: %d cashflows for %d dates", ErrLengthMismatch, len(cashflows), len(dates))
	}
	flows := new(date.History[float64])
	for i, on := range dates {
		flows.AppendAdd(on, cashflows[i])
	}
	return IRROf(flows)
}

// IRROf computes the IRR of an already aggregated series of flows.
func IRROf(flows *date.History[float64]) (float64, error) {
	if flows.Len() == 0 {
		return 0, ErrEmptySeries
	}
	hasNeg, hasPos := false, false
	for _, v := range flows.Values() {
		if v < 0 {
			hasNeg = true
		}
		if v > 0 {
			hasPos = true
		}
	}
	if !hasNeg || !hasPos {
		return 0, fmt.Errorf("%w: cashflows never change sign", ErrNoConvergence)
	}

	years, amounts := yearFractions(flows)
	tol := tolerance(amounts)
	rate, ok := newton(years, amounts, tol)
	if !ok || math.Abs(npv(rate, years, amounts)) > acceptTol*tol {
		rate, ok = bisect(years, amounts)
	}
	if !ok {
		return 0, fmt.Errorf("%w: no root in [%g, %g]", ErrNoConvergence, minRate, maxRate)
	}
	if npv := npv(rate, years, amounts); math.IsNaN(npv) || math.Abs(npv) > acceptTol*tol {
		return 0, fmt.Errorf("%w: residual NPV %g at rate %g", ErrNoConvergence, npv, rate)
	}
	return rate, nil
}

// NPV returns the net present value of 'flows' at their earliest date.
func NPV(rate float64, flows *date.History[float64]) float64 {
	years, amounts := yearFractions(flows)
	return npv(rate, years, amounts)
}

// tolerance returns the factor applied to absolute NPV tolerances: 1 for
// amounts up to a million, growing linearly above, where float64 can no longer
// resolve 1e-6 absolute.
func tolerance(amounts []float64) float64 {
	scale := 0.0
	for _, a := range amounts {
		scale = math.Max(scale, math.Abs(a))
	}
	return math.Max(1, scale*1e-6)
}

// yearFractions splits the flows into year offsets from the first date and amounts.
func yearFractions(flows *date.History[float64]) (years, amounts []float64) {
	first, _ := flows.Earliest()
	years = make([]float64, 0, flows.Len())
	amounts = make([]float64, 0, flows.Len())
	for on, v := range flows.Values() {
		years = append(years, float64(on.Sub(first))/DaysInYear)
		amounts = append(amounts, v)
	}
	return years, amounts
}

func npv(rate float64, years, amounts []float64) float64 {
	base := 1 + rate
	if base <= 0 {
		return math.NaN()
	}
	sum := 0.0
	for i, a := range amounts {
		sum += a / math.Pow(base, years[i])
	}
	return sum
}

// newton uses Newton-Raphson to find the rate r such that NPV(r) = 0.
func newton(years, amounts []float64, tol float64) (float64, bool) {
	// Initial guess: simple return, clamped to a reasonable range.
	invested, received := 0.0, 0.0
	for _, a := range amounts {
		if a < 0 {
			invested -= a
		} else {
			received += a
		}
	}
	rate := 0.1
	if simple := received/invested - 1; invested > 0 && simple > -0.9 && simple < 10 {
		rate = simple
	}

	for iter := 0; iter < newtonMaxIter; iter++ {
		base := 1 + rate
		value, deriv := 0.0, 0.0
		for i, a := range amounts {
			y := years[i]
			discount := math.Pow(base, y)
			value += a / discount
			if y != 0 {
				deriv -= y * a / (discount * base)
			}
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return 0, false
		}
		if math.Abs(value) < newtonTol*tol {
			return rate, true
		}
		if deriv == 0 {
			return 0, false
		}
		next := rate - value/deriv
		if next <= minRate {
			next = minRate
		}
		if next > maxRate {
			next = maxRate
		}
		if math.Abs(next-rate) < newtonStep*math.Max(1, math.Abs(rate)) {
			// a stalled step, pinned at a clamp, is not a root
			return next, math.Abs(npv(next, years, amounts)) <= acceptTol*tol
		}
		rate = next
	}
	return 0, false
}

// bisect is the fallback solver when Newton-Raphson did not converge.
func bisect(years, amounts []float64) (float64, bool) {
	lo, hi := minRate, maxRate
	npvLo, npvHi := npv(lo, years, amounts), npv(hi, years, amounts)
	if math.IsNaN(npvLo) || math.IsNaN(npvHi) || npvLo*npvHi > 0 {
		return 0, false
	}
	for iter := 0; iter < bisectMaxIter && hi-lo > bisectWidth; iter++ {
		mid := (lo + hi) / 2
		npvMid := npv(mid, years, amounts)
		if npvMid == 0 {
			return mid, true
		}
		if npvMid*npvLo < 0 {
			hi = mid
		} else {
			lo, npvLo = mid, npvMid
		}
	}
	return (lo + hi) / 2, true
}

// CurrencyIRRs computes one IRR per local currency, over local amounts.
func CurrencyIRRs(l *Ledger) (map[string]float64, error) {
	irrs := make(map[string]float64)
	for _, cur := range l.Currencies() {
		irr, err := IRROf(l.LocalFlows(cur))
		if err != nil {
			return nil, fmt.Errorf("IRR for currency %s: %w", cur, err)
		}
		irrs[cur] = irr
	}
	return irrs, nil
}

// FundIRR computes the IRR of the whole fund over base amounts.
func FundIRR(l *Ledger) (float64, error) {
	irr, err := IRROf(l.BaseFlows())
	if err != nil {
		return 0, fmt.Errorf("IRR for fund %q: %w", l.Fund(), err)
	}
	return irr, nil
}
