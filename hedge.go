package fundnav

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/etnz/fundnav/date"
	"github.com/shopspring/decimal"
)

// Sell is the only direction of proposed forwards: the fund receives the
// foreign currency and sells it forward against the base currency.
const Sell = "Sell"

// ErrNoSchedule is returned when a hedge is requested for a currency without
// NAV schedule.
var ErrNoSchedule = errors.New("no NAV schedule for currency")

// ForwardTrade is a proposed FX forward hedging the NAV of a currency until
// the next NAV date.
type ForwardTrade struct {
	CurrencyPair     string // "GBP/EUR"
	TradeDate        date.Date
	DeliveryDate     date.Date
	Direction        string
	NotionalCurrency string
	NotionalAmount   decimal.Decimal // rounded to 2 decimals
}

// Notional returns the notional as Money.
func (t ForwardTrade) Notional() Money { return M(t.NotionalAmount, t.NotionalCurrency) }

func (t ForwardTrade) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("currency_pair", t.CurrencyPair)
	w.Append("trade_date", t.TradeDate)
	w.Append("delivery_date", t.DeliveryDate)
	w.Append("direction", t.Direction)
	w.Append("notional_currency", t.NotionalCurrency)
	w.Append("notional_amount", t.NotionalAmount)
	return w.MarshalJSON()
}

// HedgeOptions restricts the proposed trades.
type HedgeOptions struct {
	// Currencies to hedge. All non base currencies when empty.
	Currencies []string
	// Window keeps only the NAV dates it contains. A zero bound is unbounded.
	Window date.Range
}

// ProposeFXTrades proposes, for every non base currency, one forward per pair of
// consecutive NAV dates carrying a positive exposure.
//
// The exposure is the NAV at the delivery date, and the notional is that
// exposure discounted back to the trade date at the currency IRR. Trades are
// sorted by currency then trade date.
func ProposeFXTrades(schedules map[string]*NAVSchedule, l *Ledger, irrs map[string]float64, opts HedgeOptions) ([]ForwardTrade, error) {
	base := l.BaseCurrency()
	if base == "" {
		base = BaseCurrency
	}

	currencies := opts.Currencies
	if len(currencies) == 0 {
		for cur := range schedules {
			currencies = append(currencies, cur)
		}
	}
	currencies = slices.Clone(currencies)
	slices.Sort(currencies)
	currencies = slices.Compact(currencies)

	var trades []ForwardTrade
	for _, cur := range currencies {
		if cur == base {
			continue
		}
		schedule, ok := schedules[cur]
		if !ok {
			return nil, fmt.Errorf("cannot hedge: %w %s", ErrNoSchedule, cur)
		}
		irr, ok := irrs[cur]
		if !ok {
			return nil, fmt.Errorf("cannot hedge: %w %s", ErrNoIRR, cur)
		}
		ts, err := currencyTrades(schedule, base, irr, opts.Window)
		if err != nil {
			return nil, err
		}
		trades = append(trades, ts...)
	}
	return trades, nil
}

func currencyTrades(s *NAVSchedule, base string, irr float64, window date.Range) ([]ForwardTrade, error) {
	days := s.Dates()
	days = slices.DeleteFunc(days, func(d date.Date) bool { return !window.Contains(d) })

	var trades []ForwardTrade
	for i := 0; i+1 < len(days); i++ {
		tradeDate, deliveryDate := days[i], days[i+1]
		exposure, err := s.At(deliveryDate)
		if err != nil {
			return nil, err
		}
		if exposure <= 0 || math.Abs(exposure) < snapTolerance {
			continue
		}
		notional := exposure / math.Pow(1+irr, float64(deliveryDate.Sub(tradeDate))/DaysInYear)
		trades = append(trades, ForwardTrade{
			CurrencyPair:     s.Currency() + "/" + base,
			TradeDate:        tradeDate,
			DeliveryDate:     deliveryDate,
			Direction:        Sell,
			NotionalCurrency: s.Currency(),
			NotionalAmount:   decimal.NewFromFloat(notional).Round(2),
		})
	}
	return trades, nil
}
