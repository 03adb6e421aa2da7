package renderer

import (
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/etnz/fundnav"
)

// CSV headers of the output tables.
var (
	CurrencyIRRHeader = []string{"Currency", "IRR"}
	FundIRRHeader     = []string{"Fund_Name", "IRR"}
	NAVHeader         = []string{"Date", "Net_Asset_Value_Local"}
	TradesHeader      = []string{"currency_pair", "trade_date", "delivery_date", "direction", "notional_currency", "notional_amount"}
)

func writeCSV(w io.Writer, header []string, lines [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(lines); err != nil {
		return fmt.Errorf("cannot write CSV: %w", err)
	}
	return nil
}

// CurrencyIRRsCSV writes one row per currency, sorted by currency.
func CurrencyIRRsCSV(w io.Writer, irrs map[string]float64) error {
	var lines [][]string
	for _, cur := range slices.Sorted(maps.Keys(irrs)) {
		lines = append(lines, []string{cur, fundnav.Rate(irrs[cur]).String()})
	}
	return writeCSV(w, CurrencyIRRHeader, lines)
}

// FundIRRCSV writes the single fund IRR row.
func FundIRRCSV(w io.Writer, fund string, irr float64) error {
	return writeCSV(w, FundIRRHeader, [][]string{{fund, fundnav.Rate(irr).String()}})
}

// NAVScheduleCSV writes the schedule, in ascending date order.
func NAVScheduleCSV(w io.Writer, s *fundnav.NAVSchedule) error {
	var lines [][]string
	for on, nav := range s.Values() {
		lines = append(lines, []string{on.String(), fmt.Sprintf("%.2f", nav)})
	}
	return writeCSV(w, NAVHeader, lines)
}

// TradesCSV writes all the trades in their given order.
func TradesCSV(w io.Writer, trades []fundnav.ForwardTrade) error {
	lines := make([][]string, 0, len(trades))
	for _, t := range trades {
		lines = append(lines, []string{
			t.CurrencyPair,
			t.TradeDate.String(),
			t.DeliveryDate.String(),
			t.Direction,
			t.NotionalCurrency,
			t.NotionalAmount.StringFixed(2),
		})
	}
	return writeCSV(w, TradesHeader, lines)
}
