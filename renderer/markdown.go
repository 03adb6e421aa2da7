package renderer

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/etnz/fundnav"
)

// Markdown renders the summary of a run.
func Markdown(res *fundnav.Result) string {
	var b strings.Builder
	l := res.Ledger

	fmt.Fprintf(&b, "# Fund Analytics: %s\n\n", res.FundName)
	if l != nil {
		span := l.Span()
		fmt.Fprintf(&b, "%d cashflows from %s to %s, base currency %s.\n\n", l.Len(), span.From, span.To, l.BaseCurrency())
	}
	b.WriteString(IRRMarkdown(res))
	for _, cur := range slices.Sorted(maps.Keys(res.NAVSchedules)) {
		b.WriteString(NAVMarkdown(res.NAVSchedules[cur]))
	}
	b.WriteString(TradesMarkdown(res.Trades))
	return b.String()
}

// IRRMarkdown renders the IRR section: one row per currency and the fund total.
func IRRMarkdown(res *fundnav.Result) string {
	var b strings.Builder
	fmt.Fprint(&b, "## Internal Rate of Return\n\n")
	fmt.Fprintln(&b, "| Currency | IRR |")
	fmt.Fprintln(&b, "|:---|---:|")
	for _, cur := range slices.Sorted(maps.Keys(res.CurrencyIRRs)) {
		fmt.Fprintf(&b, "| %s | %s |\n", cur, fundnav.Rate(res.CurrencyIRRs[cur]))
	}
	fmt.Fprintf(&b, "| **Fund** | **%s** |\n\n", fundnav.Rate(res.FundIRR))
	return b.String()
}

// NAVMarkdown renders the NAV schedule of a currency.
func NAVMarkdown(s *fundnav.NAVSchedule) string {
	var b strings.Builder
	cur := s.Currency()
	fmt.Fprintf(&b, "## NAV Schedule %s\n\n", cur)
	fmt.Fprintf(&b, "Discounted at %s.\n\n", fundnav.Rate(s.IRR()))
	fmt.Fprintln(&b, "| Date | NAV |")
	fmt.Fprintln(&b, "|:---|---:|")
	for on, nav := range s.Values() {
		fmt.Fprintf(&b, "| %s | %s |\n", on, fundnav.M(nav, cur))
	}
	fmt.Fprintln(&b)
	return b.String()
}

// TradesMarkdown renders the proposed forwards.
func TradesMarkdown(trades []fundnav.ForwardTrade) string {
	var b strings.Builder
	fmt.Fprint(&b, "## Proposed FX Forwards\n\n")
	if len(trades) == 0 {
		fmt.Fprint(&b, "No exposure to hedge.\n")
	}
	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintln(w, "| Pair | Trade Date | Delivery Date | Direction | Notional |")
		fmt.Fprintln(w, "|:---|:---|:---|:---|---:|")
		for _, t := range trades {
			fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n", t.CurrencyPair, t.TradeDate, t.DeliveryDate, t.Direction, t.Notional())
		}
		return len(trades) > 0
	})
	return b.String()
}

// FundsMarkdown renders the number of records per fund of a validated batch.
func FundsMarkdown(records []fundnav.CashflowRecord) string {
	count := make(map[string]int)
	for _, r := range records {
		count[r.Fund()]++
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# Ledger: %d valid records\n\n", len(records))
	fmt.Fprintln(&b, "| Fund | Records |")
	fmt.Fprintln(&b, "|:---|---:|")
	for _, fund := range fundnav.Funds(records) {
		fmt.Fprintf(&b, "| %s | %d |\n", fund, count[fund])
	}
	return b.String()
}
