package fundnav

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// EncodeTrades writes trades as JSONL, one trade per line.
func EncodeTrades(w io.Writer, trades []ForwardTrade) error {
	for _, t := range trades {
		line, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("cannot encode trade %s %s: %w", t.CurrencyPair, t.TradeDate, err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
			return err
		}
	}
	return nil
}
