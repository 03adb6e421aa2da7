package fundnav

import (
	"github.com/etnz/fundnav/date"
)

// Column headers of the cashflow sheet.
const (
	ColID           = "ID"
	ColFundName     = "Fund Name"
	ColDate         = "Date"
	ColCashflowType = "Cashflow Type"
	ColLocalCcy     = "Local Currency"
	ColAmountLocal  = "Cashflow Amount Local"
	ColAmountBase   = "Cashflow Amount Base"
	ColBaseCcy      = "Base Currency"
)

// Columns lists the headers a reader must provide, in sheet order.
var Columns = []string{ColID, ColFundName, ColDate, ColCashflowType, ColLocalCcy, ColAmountLocal, ColAmountBase, ColBaseCcy}

// Row is one raw ledger row keyed by column header.
//
// Values are loosely typed, as they come out of a spreadsheet: numbers may be
// int, float64 or numeric strings, dates may be time.Time, date.Date or strings.
type Row map[string]any

// CashflowType categorizes a ledger entry.
type CashflowType string

const (
	Investment         CashflowType = "Investment"
	Interest           CashflowType = "Interest"
	PrincipalRepayment CashflowType = "Principal Repayment"
)

// validCashflowTypes lists all accepted cashflow types.
var validCashflowTypes = map[CashflowType]bool{
	Investment:         true,
	Interest:           true,
	PrincipalRepayment: true,
}

// ValidCashflowType returns true if t is one of the accepted cashflow types.
func ValidCashflowType(t CashflowType) bool { return validCashflowTypes[t] }

// BaseCurrency is the reporting currency of every fund.
const BaseCurrency = "EUR"

// validCurrencies lists the accepted local currencies.
var validCurrencies = map[string]bool{
	"GBP": true,
	"EUR": true,
	"USD": true,
}

// currencyCorrections fixes known typos found in the source sheets.
var currencyCorrections = map[string]string{
	"GPB": "GBP",
}

// NormalizeCurrency applies the typo corrections to a currency code.
func NormalizeCurrency(code string) string {
	if fixed, ok := currencyCorrections[code]; ok {
		return fixed
	}
	return code
}

// ValidCurrency returns true if code is an accepted local currency.
func ValidCurrency(code string) bool { return validCurrencies[code] }

// CashflowRecord is a validated ledger entry. It is immutable.
type CashflowRecord struct {
	id          int
	fund        string
	on          date.Date
	kind        CashflowType
	localCcy    string
	amountLocal float64
	amountBase  float64
	baseCcy     string
}

// NewCashflowRecord creates a record from already typed values. It does not
// validate them, use ValidateRecord for raw input.
func NewCashflowRecord(id int, fund string, on date.Date, kind CashflowType, localCcy string, amountLocal, amountBase float64) CashflowRecord {
	return CashflowRecord{
		id:          id,
		fund:        fund,
		on:          on,
		kind:        kind,
		localCcy:    localCcy,
		amountLocal: amountLocal,
		amountBase:  amountBase,
		baseCcy:     BaseCurrency,
	}
}

func (r CashflowRecord) ID() int               { return r.id }
func (r CashflowRecord) Fund() string          { return r.fund }
func (r CashflowRecord) When() date.Date       { return r.on }
func (r CashflowRecord) Type() CashflowType    { return r.kind }
func (r CashflowRecord) LocalCurrency() string { return r.localCcy }
func (r CashflowRecord) AmountLocal() float64  { return r.amountLocal }
func (r CashflowRecord) AmountBase() float64   { return r.amountBase }
func (r CashflowRecord) BaseCurrency() string  { return r.baseCcy }
