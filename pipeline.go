package fundnav

import (
	"fmt"

	"go.uber.org/zap"
)

// Result bundles everything a run computes for one fund.
type Result struct {
	FundName     string
	CurrencyIRRs map[string]float64
	FundIRR      float64
	NAVSchedules map[string]*NAVSchedule
	Trades       []ForwardTrade
	Ledger       *Ledger
}

// Pipeline sequences validation, IRR, NAV and hedging for a single fund.
// Its zero value is ready to use and logs nothing.
type Pipeline struct {
	Logger *zap.Logger
	Hedge  HedgeOptions
}

func (p Pipeline) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

// Run computes the analytics of 'fund' out of raw rows.
//
// The first failing step aborts the run, and no partial result is returned.
func (p Pipeline) Run(rows []Row, fund string) (*Result, error) {
	log := p.logger().With(zap.String("fund", fund))

	records, err := ValidateRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	log.Debug("validated records", zap.Int("rows", len(records)))

	ledger, err := FilterByFund(records, fund)
	if err != nil {
		return nil, err
	}
	log.Debug("filtered ledger", zap.Int("records", ledger.Len()), zap.Strings("currencies", ledger.Currencies()), zap.Stringer("span", ledger.Span()))

	return p.RunLedger(ledger)
}

// RunLedger computes the analytics of an already validated ledger.
func (p Pipeline) RunLedger(ledger *Ledger) (*Result, error) {
	log := p.logger().With(zap.String("fund", ledger.Fund()))

	irrs, err := CurrencyIRRs(ledger)
	if err != nil {
		return nil, err
	}
	for _, cur := range ledger.Currencies() {
		log.Debug("currency IRR", zap.String("currency", cur), zap.Float64("irr", irrs[cur]))
	}

	fundIRR, err := FundIRR(ledger)
	if err != nil {
		return nil, err
	}
	log.Debug("fund IRR", zap.Float64("irr", fundIRR))

	schedules, err := GenerateNAVSchedules(ledger, irrs)
	if err != nil {
		return nil, err
	}
	for _, cur := range ledger.Currencies() {
		log.Debug("NAV schedule", zap.String("currency", cur), zap.Int("dates", schedules[cur].Len()))
	}

	trades, err := ProposeFXTrades(schedules, ledger, irrs, p.Hedge)
	if err != nil {
		return nil, err
	}

	log.Info("fund analytics computed",
		zap.Int("records", ledger.Len()),
		zap.Int("currencies", len(irrs)),
		zap.Stringer("fund_irr", Rate(fundIRR)),
		zap.Int("trades", len(trades)),
	)
	return &Result{
		FundName:     ledger.Fund(),
		CurrencyIRRs: irrs,
		FundIRR:      fundIRR,
		NAVSchedules: schedules,
		Trades:       trades,
		Ledger:       ledger,
	}, nil
}
