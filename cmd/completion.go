package cmd

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var (
	currencies = predict.Set{"EUR", "GBP", "USD"}
	formats    = predict.Set{"csv", "jsonl", "markdown", "html", "all"}
)

// inputPredictors completes the flags of inputFlags.
func inputPredictors(extra map[string]complete.Predictor) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{
		"file":  predict.Or(predict.Files("*.xlsx"), predict.Files("*.csv"), predict.Files("*.json")),
		"sheet": predict.Something,
		"fund":  predict.Something,
		"v":     predict.Nothing,
	}
	for k, p := range extra {
		flags[k] = p
	}
	return flags
}

// Completion returns the shell completion tree of the fnav command.
func Completion() *complete.Command {
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.toml"),
			"raw":    predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"run": {Flags: inputPredictors(map[string]complete.Predictor{
				"output-dir": predict.Dirs("*"),
				"format":     formats,
				"from":       predict.Something,
				"to":         predict.Something,
			})},
			"validate": {Flags: inputPredictors(nil)},
			"irr":      {Flags: inputPredictors(nil)},
			"nav":      {Flags: inputPredictors(map[string]complete.Predictor{"c": currencies})},
			"hedge": {Flags: inputPredictors(map[string]complete.Predictor{
				"c":     currencies,
				"from":  predict.Something,
				"to":    predict.Something,
				"jsonl": predict.Nothing,
			})},
			"explain": {Flags: inputPredictors(map[string]complete.Predictor{
				"model": predict.Set{"gemini-2.5-pro", "gemini-2.5-flash"},
				"i":     predict.Nothing,
			})},
			"topic":    {Args: predict.Set{"ledger", "irr", "nav", "hedge", "config", "*"}},
			"help":     {},
			"commands": {},
			"flags":    {},
		},
	}
}
