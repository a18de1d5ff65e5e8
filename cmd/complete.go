package cmd

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion tree for the CLI. The main package
// runs it before flag parsing; when invoked by the shell it prints the
// predictions and exits.
func Completion() *complete.Command {
	loanFlags := map[string]complete.Predictor{
		"loan": predict.Nothing,
	}

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"db":       predict.Files("*.db"),
			"currency": predict.Set{"EUR", "USD", "GBP", "CHF"},
			"v":        predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"accounts":    {Flags: map[string]complete.Predictor{"d": predict.Nothing, "all": predict.Nothing}},
			"add-account": {Flags: map[string]complete.Predictor{"name": predict.Nothing, "currency": predict.Set{"EUR", "USD", "GBP", "CHF"}, "balance": predict.Nothing, "opened": predict.Nothing, "hidden": predict.Nothing}},
			"tx":          {Flags: map[string]complete.Predictor{"a": predict.Nothing, "d": predict.Nothing, "amount": predict.Nothing, "desc": predict.Nothing, "transfer": predict.Nothing}},
			"transfer":    {Flags: map[string]complete.Predictor{"from": predict.Nothing, "to": predict.Nothing, "d": predict.Nothing, "amount": predict.Nothing, "desc": predict.Nothing}},
			"recurring":   {Flags: map[string]complete.Predictor{"a": predict.Nothing, "desc": predict.Nothing, "amount": predict.Nothing, "freq": predict.Set{"weekly", "monthly", "quarterly", "semiannual", "annual"}, "start": predict.Nothing, "end": predict.Nothing, "transfer": predict.Nothing, "list": predict.Nothing}},
			"adjust":      {Flags: map[string]complete.Predictor{"a": predict.Nothing, "d": predict.Nothing, "amount": predict.Nothing, "desc": predict.Nothing}},
			"balance":     {Flags: map[string]complete.Predictor{"a": predict.Nothing, "d": predict.Nothing, "months": predict.Nothing}},
			"audit":       {Flags: map[string]complete.Predictor{"a": predict.Nothing, "s": predict.Nothing, "d": predict.Nothing}},
			"reconcile":   {Flags: map[string]complete.Predictor{"a": predict.Nothing, "d": predict.Nothing, "balance": predict.Nothing, "desc": predict.Nothing}},
			"top":         {Flags: map[string]complete.Predictor{"a": predict.Nothing, "months": predict.Nothing, "limit": predict.Nothing}},
			"loans":       {},
			"new-loan":    {Flags: map[string]complete.Predictor{"name": predict.Nothing, "principal": predict.Nothing, "start": predict.Nothing, "months": predict.Nothing, "rate": predict.Nothing, "kind": predict.Set{"fixed", "variable"}, "property": predict.Nothing}},
			"schedule":    {Flags: loanFlags},
			"recalc":      {Flags: map[string]complete.Predictor{"loan": predict.Nothing, "period": predict.Nothing, "closing": predict.Nothing, "rate": predict.Nothing}},
			"topic":       {Args: predict.Set{"readme", "projection", "recurring", "reconciliation", "loans", "*"}},
		},
	}
}
