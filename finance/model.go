// Package finance implements the financial modeling page: statements, ratio
// analysis, advanced metrics and the fixed scenario perturbation.
package finance

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrNegativeInput rejects figures below zero.
var ErrNegativeInput = errors.New("financial inputs must not be negative")

// Scenario labels shown on the page.
const (
	BaseCase  = "Base Case"
	BestCase  = "Best Case"
	WorstCase = "Worst Case"
)

// Scenarios lists the scenario labels in display order.
var Scenarios = []string{BaseCase, BestCase, WorstCase}

// Inputs are the five user-entered figures.
type Inputs struct {
	Scenario    string  `json:"scenario,omitempty"`
	Revenue     float64 `json:"revenue"`
	Expenses    float64 `json:"expenses"`
	Assets      float64 `json:"assets"`
	Liabilities float64 `json:"liabilities"`
	Equity      float64 `json:"equity"`
}

// Validate checks every figure is finite and non-negative and that the
// scenario label is known.
func (in Inputs) Validate() error {
	for name, v := range map[string]float64{
		"revenue":     in.Revenue,
		"expenses":    in.Expenses,
		"assets":      in.Assets,
		"liabilities": in.Liabilities,
		"equity":      in.Equity,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s: not a finite number", name)
		}
		if v < 0 {
			return fmt.Errorf("%s: %w", name, ErrNegativeInput)
		}
	}
	switch in.Scenario {
	case "", BaseCase, BestCase, WorstCase:
		return nil
	default:
		return fmt.Errorf("unknown scenario %q", in.Scenario)
	}
}

// Ratio is a float that encodes infinities as the JSON string "Infinity".
type Ratio float64

func (r Ratio) MarshalJSON() ([]byte, error) {
	f := float64(r)
	switch {
	case math.IsInf(f, 1):
		return []byte(`"Infinity"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Infinity"`), nil
	case math.IsNaN(f):
		return []byte(`null`), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

// Statements are the derived figures.
type Statements struct {
	Profit    float64 `json:"profit"`
	NetAssets float64 `json:"net_assets"`
	Equity    float64 `json:"equity"`
}

// Ratios are the eight headline ratios.
type Ratios struct {
	CurrentRatio      Ratio `json:"current_ratio"`
	DebtToEquity      Ratio `json:"debt_to_equity"`
	ProfitMargin      Ratio `json:"profit_margin"`
	ReturnOnAssets    Ratio `json:"return_on_assets"`
	ReturnOnEquity    Ratio `json:"return_on_equity"`
	GrossProfitMargin Ratio `json:"gross_profit_margin"`
	OperatingMargin   Ratio `json:"operating_margin"`
	NetProfitMargin   Ratio `json:"net_profit_margin"`
}

// Advanced holds leverage, efficiency and DuPont figures.
type Advanced struct {
	FinancialLeverage Ratio `json:"financial_leverage"`
	AssetTurnover     Ratio `json:"asset_turnover"`
	EquityMultiplier  Ratio `json:"equity_multiplier"`
	DupontROE         Ratio `json:"dupont_roe"`
	DupontROA         Ratio `json:"dupont_roa"`
}

// Analysis is everything the page shows for one set of inputs.
type Analysis struct {
	Inputs         Inputs     `json:"inputs"`
	Statements     Statements `json:"statements"`
	Ratios         Ratios     `json:"ratios"`
	Advanced       Advanced   `json:"advanced"`
	Interpretation []string   `json:"interpretation"`
	Projection     Projection `json:"projection"`
}

// divOr returns num/den, or fallback when den is not positive.
func divOr(num, den, fallback float64) Ratio {
	if den > 0 {
		return Ratio(num / den)
	}
	return Ratio(fallback)
}

// Compute derives profit and net assets.
func Compute(in Inputs) Statements {
	return Statements{
		Profit:    in.Revenue - in.Expenses,
		NetAssets: in.Assets - in.Liabilities,
		Equity:    in.Equity,
	}
}

// CalculateRatios never divides by zero: liquidity and leverage ratios fall
// back to +Inf, margins and returns to 0.
func CalculateRatios(in Inputs) Ratios {
	profit := in.Revenue - in.Expenses
	inf := math.Inf(1)
	return Ratios{
		CurrentRatio:      divOr(in.Assets, in.Liabilities, inf),
		DebtToEquity:      divOr(in.Liabilities, in.Equity, inf),
		ProfitMargin:      divOr(profit, in.Revenue, 0),
		ReturnOnAssets:    divOr(profit, in.Assets, 0),
		ReturnOnEquity:    divOr(profit, in.Equity, 0),
		GrossProfitMargin: divOr(in.Revenue-in.Expenses, in.Revenue, 0),
		OperatingMargin:   divOr(profit, in.Revenue, 0),
		NetProfitMargin:   divOr(profit, in.Revenue, 0),
	}
}

// CalculateAdvanced computes the advanced metrics panel.
func CalculateAdvanced(in Inputs) Advanced {
	profit := in.Revenue - in.Expenses
	inf := math.Inf(1)
	return Advanced{
		FinancialLeverage: divOr(in.Assets, in.Equity, inf),
		AssetTurnover:     divOr(in.Revenue, in.Assets, 0),
		EquityMultiplier:  divOr(in.Assets, in.Equity, inf),
		DupontROE:         divOr(profit, in.Equity, 0),
		DupontROA:         divOr(profit, in.Assets, 0),
	}
}

// Interpret produces the plain-language reading of ratios and metrics.
func Interpret(r Ratios, a Advanced) []string {
	var out []string
	if r.CurrentRatio < 1 {
		out = append(out, "The current ratio is below 1, indicating potential liquidity issues.")
	} else {
		out = append(out, "The current ratio is healthy, indicating good liquidity.")
	}
	if r.DebtToEquity > 2 {
		out = append(out, "The debt-to-equity ratio is high, indicating potential leverage risk.")
	} else {
		out = append(out, "The debt-to-equity ratio is within a healthy range.")
	}
	if r.GrossProfitMargin < 0.5 {
		out = append(out, "The Gross Profit Margin is below 50%, indicating potential efficiency issues.")
	} else {
		out = append(out, "The Gross Profit Margin is healthy, indicating good efficiency.")
	}
	if r.OperatingMargin < 0.2 {
		out = append(out, "The Operating Margin is below 20%, indicating potential operational inefficiency.")
	} else {
		out = append(out, "The Operating Margin is healthy, indicating good operational efficiency.")
	}
	if a.FinancialLeverage > 2 {
		out = append(out, "High Financial Leverage may indicate excessive debt.")
	} else {
		out = append(out, "Financial Leverage is within a healthy range.")
	}
	if a.AssetTurnover < 1 {
		out = append(out, "Asset Turnover is low, indicating inefficient use of assets.")
	} else {
		out = append(out, "Asset Turnover is good, indicating efficient use of assets.")
	}
	if a.EquityMultiplier > 2 {
		out = append(out, "Equity Multiplier is high, indicating that the company is relying heavily on debt.")
	} else {
		out = append(out, "Equity Multiplier is within a safe range.")
	}
	return out
}

// Analyze validates the inputs and runs every calculation of the page.
func Analyze(in Inputs) (Analysis, error) {
	if err := in.Validate(); err != nil {
		return Analysis{}, err
	}
	if in.Scenario == "" {
		in.Scenario = BaseCase
	}
	st := Compute(in)
	ratios := CalculateRatios(in)
	adv := CalculateAdvanced(in)
	return Analysis{
		Inputs:         in,
		Statements:     st,
		Ratios:         ratios,
		Advanced:       adv,
		Interpretation: Interpret(ratios, adv),
		Projection:     Project(st),
	}, nil
}
