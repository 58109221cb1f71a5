package finance

import (
	"gonum.org/v1/plot"

	"business_document_generator/charts"
)

// scenarioFactors is a fixed ±20% perturbation, not a scenario model.
var scenarioFactors = []float64{1, 1.2, 0.8}

// Projection holds profit and equity per scenario label.
type Projection struct {
	Scenarios []string  `json:"scenarios"`
	Profit    []float64 `json:"profit"`
	Equity    []float64 `json:"equity"`
}

// Project scales profit and equity by the scenario factors.
func Project(st Statements) Projection {
	p := Projection{
		Scenarios: append([]string(nil), Scenarios...),
		Profit:    make([]float64, len(scenarioFactors)),
		Equity:    make([]float64, len(scenarioFactors)),
	}
	for i, f := range scenarioFactors {
		p.Profit[i] = st.Profit * f
		p.Equity[i] = st.Equity * f
	}
	return p
}

// Chart names accepted by Figure.
const (
	ChartRevenueExpenses = "revenue-expenses"
	ChartScenario        = "scenario"
)

// Figure builds one of the page's two charts from an analysis. ok is false
// for an unknown chart name.
func Figure(a Analysis, name string) (p *plot.Plot, ok bool, err error) {
	switch name {
	case ChartRevenueExpenses:
		p, err = charts.RevenueExpensesBar(a.Inputs.Revenue, a.Inputs.Expenses)
	case ChartScenario:
		p, err = charts.ScenarioLines(a.Projection.Scenarios, a.Projection.Profit, a.Projection.Equity)
	default:
		return nil, false, nil
	}
	return p, true, err
}
