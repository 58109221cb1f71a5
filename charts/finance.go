package charts

import (
	"gonum.org/v1/plot"
)

// RevenueExpensesBar is the financial page's two-bar comparison.
func RevenueExpensesBar(revenue, expenses float64) (*plot.Plot, error) {
	return BarPlot("Revenue vs Expenses", "Category", "Amount ($)",
		[]string{"Revenue", "Expenses"}, []float64{revenue, expenses}, blue, false)
}

// ScenarioLines plots profit and equity across the scenario labels.
func ScenarioLines(scenarios []string, profit, equity []float64) (*plot.Plot, error) {
	return LinePlot("Scenario Analysis: Profit and Equity", "Scenario", "Amount ($)", scenarios, []Series{
		{Name: "Profit", Values: profit, Color: red},
		{Name: "Equity", Values: equity, Color: royalBlue},
	})
}
