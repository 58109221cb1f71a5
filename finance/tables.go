package finance

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Illustrative five-year series; independent of any user input.
var (
	illustrativeRevenue  = []int64{200_000, 400_000, 800_000, 1_600_000, 3_200_000}
	illustrativeExpenses = []int64{100_000, 150_000, 200_000, 250_000, 300_000}
)

// Tables are Markdown renderings of the illustrative series.
type Tables struct {
	Revenue           string `json:"revenue"`
	OperatingExpenses string `json:"operating_expenses"`
	NetProfit         string `json:"net_profit"`
}

// Markdown joins the three tables with blank lines.
func (t Tables) Markdown() string {
	return strings.Join([]string{t.Revenue, t.OperatingExpenses, t.NetProfit}, "\n\n")
}

// FinancialTables formats revenue, operating expenses and net profit.
func FinancialTables() Tables {
	p := message.NewPrinter(language.BritishEnglish)
	profit := make([]int64, len(illustrativeRevenue))
	for i := range illustrativeRevenue {
		profit[i] = illustrativeRevenue[i] - illustrativeExpenses[i]
	}
	return Tables{
		Revenue:           table(p, "Revenue (£)", illustrativeRevenue),
		OperatingExpenses: table(p, "Operating Expenses (£)", illustrativeExpenses),
		NetProfit:         table(p, "Net Profit (£)", profit),
	}
}

func table(p *message.Printer, header string, values []int64) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("| Year | %s |\n", header))
	sb.WriteString(fmt.Sprintf("|------|%s|\n", strings.Repeat("-", len([]rune(header))+2)))
	for i, v := range values {
		sb.WriteString(p.Sprintf("| %d | £%d |\n", i+1, v))
	}
	return strings.TrimRight(sb.String(), "\n")
}
