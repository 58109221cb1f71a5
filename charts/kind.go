// Package charts draws the illustrative figures embedded in generated
// documents and the figures of the financial modeling page.
//
// Document figures come from fixed datasets; they are presentational stand-ins
// and never reflect the user's own numbers.
package charts

import "strings"

// Kind identifies one of the fixed document figures.
type Kind int

const (
	KindUnknown Kind = iota
	MarketShareOverTime
	CompetitiveAnalysis
	MilestoneTimeline
	RevenueVsExpenses
	CashFlowForecast
	OrganizationalStructure
	ProductDevelopmentRoadmap
)

var kindNames = map[Kind]string{
	MarketShareOverTime:       "Market Share Over Time",
	CompetitiveAnalysis:       "Competitive Analysis",
	MilestoneTimeline:         "Milestone Timeline",
	RevenueVsExpenses:         "Revenue vs Expenses",
	CashFlowForecast:          "Cash Flow Forecast",
	OrganizationalStructure:   "Organizational Structure",
	ProductDevelopmentRoadmap: "Product Development Roadmap",
}

// Kinds lists every known kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		MarketShareOverTime,
		CompetitiveAnalysis,
		MilestoneTimeline,
		RevenueVsExpenses,
		CashFlowForecast,
		OrganizationalStructure,
		ProductDevelopmentRoadmap,
	}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Slug is a filesystem friendly form of the name.
func (k Kind) Slug() string {
	return strings.ReplaceAll(k.String(), " ", "_")
}

// ParseKind maps a display name to its Kind. Unrecognised names yield
// KindUnknown, which renders as an empty figure.
func ParseKind(name string) Kind {
	for k, n := range kindNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return k
		}
	}
	return KindUnknown
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	*k = ParseKind(string(b))
	return nil
}

// Request queues one figure for rendering at export time.
type Request struct {
	Kind  Kind   `json:"kind"`
	Title string `json:"title"`
}
