package generator

import (
	"errors"
	"fmt"
	"strings"

	"business_document_generator/charts"
)

// ErrUnknownDocumentType is returned for names outside the fixed set.
var ErrUnknownDocumentType = errors.New("unknown document type")

// DocumentType selects the section list and chart triggers of a run.
type DocumentType int

const (
	BusinessPlan DocumentType = iota
	FeasibilityStudy
	ApplicationForm
	PitchDeck

	numDocumentTypes
)

type layout struct {
	name     string
	sections []string
	// charts maps a section name to the figures queued after it is generated.
	charts map[string][]charts.Request
}

var layouts = [numDocumentTypes]layout{
	BusinessPlan: {
		name: "Business Plan",
		sections: []string{
			"Executive Summary",
			"Company Description",
			"Market Analysis",
			"Strategy and Implementation",
			"Organization and Management Team",
			"Financial Plan and Projections",
			"Request for Funding",
			"Product and Services Description",
			"SWOT Analysis",
			"Customer Analysis",
			"Competitive Analysis",
			"Marketing Plan",
			"Operational Plan",
			"Risk Management",
			"Exit Strategy",
			"Appendix",
		},
		charts: map[string][]charts.Request{
			"Market Analysis": {
				{Kind: charts.MarketShareOverTime, Title: "Market Analysis: Market Share Over Time"},
				{Kind: charts.CompetitiveAnalysis, Title: "Market Analysis: Competitive Analysis"},
			},
			"Strategy and Implementation": {
				{Kind: charts.MilestoneTimeline, Title: "Strategy and Implementation: Milestone Timeline"},
			},
			"Organization and Management Team": {
				{Kind: charts.OrganizationalStructure, Title: "Organization: Organizational Structure"},
			},
			"Financial Plan and Projections": {
				{Kind: charts.RevenueVsExpenses, Title: "Financial Plan: Revenue vs Expenses"},
				{Kind: charts.CashFlowForecast, Title: "Financial Plan: Cash Flow Forecast"},
			},
			"Product and Services Description": {
				{Kind: charts.ProductDevelopmentRoadmap, Title: "Product Development: Roadmap"},
			},
		},
	},
	FeasibilityStudy: {
		name: "Feasibility Study",
		sections: []string{
			"Executive Summary",
			"Project Description",
			"Market Feasibility",
			"Technical Feasibility",
			"Financial Feasibility",
			"Economic Feasibility",
			"Risk Assessment",
			"Conclusion",
		},
	},
	ApplicationForm: {
		name: "Application Form",
		sections: []string{
			"Applicant Information",
			"Business Information",
			"Funding Request",
			"Project Details",
			"Financial Information",
			"Supporting Documents",
		},
	},
	PitchDeck: {
		name: "Pitch Deck",
		sections: []string{
			"Introduction",
			"Problem Statement",
			"Solution Overview",
			"Market Opportunity",
			"Business Model",
			"Traction",
			"Team",
			"Financial Projections",
			"Investment Ask",
			"Closing",
		},
	},
}

// DocumentTypes lists every type in menu order.
func DocumentTypes() []DocumentType {
	out := make([]DocumentType, 0, numDocumentTypes)
	for t := DocumentType(0); t < numDocumentTypes; t++ {
		out = append(out, t)
	}
	return out
}

// ParseDocumentType accepts the display name, case-insensitively.
func ParseDocumentType(name string) (DocumentType, error) {
	for _, t := range DocumentTypes() {
		if strings.EqualFold(layouts[t].name, strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownDocumentType)
}

func (t DocumentType) valid() bool { return t >= 0 && t < numDocumentTypes }

func (t DocumentType) String() string {
	if !t.valid() {
		return fmt.Sprintf("DocumentType(%d)", int(t))
	}
	return layouts[t].name
}

// FileBase is the download name without extension, e.g. "Business_Plan".
func (t DocumentType) FileBase() string {
	return strings.ReplaceAll(t.String(), " ", "_")
}

// Sections returns a copy of the ordered section list.
func (t DocumentType) Sections() []string {
	if !t.valid() {
		return nil
	}
	return append([]string(nil), layouts[t].sections...)
}

// ChartsFor returns the chart requests triggered by generating section.
func (t DocumentType) ChartsFor(section string) []charts.Request {
	if !t.valid() {
		return nil
	}
	return append([]charts.Request(nil), layouts[t].charts[section]...)
}

// ChartPlan is the full request sequence for a complete run.
func (t DocumentType) ChartPlan() []charts.Request {
	var out []charts.Request
	for _, s := range t.Sections() {
		out = append(out, t.ChartsFor(s)...)
	}
	return out
}

func (t DocumentType) MarshalText() ([]byte, error) {
	if !t.valid() {
		return nil, fmt.Errorf("document type %d: %w", int(t), ErrUnknownDocumentType)
	}
	return []byte(t.String()), nil
}

func (t *DocumentType) UnmarshalText(b []byte) error {
	v, err := ParseDocumentType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
