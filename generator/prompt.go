package generator

import (
	"fmt"
	"strings"
)

// Prompt 表示发送给 LLM 的一次请求。
type Prompt struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
	// Label names the request in logs, e.g. the section being generated.
	Label string
}

// BuildSectionPrompt embeds every field into the instruction for one section.
func BuildSectionPrompt(section string, f FieldSet, maxTokens int, temperature float64) Prompt {
	docType := strings.ToLower(f.Type.String())

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generate the %s of a %s based on the following inputs:\n", section, docType))
	sb.WriteString(fmt.Sprintf("Language: %s\n", f.Language))
	sb.WriteString(fmt.Sprintf("Writing Person: %s\n", f.WritingPerson))
	sb.WriteString(fmt.Sprintf("Writing Style: %s\n", f.WritingStyle))
	sb.WriteString(fmt.Sprintf("Document Length: %s\n", f.Length))
	sb.WriteString(fmt.Sprintf("Template: %s\n", f.Template))
	sb.WriteString(fmt.Sprintf("Business Type: %s\n", f.BusinessType))
	sb.WriteString(fmt.Sprintf("BEE Level: %s\n", f.BEELevel))
	sb.WriteString(fmt.Sprintf("Directors/Shareholders: %s\n", f.Directors))
	sb.WriteString(fmt.Sprintf("Staffing Compliment: %s\n", f.Staffing))
	sb.WriteString(fmt.Sprintf("Funding Amount: %s\n", f.FundingAmount))
	sb.WriteString(fmt.Sprintf("Grant Amount: %s\n", f.GrantAmount))
	sb.WriteString(fmt.Sprintf("Finance Term: %s\n", f.FinanceTerm))
	sb.WriteString(fmt.Sprintf("Business Overview: %s\n\n", f.Overview))
	sb.WriteString("Ensure that all financial tables, including revenue projections, operating expenses, net profit, " +
		"and cash flow (if applicable), are calculated accurately based on industry standards, market conditions, " +
		"and the provided business context. Include all relevant calculations and ensure that all numbers in tables " +
		"and projections are precise and consistent with the overall document.")

	return Prompt{
		System:      fmt.Sprintf("You are a helpful assistant with deep knowledge in %s creation and financial forecasting.", docType),
		User:        sb.String(),
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Label:       section,
	}
}
