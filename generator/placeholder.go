package generator

import (
	"sort"
	"strings"
)

// PlaceholderContext maps bracket-token names to the user's values.
func PlaceholderContext(f FieldSet) map[string]string {
	return map[string]string{
		"Your Name":           f.Directors,
		"Funding Amount":      f.FundingAmount,
		"Grant Amount":        f.GrantAmount,
		"Finance Term":        f.FinanceTerm,
		"Business Overview":   f.Overview,
		"Staffing Compliment": f.Staffing,
	}
}

// Substitute replaces every "[token]" in text with values[token]. It is a
// single pass: replacement values are never scanned for further tokens.
// Tokens missing from values are left as they are.
func Substitute(text string, values map[string]string) string {
	if len(values) == 0 {
		return text
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "["+k+"]", values[k])
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
